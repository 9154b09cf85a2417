package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []*Message
}

func (r *recordingSender) Send(ctx context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func sampleBooking() BookingMail {
	return BookingMail{
		Code:          "BK-7Q2XKD",
		GuestName:     "Asha Rao",
		GuestEmail:    "asha@example.com",
		RoomName:      "Deluxe Room",
		CheckIn:       "2024-06-01",
		CheckOut:      "2024-06-03",
		Nights:        2,
		Rooms:         2,
		Currency:      "INR",
		TotalAmount:   8960,
		PaidAmount:    1792,
		PendingAmount: 7168,
		ScreenshotURL: "https://i.ibb.co/x/proof.png",
	}
}

func TestBookingEmailsAreRenderedAndSent(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender)

	svc.SendBookingReceived(sampleBooking())
	svc.SendPaymentToVerify("frontdesk@example.com", sampleBooking())
	svc.Close()

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	guest := sender.sent[0]
	if guest.To != "asha@example.com" || !strings.Contains(guest.Subject, "BK-7Q2XKD") {
		t.Fatalf("unexpected guest email %+v", guest)
	}
	if !strings.Contains(guest.HTMLContent, "INR 7168") || !strings.Contains(guest.HTMLContent, "<!DOCTYPE html>") {
		t.Fatal("guest email should carry the pending amount inside the layout")
	}
	if staff := sender.sent[1]; staff.To != "frontdesk@example.com" || !strings.Contains(staff.HTMLContent, "https://i.ibb.co/x/proof.png") {
		t.Fatalf("unexpected staff email %+v", staff)
	}
}

func TestQueueSkipsEmptyRecipient(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender)
	svc.SendPaymentToVerify("", sampleBooking())
	svc.Close()

	if len(sender.sent) != 0 {
		t.Fatalf("expected nothing sent, got %d", len(sender.sent))
	}
}

func TestSendGridClientPostsJSON(t *testing.T) {
	var got sendGridRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewSendGridClient(SendGridConfig{APIKey: "SG.key", FromEmail: "stay@example.com", FromName: "Stay", BaseURL: srv.URL})
	err := client.Send(context.Background(), &Message{To: "a@example.com", Subject: "Hi", HTMLContent: "<p>x</p>", TextContent: "x"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if auth != "Bearer SG.key" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if len(got.Content) != 2 || got.Content[0].Type != "text/plain" {
		t.Fatalf("unexpected content %+v", got.Content)
	}
}

func TestSendGridClientSurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid key"}]}`))
	}))
	defer srv.Close()

	err := NewSendGridClient(SendGridConfig{BaseURL: srv.URL}).Send(context.Background(), &Message{To: "a@example.com"})
	if err == nil || !strings.Contains(err.Error(), "invalid key") {
		t.Fatalf("expected sendgrid error detail, got %v", err)
	}
}
