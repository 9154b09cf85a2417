package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TemplateBookingReceived = "booking_received"
	TemplatePaymentToVerify = "payment_to_verify"

	sendTimeout = 15 * time.Second
)

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Service renders hotel emails and sends them from a background queue
type Service struct {
	sender       Sender
	templates    map[string]*template.Template
	baseTemplate *template.Template
	queue        chan *queuedEmail
	wg           sync.WaitGroup
}

type queuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates email service and starts its worker
func NewService(sender Sender) *Service {
	s := &Service{
		sender:       sender,
		templates:    make(map[string]*template.Template),
		baseTemplate: template.Must(template.New("base").Parse(BaseTemplate)),
		queue:        make(chan *queuedEmail, 100),
	}

	s.templates[TemplateBookingReceived] = template.Must(template.New(TemplateBookingReceived).Parse(BookingReceivedTemplate))
	s.templates[TemplatePaymentToVerify] = template.Must(template.New(TemplatePaymentToVerify).Parse(PaymentToVerifyTemplate))

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := s.send(ctx, email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
		cancel()
	}
}

func (s *Service) render(name string, data interface{}) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", err
	}

	var page bytes.Buffer
	if err := s.baseTemplate.Execute(&page, map[string]interface{}{
		"Content": template.HTML(content.String()),
	}); err != nil {
		return "", err
	}
	return page.String(), nil
}

func (s *Service) send(ctx context.Context, email *queuedEmail) error {
	html, err := s.render(email.TemplateName, email.Data)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, &Message{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: html,
	})
}

// Queue adds an email to the async send queue; a full queue drops it
func (s *Service) Queue(to, toName, templateName, subject string, data interface{}) {
	if to == "" {
		return
	}
	select {
	case s.queue <- &queuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// Close drains the queue and stops the worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// BookingMail is the data both booking emails render
type BookingMail struct {
	Code          string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	RoomName      string
	CheckIn       string
	CheckOut      string
	Nights        int
	Rooms         int
	Currency      string
	TotalAmount   int64
	PaidAmount    int64
	PendingAmount int64
	ScreenshotURL string
}

// SendBookingReceived tells the guest their booking awaits payment verification
func (s *Service) SendBookingReceived(b BookingMail) {
	s.Queue(b.GuestEmail, b.GuestName, TemplateBookingReceived,
		fmt.Sprintf("Booking %s received", b.Code), b)
}

// SendPaymentToVerify asks staff to check the payment screenshot
func (s *Service) SendPaymentToVerify(staffEmail string, b BookingMail) {
	s.Queue(staffEmail, "", TemplatePaymentToVerify,
		fmt.Sprintf("Verify UPI payment for %s", b.Code), b)
}
