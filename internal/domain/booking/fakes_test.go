package booking

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stayhaven/hotel-api/internal/domain/availability"
	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/imaging"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
)

// memStore stands in for Postgres: booked counts and bookings behind one lock,
// so Create is all-or-nothing like the real transaction.
type memStore struct {
	mu       sync.Mutex
	booked   map[string]availability.Snapshot
	bookings map[string]*Booking
	failNext error
}

func newMemStore() *memStore {
	return &memStore{
		booked:   map[string]availability.Snapshot{},
		bookings: map[string]*Booking{},
	}
}

func (m *memStore) setBooked(roomID, date string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booked[roomID] == nil {
		m.booked[roomID] = availability.Snapshot{}
	}
	m.booked[roomID][date] = n
}

func (m *memStore) bookedOn(roomID, date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.booked[roomID][date]
}

// Snapshot implements availability.Repository
func (m *memStore) Snapshot(ctx context.Context, roomID string, from, to time.Time) (availability.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := availability.Snapshot{}
	for _, d := range availability.DatesInRange(from, to) {
		if n, ok := m.booked[roomID][availability.FormatDate(d)]; ok {
			out[availability.FormatDate(d)] = n
		}
	}
	return out, nil
}

func (m *memStore) Create(ctx context.Context, b *Booking, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}

	if err := availability.Validate(stock, m.booked[b.RoomID], b.CheckIn, b.CheckOut, b.Rooms); err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	b.Code = code
	b.CreatedAt = time.Now()

	if m.booked[b.RoomID] == nil {
		m.booked[b.RoomID] = availability.Snapshot{}
	}
	for _, d := range availability.DatesInRange(b.CheckIn, b.CheckOut) {
		m.booked[b.RoomID][availability.FormatDate(d)] += b.Rooms
	}
	m.bookings[b.Code] = b
	return nil
}

func (m *memStore) GetByCode(ctx context.Context, code string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[code]; ok {
		return b, nil
	}
	return nil, ErrBookingNotFound
}

func (m *memStore) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubRooms struct{}

func (stubRooms) GetByID(ctx context.Context, id string) (*room.Room, error) {
	switch id {
	case "deluxe":
		return &room.Room{ID: "deluxe", Name: "Deluxe Room", NightlyPrice: 2000, TotalStock: 10}, nil
	case "suite":
		return &room.Room{ID: "suite", Name: "Suite", NightlyPrice: 9000, TotalStock: 3}, nil
	}
	return nil, room.ErrRoomNotFound
}

// hotelClock pins "today" so fixed calendar dates stay selectable
type hotelClock struct {
	*availability.Service
	today time.Time
}

func (h hotelClock) Today() time.Time { return h.today }

type recordingFeed struct {
	mu     sync.Mutex
	events []string
}

func (f *recordingFeed) Publish(ctx context.Context, roomID string, dates []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, roomID)
	return nil
}

type fakeHost struct {
	mu      sync.Mutex
	uploads int
	err     error
}

func (h *fakeHost) Upload(ctx context.Context, name string, r io.Reader, contentType string) (*imagehost.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	h.uploads++
	return &imagehost.Result{URL: "https://i.ibb.co/proof/" + name, ID: "proof"}, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	counts map[string]int
	spend  map[string]int64
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{counts: map[string]int{}, spend: map[string]int64{}}
}

func (u *fakeUsers) RecordBooking(ctx context.Context, id, email string, total int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	u.counts[id]++
	u.spend[id] += total
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes []string
}

func (n *recordingNotifier) BookingSubmitted(ctx context.Context, b *Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes = append(n.codes, b.Code)
}

type fixture struct {
	svc    *Service
	store  *memStore
	host   *fakeHost
	users  *fakeUsers
	feed   *recordingFeed
	mailer *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	feed := &recordingFeed{}
	avail := availability.NewService(store, nil, stubRooms{}, feed, time.UTC)
	today, _ := availability.ParseDate("2024-05-20")

	f := &fixture{
		store:  store,
		host:   &fakeHost{},
		users:  newFakeUsers(),
		feed:   feed,
		mailer: &recordingNotifier{},
	}
	f.svc = NewService(store, hotelClock{Service: avail, today: today}, f.users, f.host,
		imaging.NewProcessor(imaging.DefaultConfig()),
		UPIConfig{VPA: "hotel@upi", PayeeName: "Stay Haven"})
	f.svc.SetNotifier(f.mailer)
	return f
}

var guest = session.Session{UserID: "uid-guest", Email: "guest@example.com", Role: "user"}

func stayRequest() *SubmitRequest {
	return &SubmitRequest{
		QuoteRequest: QuoteRequest{
			RoomID:      "deluxe",
			CheckIn:     "2024-06-01",
			CheckOut:    "2024-06-03",
			Adults:      2,
			Rooms:       2,
			PaymentType: "advance",
		},
		GuestName: "Asha Rao",
		Phone:     "+91 98765 43210",
	}
}

func screenshot(t *testing.T) io.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 80))
	img.Set(3, 3, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode screenshot: %v", err)
	}
	return &buf
}

var errStoreDown = errors.New("connection refused")

func textFile(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}

var errUploadRejected = &imagehost.UploadError{Provider: "imgbb", Message: "Rate limit reached."}
