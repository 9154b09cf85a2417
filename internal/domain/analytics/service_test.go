package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/stayhaven/hotel-api/internal/middleware"
	"github.com/stayhaven/hotel-api/internal/pkg/jwt"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
)

type memRepo struct {
	mu     sync.Mutex
	visits []*Visit
}

func (m *memRepo) Create(ctx context.Context, v *Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.CreatedAt = time.Now()
	m.visits = append(m.visits, v)
	return nil
}

// memDeduper ignores expiry; every test runs inside one window
type memDeduper struct {
	seen map[string]bool
	err  error
}

func (d *memDeduper) FirstVisit(ctx context.Context, visitorID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[visitorID] {
		return false, nil
	}
	d.seen[visitorID] = true
	return true, nil
}

func TestRecordVisitOncePerWindow(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &memDeduper{seen: map[string]bool{}})
	ctx := context.Background()
	req := &RecordRequest{VisitorID: "v-1", Path: "/rooms"}

	first, err := svc.RecordVisit(ctx, session.Session{}, Client{IP: "203.0.113.9"}, req)
	if err != nil || !first.Recorded {
		t.Fatalf("expected first visit recorded, got %+v (%v)", first, err)
	}
	again, err := svc.RecordVisit(ctx, session.Session{}, Client{IP: "203.0.113.9"}, req)
	if err != nil || again.Recorded {
		t.Fatalf("expected duplicate to be skipped, got %+v (%v)", again, err)
	}
	if len(repo.visits) != 1 {
		t.Fatalf("expected one stored visit, got %d", len(repo.visits))
	}
	if repo.visits[0].UserID.Valid {
		t.Fatal("anonymous visit must not carry a user id")
	}
}

func TestRecordVisitLinksSignedInGuest(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil)

	res, err := svc.RecordVisit(context.Background(),
		session.Session{UserID: "uid-1", Email: "guest@example.com"},
		Client{IP: "198.51.100.4", UserAgent: "Mozilla/5.0"},
		&RecordRequest{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.VisitorID == "" {
		t.Fatal("expected a generated visitor id")
	}
	v := repo.visits[0]
	if v.UserID.String != "uid-1" || v.UserEmail.String != "guest@example.com" || v.UserAgent != "Mozilla/5.0" {
		t.Fatalf("unexpected visit %+v", v)
	}
}

func TestRecordVisitSurvivesDedupeOutage(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &memDeduper{err: errors.New("redis down")})

	res, err := svc.RecordVisit(context.Background(), session.Session{}, Client{}, &RecordRequest{VisitorID: "v-2"})
	if err != nil || !res.Recorded {
		t.Fatalf("expected visit recorded despite dedupe failure, got %+v (%v)", res, err)
	}
}

func TestHandlerUsesForwardedIPAndOptionalAuth(t *testing.T) {
	repo := &memRepo{}
	jwtSvc := jwt.NewService("test-secret", "", time.Hour)
	h := NewHandler(NewService(repo, nil))
	router := chimw.RealIP(h.Routes(middleware.OptionalAuth(jwtSvc)))

	token, _ := jwtSvc.GenerateAccessToken("uid-7", "seven@example.com", "user")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"path":"/gallery","screen_resolution":"1920x1080"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.50")
	req.Header.Set("X-Visitor-ID", "v-header")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	v := repo.visits[0]
	if v.IP != "203.0.113.50" || v.VisitorID != "v-header" || v.UserID.String != "uid-7" {
		t.Fatalf("unexpected visit %+v", v)
	}

	// anonymous beacon still works
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"visitor_id":"v-anon"}`)))
	if w.Code != http.StatusOK || len(repo.visits) != 2 {
		t.Fatalf("expected anonymous visit recorded, got %d", w.Code)
	}
}

func TestRedisDeduperExpiresAfterWindow(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	defer rdb.Close()
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	visitor := "dedupe-test-" + time.Now().Format("150405.000000")
	defer rdb.Del(ctx, visitKey(visitor))

	d := NewRedisDeduper(rdb, 200*time.Millisecond)
	if first, err := d.FirstVisit(ctx, visitor); err != nil || !first {
		t.Fatalf("expected first visit, got %v (%v)", first, err)
	}
	if first, _ := d.FirstVisit(ctx, visitor); first {
		t.Fatal("expected repeat inside the window to be deduped")
	}
	time.Sleep(300 * time.Millisecond)
	if first, _ := d.FirstVisit(ctx, visitor); !first {
		t.Fatal("expected a new visit after the window")
	}
}

func TestNewRedisDeduperWithoutClient(t *testing.T) {
	if NewRedisDeduper(nil, time.Minute) != nil {
		t.Fatal("expected nil deduper without redis")
	}
}
