package gallery

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stayhaven/hotel-api/internal/middleware"
	"github.com/stayhaven/hotel-api/internal/pkg/jwt"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
)

func addRequest(t *testing.T, token string, file io.Reader) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	_ = mw.WriteField("category", "Dining")
	part, err := mw.CreateFormFile("image", "dining.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		t.Fatalf("copy: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAddRequiresAdmin(t *testing.T) {
	svc, repo, _ := newTestService()
	jwtSvc := jwt.NewService("test-secret", "", time.Hour)
	router := NewHandler(svc, 1<<20).Routes(middleware.Auth(jwtSvc))

	guestToken, _ := jwtSvc.GenerateAccessToken("uid-guest", "guest@example.com", "user")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, addRequest(t, guestToken, pngFile(t)))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guest, got %d", w.Code)
	}

	adminToken, _ := jwtSvc.GenerateAccessToken("uid-admin", "staff@example.com", session.RoleAdmin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, addRequest(t, adminToken, pngFile(t)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
	if len(repo.images) != 1 || repo.images[0].Category != "Dining" {
		t.Fatalf("unexpected stored images %+v", repo.images)
	}
}

func TestListIsPublic(t *testing.T) {
	svc, _, _ := newTestService()
	router := NewHandler(svc, 1<<20).Routes(middleware.Auth(jwt.NewService("s", "", time.Hour)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?category=rooms", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data ListResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Images == nil || body.Data.Categories == nil {
		t.Fatal("expected empty arrays, not null")
	}
}
