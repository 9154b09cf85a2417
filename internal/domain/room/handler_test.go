package room

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fakeRepo struct {
	rooms map[string]*Room
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, ErrRoomNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*Room, error) {
	out := make([]*Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func newTestRouter() http.Handler {
	h := NewHandler(&fakeRepo{rooms: map[string]*Room{
		"deluxe": {ID: "deluxe", Name: "Deluxe Room", NightlyPrice: 2000},
	}})
	r := chi.NewRouter()
	r.Route("/rooms", h.Mount)
	return r
}

func TestGetByIDDefaultsStock(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/deluxe", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Success bool         `json:"success"`
		Data    RoomResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalStock != DefaultStock {
		t.Fatalf("expected default stock %d, got %d", DefaultStock, body.Data.TotalStock)
	}
	if body.Data.Images == nil {
		t.Fatal("images should serialise as an empty list")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/penthouse", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStock(t *testing.T) {
	if (&Room{TotalStock: 4}).Stock() != 4 {
		t.Fatal("explicit stock must be kept")
	}
	if (&Room{}).Stock() != DefaultStock {
		t.Fatal("unset stock must fall back to default")
	}
}
