package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
	"stagefront/internal/repository"
)

type mockVenueRepo struct {
	stored    *models.Venue
	blockedBy int64
}

var _ repository.VenueRepository = (*mockVenueRepo)(nil)

func (m *mockVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	venue.ID = 1
	return nil
}

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	if m.stored == nil || m.stored.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.stored, nil
}

func (m *mockVenueRepo) GetBySlug(ctx context.Context, slug string) (*models.Venue, error) {
	return nil, sql.ErrNoRows
}

func (m *mockVenueRepo) List(ctx context.Context, limit int, offset int) ([]*models.Venue, error) {
	return nil, nil
}

func (m *mockVenueRepo) Count(ctx context.Context) (int, error)                { return 0, nil }
func (m *mockVenueRepo) Update(ctx context.Context, venue *models.Venue) error { return nil }

func (m *mockVenueRepo) Delete(ctx context.Context, id int64) error {
	if m.blockedBy > 0 {
		return &interfaces.DeletionBlockedError{
			Resource:   "venue",
			References: map[string]int64{"events": m.blockedBy},
		}
	}
	if m.stored == nil || m.stored.ID != id {
		return sql.ErrNoRows
	}
	return nil
}

func (m *mockVenueRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return false, nil
}

func TestDeleteVenueBlockedReturns409(t *testing.T) {
	repo := &mockVenueRepo{
		stored:    &models.Venue{ID: 5, Slug: "warehouse", Name: "Warehouse", City: "Berlin", Country: "Germany"},
		blockedBy: 3,
	}
	files := &fakeFileStore{}
	h := NewVenueHandler(repo, files, nil)

	r := chi.NewRouter()
	r.Delete("/venues/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/venues/5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "deletion_blocked" {
		t.Fatalf("expected deletion_blocked, got %v", resp["error"])
	}
	if len(files.deleted) != 0 {
		t.Fatalf("blocked delete must not remove files, got %v", files.deleted)
	}
}

func TestDeleteVenueRemovesImagesAfterRow(t *testing.T) {
	repo := &mockVenueRepo{
		stored: &models.Venue{
			ID: 5, Slug: "warehouse", Name: "Warehouse", City: "Berlin", Country: "Germany",
			ImageKeys: []string{"uploads/v1.jpg", "uploads/v2.jpg"},
		},
	}
	files := &fakeFileStore{}
	h := NewVenueHandler(repo, files, nil)

	r := chi.NewRouter()
	r.Delete("/venues/{id}", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/venues/5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(files.deleted) != 2 {
		t.Fatalf("expected both venue images deleted, got %v", files.deleted)
	}
}

func TestCreateVenueRejectsTooManyImages(t *testing.T) {
	h := NewVenueHandler(&mockVenueRepo{}, &fakeFileStore{}, nil)

	body := `{"name":"Warehouse","city":"Berlin","country":"Germany",
		"images":["a","b","c","d"],"image_keys":["a","b","c","d"]}`
	req := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}
