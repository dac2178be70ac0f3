package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type fakeFileStore struct {
	deleted []string
}

var _ services.FileStore = (*fakeFileStore)(nil)

func (f *fakeFileStore) Store(ctx context.Context, body io.Reader, filename string) (*services.StoredFile, error) {
	return &services.StoredFile{URL: "https://cdn.example.com/uploads/" + filename, Key: "uploads/" + filename}, nil
}

func (f *fakeFileStore) Delete(ctx context.Context, keys ...string) {
	f.deleted = append(f.deleted, keys...)
}

type mockGalleryRepo struct {
	stored  *models.GalleryWithImages
	updated *models.GalleryWithImages
}

var _ repository.GalleryRepository = (*mockGalleryRepo)(nil)

func (m *mockGalleryRepo) Create(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error {
	gallery.ID = 1
	return nil
}

func (m *mockGalleryRepo) Update(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error {
	m.updated = &models.GalleryWithImages{Gallery: *gallery, Images: images}
	return nil
}

func (m *mockGalleryRepo) GetByID(ctx context.Context, id int64) (*models.GalleryWithImages, error) {
	if m.stored == nil || m.stored.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.stored, nil
}

func (m *mockGalleryRepo) GetBySlug(ctx context.Context, slug string) (*models.GalleryWithImages, error) {
	return nil, sql.ErrNoRows
}

func (m *mockGalleryRepo) List(ctx context.Context, limit int, offset int) ([]*models.Gallery, error) {
	return nil, nil
}

func (m *mockGalleryRepo) ListPublic(ctx context.Context) ([]*models.Gallery, error) { return nil, nil }
func (m *mockGalleryRepo) Count(ctx context.Context) (int, error)                    { return 0, nil }
func (m *mockGalleryRepo) Delete(ctx context.Context, id int64) error                { return nil }
func (m *mockGalleryRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return false, nil
}

func storedGallery() *models.GalleryWithImages {
	return &models.GalleryWithImages{
		Gallery: models.Gallery{
			ID:    10,
			Slug:  "opening-night",
			Title: "Opening Night",
			Date:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		Images: []models.GalleryImage{
			{ID: 1, GalleryID: 10, URL: "https://cdn.example.com/a.jpg", Key: "uploads/a.jpg", OrderIndex: 0},
			{ID: 2, GalleryID: 10, URL: "https://cdn.example.com/b.jpg", Key: "uploads/b.jpg", OrderIndex: 1},
			{ID: 3, GalleryID: 10, URL: "https://cdn.example.com/c.jpg", Key: "uploads/c.jpg", OrderIndex: 2},
		},
	}
}

// Updating a gallery with images {B, D} when {A, B, C} are stored must delete
// exactly the files for A and C and persist {B, D} with dense order indexes.
func TestGalleryUpdateDeletesOrphanedImageFiles(t *testing.T) {
	repo := &mockGalleryRepo{stored: storedGallery()}
	files := &fakeFileStore{}
	h := NewGalleryHandler(repo, files, nil)

	r := chi.NewRouter()
	r.Put("/galleries/{id}", h.Update)

	form := url.Values{
		"title": {"Opening Night"},
		"slug":  {"opening-night"},
		"date":  {"2026-06-01"},
	}
	form.Set("images[0][url]", "https://cdn.example.com/b.jpg")
	form.Set("images[0][key]", "uploads/b.jpg")
	form.Set("images[1][url]", "https://cdn.example.com/d.jpg")
	form.Set("images[1][key]", "uploads/d.jpg")

	req := httptest.NewRequest(http.MethodPut, "/galleries/10", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	sort.Strings(files.deleted)
	if len(files.deleted) != 2 || files.deleted[0] != "uploads/a.jpg" || files.deleted[1] != "uploads/c.jpg" {
		t.Fatalf("expected deletes for a.jpg and c.jpg, got %v", files.deleted)
	}

	if repo.updated == nil {
		t.Fatal("expected repository update")
	}
	if len(repo.updated.Images) != 2 {
		t.Fatalf("expected 2 stored images, got %d", len(repo.updated.Images))
	}
	if repo.updated.Images[0].Key != "uploads/b.jpg" || repo.updated.Images[0].OrderIndex != 0 {
		t.Fatalf("unexpected first image: %+v", repo.updated.Images[0])
	}
	if repo.updated.Images[1].Key != "uploads/d.jpg" || repo.updated.Images[1].OrderIndex != 1 {
		t.Fatalf("unexpected second image: %+v", repo.updated.Images[1])
	}
	if repo.updated.CoverImage == nil || *repo.updated.CoverImage != "https://cdn.example.com/b.jpg" {
		t.Fatalf("expected cover image to track first image, got %v", repo.updated.CoverImage)
	}
}

// Removing every image leaves no cover and deletes all stored files.
func TestGalleryUpdateWithNoImagesClearsCover(t *testing.T) {
	repo := &mockGalleryRepo{stored: storedGallery()}
	files := &fakeFileStore{}
	h := NewGalleryHandler(repo, files, nil)

	r := chi.NewRouter()
	r.Put("/galleries/{id}", h.Update)

	form := url.Values{
		"title": {"Opening Night"},
		"slug":  {"opening-night"},
		"date":  {"2026-06-01"},
	}

	req := httptest.NewRequest(http.MethodPut, "/galleries/10", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(files.deleted) != 3 {
		t.Fatalf("expected 3 deleted files, got %v", files.deleted)
	}
	if repo.updated.CoverImage != nil {
		t.Fatalf("expected nil cover image, got %v", *repo.updated.CoverImage)
	}
}

func TestGalleryUpdateMissingGalleryReturns404(t *testing.T) {
	repo := &mockGalleryRepo{}
	h := NewGalleryHandler(repo, &fakeFileStore{}, nil)

	r := chi.NewRouter()
	r.Put("/galleries/{id}", h.Update)

	form := url.Values{
		"title": {"Opening Night"},
		"slug":  {"opening-night"},
		"date":  {"2026-06-01"},
	}

	req := httptest.NewRequest(http.MethodPut, "/galleries/99", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}
