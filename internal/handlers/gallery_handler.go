package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type GalleryHandler struct {
	repo       repository.GalleryRepository
	files      services.FileStore
	revalidate *services.RevalidateClient
}

func NewGalleryHandler(repo repository.GalleryRepository, files services.FileStore, revalidate *services.RevalidateClient) *GalleryHandler {
	return &GalleryHandler{repo: repo, files: files, revalidate: revalidate}
}

// parseGalleryForm reads the gallery form: scalar fields plus indexed image
// slots (images[0][url], images[0][key], ...) walked until the first missing
// url. Order indexes are assigned densely from the submitted order.
func parseGalleryForm(values url.Values) (*models.Gallery, []models.GalleryImage, error) {
	title := values.Get("title")
	slug := values.Get("slug")
	if title == "" || slug == "" {
		return nil, nil, &models.ValidationError{Msg: "missing required fields"}
	}

	date, err := time.Parse("2006-01-02", values.Get("date"))
	if err != nil {
		return nil, nil, &models.ValidationError{Msg: "invalid date"}
	}

	gallery := &models.Gallery{
		Slug:  slug,
		Title: title,
		Date:  date,
	}
	if desc := values.Get("description"); desc != "" {
		gallery.Description = &desc
	}

	var images []models.GalleryImage
	for i := 0; ; i++ {
		imgURL := values.Get(fmt.Sprintf("images[%d][url]", i))
		if imgURL == "" {
			break
		}
		img := models.GalleryImage{
			URL:        imgURL,
			Key:        values.Get(fmt.Sprintf("images[%d][key]", i)),
			OrderIndex: len(images),
		}
		if caption := values.Get(fmt.Sprintf("images[%d][caption]", i)); caption != "" {
			img.Caption = &caption
		}
		images = append(images, img)
	}

	if len(images) > 0 {
		gallery.CoverImage = &images[0].URL
	}

	return gallery, images, nil
}

func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	gallery, images, err := parseGalleryForm(r.Form)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), gallery.Slug, 0, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}
	gallery.Slug = slug

	if err := h.repo.Create(r.Context(), gallery, images); err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/galleries", "/galleries/"+gallery.Slug, "/admin/galleries")

	writeJSON(w, http.StatusCreated, models.GalleryWithImages{Gallery: *gallery, Images: images})
}

// Update replaces the full image set. Stored keys missing from the submitted
// set are orphans: their files are deleted best-effort before the rows are
// swapped.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "gallery")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	gallery, images, err := parseGalleryForm(r.Form)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}
	gallery.ID = id

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), gallery.Slug, id, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}
	gallery.Slug = slug

	if orphans := orphanedKeys(existing.Images, images); len(orphans) > 0 {
		h.files.Delete(r.Context(), orphans...)
	}

	if err := h.repo.Update(r.Context(), gallery, images); err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/galleries", "/galleries/"+gallery.Slug, "/admin/galleries")

	writeJSON(w, http.StatusOK, models.GalleryWithImages{Gallery: *gallery, Images: images})
}

// orphanedKeys returns stored keys absent from the submitted image set.
func orphanedKeys(existing []models.GalleryImage, submitted []models.GalleryImage) []string {
	keep := make(map[string]bool, len(submitted))
	for _, img := range submitted {
		keep[img.Key] = true
	}

	var orphans []string
	for _, img := range existing {
		if img.Key != "" && !keep[img.Key] {
			orphans = append(orphans, img.Key)
		}
	}
	return orphans
}

func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "gallery")
	if !ok {
		return
	}

	gallery, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	writeJSON(w, http.StatusOK, gallery)
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	galleries, err := h.repo.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	if galleries == nil {
		galleries = []*models.Gallery{}
	}
	writePaginatedResponse(w, http.StatusOK, galleries, pagination.page, pagination.pageSize, total)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "gallery")
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	var keys []string
	for _, img := range existing.Images {
		if img.Key != "" {
			keys = append(keys, img.Key)
		}
	}
	if len(keys) > 0 {
		h.files.Delete(r.Context(), keys...)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/galleries", "/galleries/"+existing.Slug, "/admin/galleries")

	writeJSONMessage(w, http.StatusOK, "gallery deleted successfully")
}
