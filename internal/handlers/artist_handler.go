package handlers

import (
	"encoding/json"
	"net/http"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type ArtistHandler struct {
	repo       repository.ArtistRepository
	files      services.FileStore
	revalidate *services.RevalidateClient
}

func NewArtistHandler(repo repository.ArtistRepository, files services.FileStore, revalidate *services.RevalidateClient) *ArtistHandler {
	return &ArtistHandler{repo: repo, files: files, revalidate: revalidate}
}

func (h *ArtistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	slug, err := models.UniqueSlug(r.Context(), models.Slugify(req.Name), 0, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	artist := &models.Artist{
		Slug:       slug,
		Name:       req.Name,
		Instagram:  req.Instagram,
		Soundcloud: req.Soundcloud,
		Image:      req.Image,
		ImageKey:   req.ImageKey,
	}

	if err := h.repo.Create(r.Context(), artist); err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/artists", "/admin/artists")

	writeJSON(w, http.StatusCreated, artist)
}

func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "artist")
	if !ok {
		return
	}

	artist, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	artists, err := h.repo.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	if artists == nil {
		artists = []*models.Artist{}
	}
	writePaginatedResponse(w, http.StatusOK, artists, pagination.page, pagination.pageSize, total)
}

func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "artist")
	if !ok {
		return
	}

	var req models.CreateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), models.Slugify(req.Name), id, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	artist := &models.Artist{
		ID:         id,
		Slug:       slug,
		Name:       req.Name,
		Instagram:  req.Instagram,
		Soundcloud: req.Soundcloud,
		Image:      req.Image,
		ImageKey:   req.ImageKey,
	}

	if err := h.repo.Update(r.Context(), artist); err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	if staleKey := changedImageKey(existing.ImageKey, artist.ImageKey); staleKey != "" {
		h.files.Delete(r.Context(), staleKey)
	}

	h.revalidate.Revalidate(r.Context(), "/artists", "/admin/artists")

	writeJSON(w, http.StatusOK, artist)
}

func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "artist")
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	if existing.ImageKey != nil && *existing.ImageKey != "" {
		h.files.Delete(r.Context(), *existing.ImageKey)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "artist")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/artists", "/admin/artists")

	writeJSONMessage(w, http.StatusOK, "artist deleted successfully")
}
