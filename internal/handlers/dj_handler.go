package handlers

import (
	"encoding/json"
	"net/http"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type DJHandler struct {
	repo       repository.DJRepository
	files      services.FileStore
	revalidate *services.RevalidateClient
}

func NewDJHandler(repo repository.DJRepository, files services.FileStore, revalidate *services.RevalidateClient) *DJHandler {
	return &DJHandler{repo: repo, files: files, revalidate: revalidate}
}

func djFromRequest(req *models.CreateDJRequest) *models.DJ {
	dj := &models.DJ{
		Name:         req.Name,
		Title:        req.Title,
		Specialty:    req.Specialty,
		Experience:   req.Experience,
		Performances: req.Performances,
		Bio:          req.Bio,
		Highlights:   req.Highlights,
		Instagram:    req.Instagram,
		Soundcloud:   req.Soundcloud,
		Image:        req.Image,
		ImageKey:     req.ImageKey,
		IsActive:     true,
	}
	if req.IsActive != nil {
		dj.IsActive = *req.IsActive
	}
	return dj
}

func (h *DJHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDJRequest
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
		writeRepoError(w, err, "dj")
		return
	}

	dj := djFromRequest(&req)
	dj.Slug = slug

	if err := h.repo.Create(r.Context(), dj); err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/djs", "/djs/"+dj.Slug, "/admin/djs")

	writeJSON(w, http.StatusCreated, dj)
}

func (h *DJHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "dj")
	if !ok {
		return
	}

	dj, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	writeJSON(w, http.StatusOK, dj)
}

func (h *DJHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	djs, err := h.repo.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	if djs == nil {
		djs = []*models.DJ{}
	}
	writePaginatedResponse(w, http.StatusOK, djs, pagination.page, pagination.pageSize, total)
}

func (h *DJHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "dj")
	if !ok {
		return
	}

	var req models.CreateDJRequest
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
		writeRepoError(w, err, "dj")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), models.Slugify(req.Name), id, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	dj := djFromRequest(&req)
	dj.ID = id
	dj.Slug = slug

	if err := h.repo.Update(r.Context(), dj); err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	if staleKey := changedImageKey(existing.ImageKey, dj.ImageKey); staleKey != "" {
		h.files.Delete(r.Context(), staleKey)
	}

	h.revalidate.Revalidate(r.Context(), "/djs", "/djs/"+dj.Slug, "/admin/djs")

	writeJSON(w, http.StatusOK, dj)
}

func (h *DJHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "dj")
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	if existing.ImageKey != nil && *existing.ImageKey != "" {
		h.files.Delete(r.Context(), *existing.ImageKey)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "dj")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/djs", "/djs/"+existing.Slug, "/admin/djs")

	writeJSONMessage(w, http.StatusOK, "dj deleted successfully")
}
