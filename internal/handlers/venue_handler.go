package handlers

import (
	"encoding/json"
	"net/http"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type VenueHandler struct {
	repo       repository.VenueRepository
	files      services.FileStore
	revalidate *services.RevalidateClient
}

func NewVenueHandler(repo repository.VenueRepository, files services.FileStore, revalidate *services.RevalidateClient) *VenueHandler {
	return &VenueHandler{repo: repo, files: files, revalidate: revalidate}
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVenueRequest
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
		writeRepoError(w, err, "venue")
		return
	}

	venue := &models.Venue{
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		AddressURL:  req.AddressURL,
		City:        req.City,
		Country:     req.Country,
		Images:      req.Images,
		ImageKeys:   req.ImageKeys,
	}

	if err := h.repo.Create(r.Context(), venue); err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/venues", "/venues/"+venue.Slug, "/admin/venues")

	writeJSON(w, http.StatusCreated, venue)
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "venue")
	if !ok {
		return
	}

	venue, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	writeJSON(w, http.StatusOK, venue)
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	venues, err := h.repo.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	if venues == nil {
		venues = []*models.Venue{}
	}
	writePaginatedResponse(w, http.StatusOK, venues, pagination.page, pagination.pageSize, total)
}

// Update renames regenerate the slug. Image keys dropped from the submitted
// set have their files deleted best-effort.
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "venue")
	if !ok {
		return
	}

	var req models.CreateVenueRequest
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
		writeRepoError(w, err, "venue")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), models.Slugify(req.Name), id, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	venue := &models.Venue{
		ID:          id,
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		AddressURL:  req.AddressURL,
		City:        req.City,
		Country:     req.Country,
		Images:      req.Images,
		ImageKeys:   req.ImageKeys,
	}

	if orphans := droppedKeys(existing.ImageKeys, req.ImageKeys); len(orphans) > 0 {
		h.files.Delete(r.Context(), orphans...)
	}

	if err := h.repo.Update(r.Context(), venue); err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/venues", "/venues/"+venue.Slug, "/admin/venues")

	writeJSON(w, http.StatusOK, venue)
}

func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "venue")
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	// The repository refuses the delete while events reference this venue, so
	// files are only removed once the row is gone.
	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "venue")
		return
	}

	if len(existing.ImageKeys) > 0 {
		h.files.Delete(r.Context(), existing.ImageKeys...)
	}

	h.revalidate.Revalidate(r.Context(), "/venues", "/venues/"+existing.Slug, "/admin/venues")

	writeJSONMessage(w, http.StatusOK, "venue deleted successfully")
}

// droppedKeys returns keys present before but absent from the submitted set.
func droppedKeys(existing []string, submitted []string) []string {
	keep := make(map[string]bool, len(submitted))
	for _, k := range submitted {
		keep[k] = true
	}

	var dropped []string
	for _, k := range existing {
		if k != "" && !keep[k] {
			dropped = append(dropped, k)
		}
	}
	return dropped
}
