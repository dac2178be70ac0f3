package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
	"stagefront/internal/services"
)

type EventHandler struct {
	repo       interfaces.EventRepository
	files      services.FileStore
	revalidate *services.RevalidateClient
	stopMode   models.StopParseMode
}

func NewEventHandler(repo interfaces.EventRepository, files services.FileStore, revalidate *services.RevalidateClient, stopMode models.StopParseMode) *EventHandler {
	return &EventHandler{
		repo:       repo,
		files:      files,
		revalidate: revalidate,
		stopMode:   stopMode,
	}
}

// Create accepts the admin event form: flat indexed keys for artists and
// stops, urlencoded or multipart. Validation happens before any write.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	form, err := models.ParseEventForm(r.Form, h.stopMode)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	agg, err := form.Normalize()
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), agg.Event.Slug, 0, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}
	agg.Event.Slug = slug

	event, err := h.repo.Create(r.Context(), agg)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/", "/events/"+event.Slug, "/admin/events")

	writeJSON(w, http.StatusCreated, event)
}

// Update is a full replace of the aggregate: the submitted artist and stop
// lists overwrite whatever is stored. A changed poster key triggers a
// best-effort delete of the old file after the row write succeeds.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	form, err := models.ParseEventForm(r.Form, h.stopMode)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}
	form.ID = id

	agg, err := form.Normalize()
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	slug, err := models.UniqueSlug(r.Context(), agg.Event.Slug, id, h.repo.SlugExists)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}
	agg.Event.Slug = slug

	event, err := h.repo.Update(r.Context(), agg)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	if staleKey := changedImageKey(existing.ImageKey, event.ImageKey); staleKey != "" {
		h.files.Delete(r.Context(), staleKey)
	}

	h.revalidate.Revalidate(r.Context(), "/", "/events/"+event.Slug, "/admin/events", "/admin/events/"+strconv.FormatInt(id, 10))

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}

	event, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := parsePaginationParams(r, 20, 100)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_pagination", "Invalid pagination: "+err.Error())
		return
	}

	events, err := h.repo.List(r.Context(), pagination.limit, pagination.offset)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	if events == nil {
		events = []*models.EventWithVenue{}
	}
	writePaginatedResponse(w, http.StatusOK, events, pagination.page, pagination.pageSize, total)
}

// Delete removes the poster best-effort first, then the row; stops and
// lineup links go via the cascade.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "event")
	if !ok {
		return
	}

	event, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	if event.ImageKey != nil {
		h.files.Delete(r.Context(), *event.ImageKey)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err, "event")
		return
	}

	h.revalidate.Revalidate(r.Context(), "/", "/events/"+event.Slug, "/admin/events")

	writeJSONMessage(w, http.StatusOK, "event deleted successfully")
}

func parseIDParam(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", resource+" ID is required")
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}

// changedImageKey returns the old key when the poster was replaced or
// removed, empty when unchanged or previously unset.
func changedImageKey(oldKey, newKey *string) string {
	if oldKey == nil || *oldKey == "" {
		return ""
	}
	if newKey != nil && *newKey == *oldKey {
		return ""
	}
	return *oldKey
}
