package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
)

// writeRepoError maps the error taxonomy onto HTTP responses: validation
// failures are 400, missing rows 404, blocked deletes 409, and everything
// else is a logged 500 with a generic body.
func writeRepoError(w http.ResponseWriter, err error, resource string) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", validationErr.Msg)
		return
	}

	if errors.Is(err, sql.ErrNoRows) {
		writeJSONErrorResponse(w, http.StatusNotFound, resource+"_not_found", resource+" not found")
		return
	}

	var blocked *interfaces.DeletionBlockedError
	if errors.As(err, &blocked) {
		msg := blocked.Resource + " still has"
		for name, count := range blocked.References {
			msg = fmt.Sprintf("%s %d associated %s", msg, count, name)
		}
		writeJSONErrorResponse(w, http.StatusConflict, "deletion_blocked", msg)
		return
	}

	log.Error().Err(err).Str("resource", resource).Msg("request failed")
	writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to process "+resource)
}
