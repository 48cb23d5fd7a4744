package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
)

// writeDomainError maps domain errors to the wire contract the frontends
// rely on: {"error": "<field>_required"} 400, {"error": "not_found"} 404,
// {"error": "no_tables_available"} 409. Anything else is a plain 500.
func writeDomainError(e *core.RequestEvent, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return e.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, models.ErrNotFound):
		return e.JSON(http.StatusNotFound, map[string]string{"error": "not_found"})
	case errors.Is(err, models.ErrNoTablesAvailable):
		return e.JSON(http.StatusConflict, map[string]string{"error": "no_tables_available"})
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Internal error", err)
	}
}
