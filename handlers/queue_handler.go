package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
	"restaurant-system/services"
)

type QueueHandler struct {
	queueService *services.QueueService
}

func NewQueueHandler(queueService *services.QueueService) *QueueHandler {
	return &QueueHandler{queueService: queueService}
}

// List - GET /api/queue
func (h *QueueHandler) List(e *core.RequestEvent) error {
	filter := models.QueueFilter{
		QueueDate: e.Request.URL.Query().Get("queueDate"),
		UserID:    e.Request.URL.Query().Get("userId"),
	}

	entries, err := h.queueService.List(filter)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"entries": entries})
}

// Join - POST /api/queue/join
func (h *QueueHandler) Join(e *core.RequestEvent) error {
	var req models.JoinRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	entry, err := h.queueService.Join(e.Request.Context(), &req)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusCreated, entry)
}

// CheckAvailability - GET /api/queue/check-availability
func (h *QueueHandler) CheckAvailability(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	queueDate := query.Get("queueDate")
	timeSlot := query.Get("timeSlot")
	hall := query.Get("hall")
	segment := query.Get("segment")
	if queueDate == "" || timeSlot == "" || hall == "" || segment == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing_parameters"})
	}

	availability, err := h.queueService.CheckSlotAvailability(queueDate, timeSlot, hall, segment)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, availability)
}

// Poll - GET /api/queue/poll
func (h *QueueHandler) Poll(e *core.RequestEvent) error {
	userID := e.Request.URL.Query().Get("userId")
	if userID == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "userId_required"})
	}

	result, err := h.queueService.PollStatus(e.Request.Context(), userID)
	if err != nil {
		return writeDomainError(e, err)
	}

	if result.AutoExpired {
		return e.JSON(http.StatusOK, map[string]any{"entry": nil, "autoExpired": true})
	}
	if result.TableAvailable {
		return e.JSON(http.StatusOK, map[string]any{
			"entry":                       result.Entry,
			"tableAvailable":              true,
			"fromReservationCancellation": result.FromReservationCancellation,
		})
	}
	return e.JSON(http.StatusOK, map[string]any{"entry": result.Entry, "tableAvailable": false})
}

// Debug - GET /api/queue/debug
func (h *QueueHandler) Debug(e *core.RequestEvent) error {
	entries, err := h.queueService.List(models.QueueFilter{})
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"count": len(entries), "entries": entries})
}

// Cancel - DELETE /api/queue/{entryId}
func (h *QueueHandler) Cancel(e *core.RequestEvent) error {
	entryID := e.Request.PathValue("entryId")
	if err := h.queueService.Cancel(e.Request.Context(), entryID); err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"ok": true})
}

// Update - PATCH /api/queue/{entryId}
func (h *QueueHandler) Update(e *core.RequestEvent) error {
	var patch models.EntryPatch
	if err := e.BindBody(&patch); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	entryID := e.Request.PathValue("entryId")
	updated, err := h.queueService.UpdateFields(e.Request.Context(), entryID, &patch)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, updated)
}
