package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
	"restaurant-system/services"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Tables - GET /api/tables
func (h *ReservationHandler) Tables(e *core.RequestEvent) error {
	tables, err := h.reservationService.Tables()
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"tables": tables})
}

// List - GET /api/reservations
func (h *ReservationHandler) List(e *core.RequestEvent) error {
	filter := models.ReservationFilter{UserID: e.Request.URL.Query().Get("userId")}
	reservations, err := h.reservationService.List(filter)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"reservations": reservations})
}

// Create - POST /api/reservations
func (h *ReservationHandler) Create(e *core.RequestEvent) error {
	var req models.ReservationRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	reservation, err := h.reservationService.Create(&req)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusCreated, reservation)
}

// Cancel - DELETE /api/reservations/{reservationId}
func (h *ReservationHandler) Cancel(e *core.RequestEvent) error {
	reservationID := e.Request.PathValue("reservationId")
	if err := h.reservationService.Cancel(e.Request.Context(), reservationID); err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"ok": true})
}

// Availability - GET /api/reservations/availability
func (h *ReservationHandler) Availability(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	date := query.Get("date")
	timeSlot := query.Get("timeSlot")
	if date == "" || timeSlot == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": "date_and_timeSlot_required"})
	}

	location := query.Get("location")
	if location == "" {
		location = "any"
	}
	segment := query.Get("segment")
	if segment == "" {
		segment = "any"
	}
	guests := 2
	if raw := query.Get("guests"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			guests = parsed
		}
	}

	result, err := h.reservationService.Availability(date, timeSlot, location, segment, guests)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, result)
}

// ListWaiting - GET /api/reservation-waiting-queue
func (h *ReservationHandler) ListWaiting(e *core.RequestEvent) error {
	filter := models.ReservationFilter{UserID: e.Request.URL.Query().Get("userId")}
	entries, err := h.reservationService.ListWaiting(filter)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"entries": entries})
}

// JoinWaiting - POST /api/reservation-waiting-queue
func (h *ReservationHandler) JoinWaiting(e *core.RequestEvent) error {
	var req models.WaitingJoinRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	entry, err := h.reservationService.JoinWaitingList(&req)
	if err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusCreated, entry)
}

// LeaveWaiting - DELETE /api/reservation-waiting-queue/{queueId}
func (h *ReservationHandler) LeaveWaiting(e *core.RequestEvent) error {
	queueID := e.Request.PathValue("queueId")
	if err := h.reservationService.LeaveWaitingList(queueID); err != nil {
		return writeDomainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]any{"ok": true})
}
