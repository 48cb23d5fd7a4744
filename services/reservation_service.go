package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"restaurant-system/models"
	"restaurant-system/monitoring"
	"restaurant-system/stores"
)

// tableCount is the size of the fixed dining-room inventory; table numbers
// run 1..tableCount and map to inventory ids T001..T012.
const tableCount = 12

// ReservationService owns confirmed bookings, the table inventory view and
// the secondary reservation waiting list.
type ReservationService struct {
	store   stores.ReservationStore
	waiting stores.WaitingStore
	tables  stores.TableStore
	queue   *QueueService
	monitor *monitoring.Monitor
}

func NewReservationService(
	store stores.ReservationStore,
	waiting stores.WaitingStore,
	tables stores.TableStore,
	queue *QueueService,
	monitor *monitoring.Monitor,
) *ReservationService {
	return &ReservationService{
		store:   store,
		waiting: waiting,
		tables:  tables,
		queue:   queue,
		monitor: monitor,
	}
}

// Create books the lowest-numbered free table for the date and slot. The
// reservationId is the upsert key, so replays and edits land on the same
// booking instead of duplicating it.
func (s *ReservationService) Create(req *models.ReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		s.trackReservation("create", "invalid")
		return nil, err
	}

	tableNumber := req.TableNumber
	if tableNumber == 0 {
		taken, err := s.store.ReservedTableNumbers(req.Date, req.TimeSlot)
		if err != nil {
			s.trackReservation("create", "error")
			return nil, err
		}
		for n := 1; n <= tableCount; n++ {
			if !taken[n] {
				tableNumber = n
				break
			}
		}
		if tableNumber == 0 {
			s.trackReservation("create", "full")
			return nil, models.ErrNoTablesAvailable
		}
	}

	status := req.Status
	if status == "" {
		status = "Confirmed"
	}

	reservation := &models.Reservation{
		ReservationID: req.ReservationID,
		UserID:        req.UserID,
		TableNumber:   tableNumber,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Guests:        req.Guests,
		Location:      req.Location,
		Segment:       req.Segment,
		UserName:      req.UserName,
		UserPhone:     req.UserPhone,
		Status:        status,
	}
	if err := s.store.Upsert(reservation); err != nil {
		s.trackReservation("create", "error")
		return nil, err
	}

	s.trackReservation("create", "success")
	slog.Info("reservation created", "reservationId", reservation.ReservationID, "table", tableNumber)
	return reservation, nil
}

// Cancel deletes the booking and offers the freed table to the head of the
// matching waitlist cohort. The offer is best-effort: the canceling caller
// is unrelated to the queue and never sees its failures.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	reservation, err := s.store.FindByID(reservationID)
	if err != nil {
		s.trackReservation("cancel", "not_found")
		return err
	}

	deleted, err := s.store.Delete(reservationID)
	if err != nil {
		s.trackReservation("cancel", "error")
		return err
	}
	if deleted == 0 {
		s.trackReservation("cancel", "not_found")
		return models.ErrNotFound
	}

	if s.queue != nil {
		if err := s.queue.OfferTableFromCancellation(ctx, reservation); err != nil {
			slog.Warn("table offer after cancellation failed", "reservationId", reservationID, "error", err)
		}
	}

	s.trackReservation("cancel", "success")
	slog.Info("reservation cancelled", "reservationId", reservationID)
	return nil
}

func (s *ReservationService) List(filter models.ReservationFilter) ([]*models.Reservation, error) {
	return s.store.List(filter)
}

func (s *ReservationService) Tables() ([]*models.Table, error) {
	return s.tables.All()
}

// Availability filters the inventory by location, segment and capacity, then
// flags each surviving table against existing bookings for the slot.
// ShowWaitingQueueOption is true only when matches exist and all are taken.
func (s *ReservationService) Availability(date, timeSlot, location, segment string, guests int) (*models.AvailabilityResult, error) {
	tables, err := s.tables.All()
	if err != nil {
		return nil, err
	}

	taken, err := s.store.ReservedTableNumbers(date, timeSlot)
	if err != nil {
		return nil, err
	}
	reservedIDs := make(map[string]bool, len(taken))
	for n := range taken {
		reservedIDs[fmt.Sprintf("T%03d", n)] = true
	}

	result := &models.AvailabilityResult{Tables: []models.TableAvailability{}}
	anyAvailable := false
	for _, table := range tables {
		if !locationMatches(location, table.Location) {
			continue
		}
		if !segmentWordMatches(segment, table.Segment) {
			continue
		}
		if guests > 0 && table.Capacity < guests {
			continue
		}

		available := !reservedIDs[table.TableID]
		if available {
			anyAvailable = true
		}
		result.Tables = append(result.Tables, models.TableAvailability{Table: *table, IsAvailable: available})
	}

	result.ShowWaitingQueueOption = len(result.Tables) > 0 && !anyAvailable
	return result, nil
}

// JoinWaitingList enrolls a party on the secondary reservation waiting list.
// Positions here are coarse, per (date, slot), and never resequenced.
func (s *ReservationService) JoinWaitingList(req *models.WaitingJoinRequest) (*models.WaitingReservation, error) {
	if err := req.Validate(); err != nil {
		s.trackReservation("waitlist_join", "invalid")
		return nil, err
	}

	count, err := s.waiting.Count(req.Date, req.TimeSlot)
	if err != nil {
		s.trackReservation("waitlist_join", "error")
		return nil, err
	}
	position := count + 1

	entry := &models.WaitingReservation{
		QueueID:       req.QueueID,
		UserID:        req.UserID,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Guests:        req.Guests,
		Position:      position,
		EstimatedWait: estimatedWaitRange(position),
	}
	if err := s.waiting.Upsert(entry); err != nil {
		s.trackReservation("waitlist_join", "error")
		return nil, err
	}

	s.trackReservation("waitlist_join", "success")
	return entry, nil
}

func (s *ReservationService) LeaveWaitingList(queueID string) error {
	deleted, err := s.waiting.Delete(queueID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return models.ErrNotFound
	}
	s.trackReservation("waitlist_leave", "success")
	return nil
}

func (s *ReservationService) ListWaiting(filter models.ReservationFilter) ([]*models.WaitingReservation, error) {
	return s.waiting.List(filter)
}

func locationMatches(requested, tableLocation string) bool {
	if strings.EqualFold(requested, "any") || requested == "" {
		return true
	}
	return strings.EqualFold(requested, tableLocation)
}

// segmentWordMatches compares only the first word of the requested segment,
// so "Front Section" still matches a table segment of "Front".
func segmentWordMatches(requested, tableSegment string) bool {
	if strings.EqualFold(requested, "any") || requested == "" {
		return true
	}
	words := strings.Fields(requested)
	if len(words) == 0 {
		return true
	}
	return strings.Contains(strings.ToLower(tableSegment), strings.ToLower(words[0]))
}

func estimatedWaitRange(position int) string {
	low := position * 10
	if low < 5 {
		low = 5
	}
	high := position*10 + 5
	if high < 10 {
		high = 10
	}
	return fmt.Sprintf("%d-%d mins", low, high)
}

func (s *ReservationService) trackReservation(operation, status string) {
	if s.monitor != nil {
		s.monitor.TrackReservationOperation(operation, status)
	}
}
