package stores

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
)

const reservationCollection = "reservations"

// ReservationStore is the persistence contract for confirmed reservations,
// keyed by the application-level reservationId.
type ReservationStore interface {
	Upsert(r *models.Reservation) error
	FindByID(reservationID string) (*models.Reservation, error)
	List(filter models.ReservationFilter) ([]*models.Reservation, error)
	// FindMatching returns reservations for the date and slot, optionally
	// narrowed by a location substring and a segment prefix (empty string
	// skips the constraint). Patterns use SQL LIKE wildcards.
	FindMatching(date, timeSlot, locationContains, segmentPrefix string) ([]*models.Reservation, error)
	// ReservedTableNumbers reports which table numbers are taken for the
	// date and slot.
	ReservedTableNumbers(date, timeSlot string) (map[int]bool, error)
	Delete(reservationID string) (int, error)
}

type pbReservationStore struct {
	app core.App
}

func NewReservationStore(app core.App) ReservationStore {
	return &pbReservationStore{app: app}
}

func (s *pbReservationStore) Upsert(r *models.Reservation) error {
	record, err := s.app.FindFirstRecordByFilter(reservationCollection, "reservationId = {:id}", dbx.Params{"id": r.ReservationID})
	if errors.Is(err, sql.ErrNoRows) {
		collection, cerr := s.app.FindCollectionByNameOrId(reservationCollection)
		if cerr != nil {
			return fmt.Errorf("find collection %s: %w", reservationCollection, cerr)
		}
		record = core.NewRecord(collection)
	} else if err != nil {
		return fmt.Errorf("find reservation %s: %w", r.ReservationID, err)
	}

	record.Set("reservationId", r.ReservationID)
	record.Set("userId", r.UserID)
	record.Set("tableNumber", r.TableNumber)
	record.Set("date", r.Date)
	record.Set("timeSlot", r.TimeSlot)
	record.Set("guests", r.Guests)
	record.Set("location", r.Location)
	record.Set("segment", r.Segment)
	record.Set("userName", r.UserName)
	record.Set("userPhone", r.UserPhone)
	record.Set("status", r.Status)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save reservation %s: %w", r.ReservationID, err)
	}
	return nil
}

func (s *pbReservationStore) FindByID(reservationID string) (*models.Reservation, error) {
	record, err := s.app.FindFirstRecordByFilter(reservationCollection, "reservationId = {:id}", dbx.Params{"id": reservationID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation %s: %w", reservationID, err)
	}
	return reservationFromRecord(record), nil
}

func (s *pbReservationStore) List(filter models.ReservationFilter) ([]*models.Reservation, error) {
	expr := "reservationId != ''"
	params := dbx.Params{}
	if filter.UserID != "" {
		expr += " && userId = {:userId}"
		params["userId"] = filter.UserID
	}

	records, err := s.app.FindRecordsByFilter(reservationCollection, expr, "-date,timeSlot", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservationsFromRecords(records), nil
}

func (s *pbReservationStore) FindMatching(date, timeSlot, locationContains, segmentPrefix string) ([]*models.Reservation, error) {
	expr := "date = {:date} && timeSlot = {:slot}"
	params := dbx.Params{"date": date, "slot": timeSlot}
	if locationContains != "" {
		expr += " && location ~ {:location}"
		params["location"] = "%" + locationContains + "%"
	}
	if segmentPrefix != "" {
		expr += " && segment ~ {:segment}"
		params["segment"] = segmentPrefix + "%"
	}

	records, err := s.app.FindRecordsByFilter(reservationCollection, expr, "-date,timeSlot", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("find matching reservations: %w", err)
	}
	return reservationsFromRecords(records), nil
}

func (s *pbReservationStore) ReservedTableNumbers(date, timeSlot string) (map[int]bool, error) {
	records, err := s.app.FindRecordsByFilter(
		reservationCollection,
		"date = {:date} && timeSlot = {:slot}",
		"tableNumber",
		0, 0,
		dbx.Params{"date": date, "slot": timeSlot},
	)
	if err != nil {
		return nil, fmt.Errorf("find reserved tables: %w", err)
	}

	taken := make(map[int]bool, len(records))
	for _, record := range records {
		taken[record.GetInt("tableNumber")] = true
	}
	return taken, nil
}

func (s *pbReservationStore) Delete(reservationID string) (int, error) {
	record, err := s.app.FindFirstRecordByFilter(reservationCollection, "reservationId = {:id}", dbx.Params{"id": reservationID})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find reservation %s: %w", reservationID, err)
	}
	if err := s.app.Delete(record); err != nil {
		return 0, fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}
	return 1, nil
}

func reservationFromRecord(record *core.Record) *models.Reservation {
	return &models.Reservation{
		ReservationID: record.GetString("reservationId"),
		UserID:        record.GetString("userId"),
		TableNumber:   record.GetInt("tableNumber"),
		Date:          record.GetString("date"),
		TimeSlot:      record.GetString("timeSlot"),
		Guests:        record.GetInt("guests"),
		Location:      record.GetString("location"),
		Segment:       record.GetString("segment"),
		UserName:      record.GetString("userName"),
		UserPhone:     record.GetString("userPhone"),
		Status:        record.GetString("status"),
	}
}

func reservationsFromRecords(records []*core.Record) []*models.Reservation {
	reservations := make([]*models.Reservation, 0, len(records))
	for _, record := range records {
		reservations = append(reservations, reservationFromRecord(record))
	}
	return reservations
}
