package stores

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
)

const waitingCollection = "reservation_waiting_queue"

// WaitingStore is the persistence contract for the secondary reservation
// waiting list, keyed by the application-level queueId.
type WaitingStore interface {
	Upsert(w *models.WaitingReservation) error
	FindByID(queueID string) (*models.WaitingReservation, error)
	List(filter models.ReservationFilter) ([]*models.WaitingReservation, error)
	Count(date, timeSlot string) (int, error)
	Delete(queueID string) (int, error)
}

type pbWaitingStore struct {
	app core.App
}

func NewWaitingStore(app core.App) WaitingStore {
	return &pbWaitingStore{app: app}
}

func (s *pbWaitingStore) Upsert(w *models.WaitingReservation) error {
	record, err := s.app.FindFirstRecordByFilter(waitingCollection, "queueId = {:id}", dbx.Params{"id": w.QueueID})
	if errors.Is(err, sql.ErrNoRows) {
		collection, cerr := s.app.FindCollectionByNameOrId(waitingCollection)
		if cerr != nil {
			return fmt.Errorf("find collection %s: %w", waitingCollection, cerr)
		}
		record = core.NewRecord(collection)
	} else if err != nil {
		return fmt.Errorf("find waiting entry %s: %w", w.QueueID, err)
	}

	record.Set("queueId", w.QueueID)
	record.Set("userId", w.UserID)
	record.Set("date", w.Date)
	record.Set("timeSlot", w.TimeSlot)
	record.Set("guests", w.Guests)
	record.Set("position", w.Position)
	record.Set("estimatedWait", w.EstimatedWait)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save waiting entry %s: %w", w.QueueID, err)
	}
	return nil
}

func (s *pbWaitingStore) FindByID(queueID string) (*models.WaitingReservation, error) {
	record, err := s.app.FindFirstRecordByFilter(waitingCollection, "queueId = {:id}", dbx.Params{"id": queueID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find waiting entry %s: %w", queueID, err)
	}
	return waitingFromRecord(record), nil
}

func (s *pbWaitingStore) List(filter models.ReservationFilter) ([]*models.WaitingReservation, error) {
	expr := "queueId != ''"
	params := dbx.Params{}
	if filter.UserID != "" {
		expr += " && userId = {:userId}"
		params["userId"] = filter.UserID
	}

	records, err := s.app.FindRecordsByFilter(waitingCollection, expr, "-date,timeSlot,position", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list waiting entries: %w", err)
	}

	entries := make([]*models.WaitingReservation, 0, len(records))
	for _, record := range records {
		entries = append(entries, waitingFromRecord(record))
	}
	return entries, nil
}

func (s *pbWaitingStore) Count(date, timeSlot string) (int, error) {
	total, err := s.app.CountRecords(waitingCollection, dbx.HashExp{"date": date, "timeSlot": timeSlot})
	if err != nil {
		return 0, fmt.Errorf("count waiting entries: %w", err)
	}
	return int(total), nil
}

func (s *pbWaitingStore) Delete(queueID string) (int, error) {
	record, err := s.app.FindFirstRecordByFilter(waitingCollection, "queueId = {:id}", dbx.Params{"id": queueID})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find waiting entry %s: %w", queueID, err)
	}
	if err := s.app.Delete(record); err != nil {
		return 0, fmt.Errorf("delete waiting entry %s: %w", queueID, err)
	}
	return 1, nil
}

func waitingFromRecord(record *core.Record) *models.WaitingReservation {
	return &models.WaitingReservation{
		QueueID:       record.GetString("queueId"),
		UserID:        record.GetString("userId"),
		Date:          record.GetString("date"),
		TimeSlot:      record.GetString("timeSlot"),
		Guests:        record.GetInt("guests"),
		Position:      record.GetInt("position"),
		EstimatedWait: record.GetString("estimatedWait"),
	}
}
