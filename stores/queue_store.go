package stores

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"restaurant-system/models"
)

const queueCollection = "queue_entries"

// QueueStore is the persistence contract for waitlist entries. The entry id
// is an application-level key (field entryId), distinct from the record id.
type QueueStore interface {
	Upsert(p *models.WaitingParty) error
	FindByID(id string) (*models.WaitingParty, error)
	FindByUser(userID string) (*models.WaitingParty, error)
	// FindNotified returns the user's entry only if a table offer is
	// currently flagged on it.
	FindNotified(userID string) (*models.WaitingParty, error)
	FindBySlot(queueDate, timeSlot string) ([]*models.WaitingParty, error)
	List(filter models.QueueFilter) ([]*models.WaitingParty, error)
	CountCohort(c models.Cohort) (int, error)
	// FindCohort returns the cohort's entries ordered by joinedAt ascending.
	FindCohort(c models.Cohort) ([]*models.WaitingParty, error)
	UpdateFields(id string, fields map[string]any) error
	// Delete removes the entry and reports how many records were deleted.
	Delete(id string) (int, error)
}

type pbQueueStore struct {
	app core.App
}

func NewQueueStore(app core.App) QueueStore {
	return &pbQueueStore{app: app}
}

func (s *pbQueueStore) Upsert(p *models.WaitingParty) error {
	record, err := s.app.FindFirstRecordByFilter(queueCollection, "entryId = {:id}", dbx.Params{"id": p.ID})
	if errors.Is(err, sql.ErrNoRows) {
		collection, cerr := s.app.FindCollectionByNameOrId(queueCollection)
		if cerr != nil {
			return fmt.Errorf("find collection %s: %w", queueCollection, cerr)
		}
		record = core.NewRecord(collection)
	} else if err != nil {
		return fmt.Errorf("find queue entry %s: %w", p.ID, err)
	}

	record.Set("entryId", p.ID)
	record.Set("userId", p.UserID)
	record.Set("name", p.Name)
	record.Set("guests", p.Guests)
	record.Set("notificationMethod", p.NotificationMethod)
	record.Set("contact", p.Contact)
	record.Set("hall", p.Hall)
	record.Set("segment", p.Segment)
	record.Set("position", p.Position)
	record.Set("estimatedWaitMinutes", p.EstimatedWaitMinutes)
	record.Set("joinedAt", p.JoinedAt)
	record.Set("queueDate", p.QueueDate)
	record.Set("timeSlot", p.TimeSlot)
	record.Set("timeSlotDisplay", p.TimeSlotDisplay)
	record.Set("notifiedAt15Min", p.NotifiedAt15Min)
	record.Set("tableAvailable", p.TableAvailable)
	if p.NotificationExpiresAt != nil {
		record.Set("notificationExpiresAt", *p.NotificationExpiresAt)
	} else {
		record.Set("notificationExpiresAt", "")
	}
	record.Set("fromReservationCancellation", p.FromReservationCancellation)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save queue entry %s: %w", p.ID, err)
	}
	return nil
}

func (s *pbQueueStore) FindByID(id string) (*models.WaitingParty, error) {
	record, err := s.app.FindFirstRecordByFilter(queueCollection, "entryId = {:id}", dbx.Params{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find queue entry %s: %w", id, err)
	}
	return queueEntryFromRecord(record), nil
}

func (s *pbQueueStore) FindByUser(userID string) (*models.WaitingParty, error) {
	record, err := s.app.FindFirstRecordByFilter(queueCollection, "userId = {:userId}", dbx.Params{"userId": userID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find queue entry for user %s: %w", userID, err)
	}
	return queueEntryFromRecord(record), nil
}

func (s *pbQueueStore) FindNotified(userID string) (*models.WaitingParty, error) {
	record, err := s.app.FindFirstRecordByFilter(
		queueCollection,
		"userId = {:userId} && tableAvailable = true",
		dbx.Params{"userId": userID},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find notified entry for user %s: %w", userID, err)
	}
	return queueEntryFromRecord(record), nil
}

func (s *pbQueueStore) FindBySlot(queueDate, timeSlot string) ([]*models.WaitingParty, error) {
	records, err := s.app.FindRecordsByFilter(
		queueCollection,
		"queueDate = {:date} && timeSlot = {:slot}",
		"joinedAt",
		0, 0,
		dbx.Params{"date": queueDate, "slot": timeSlot},
	)
	if err != nil {
		return nil, fmt.Errorf("find queue entries for slot: %w", err)
	}
	return queueEntriesFromRecords(records), nil
}

func (s *pbQueueStore) List(filter models.QueueFilter) ([]*models.WaitingParty, error) {
	expr := "entryId != ''"
	params := dbx.Params{}
	if filter.QueueDate != "" {
		expr += " && queueDate = {:date}"
		params["date"] = filter.QueueDate
	}
	if filter.UserID != "" {
		expr += " && userId = {:userId}"
		params["userId"] = filter.UserID
	}

	records, err := s.app.FindRecordsByFilter(queueCollection, expr, "-queueDate,timeSlot,position", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list queue entries: %w", err)
	}
	return queueEntriesFromRecords(records), nil
}

func (s *pbQueueStore) CountCohort(c models.Cohort) (int, error) {
	total, err := s.app.CountRecords(queueCollection, dbx.HashExp{
		"queueDate": c.QueueDate,
		"timeSlot":  c.TimeSlot,
		"guests":    c.Guests,
		"hall":      c.Hall,
		"segment":   c.Segment,
	})
	if err != nil {
		return 0, fmt.Errorf("count cohort: %w", err)
	}
	return int(total), nil
}

func (s *pbQueueStore) FindCohort(c models.Cohort) ([]*models.WaitingParty, error) {
	records, err := s.app.FindRecordsByFilter(
		queueCollection,
		"queueDate = {:date} && timeSlot = {:slot} && guests = {:guests} && hall = {:hall} && segment = {:segment}",
		"joinedAt",
		0, 0,
		dbx.Params{
			"date":    c.QueueDate,
			"slot":    c.TimeSlot,
			"guests":  c.Guests,
			"hall":    c.Hall,
			"segment": c.Segment,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("find cohort entries: %w", err)
	}
	return queueEntriesFromRecords(records), nil
}

func (s *pbQueueStore) UpdateFields(id string, fields map[string]any) error {
	record, err := s.app.FindFirstRecordByFilter(queueCollection, "entryId = {:id}", dbx.Params{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find queue entry %s: %w", id, err)
	}

	for field, value := range fields {
		record.Set(field, value)
	}
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("update queue entry %s: %w", id, err)
	}
	return nil
}

func (s *pbQueueStore) Delete(id string) (int, error) {
	record, err := s.app.FindFirstRecordByFilter(queueCollection, "entryId = {:id}", dbx.Params{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find queue entry %s: %w", id, err)
	}
	if err := s.app.Delete(record); err != nil {
		return 0, fmt.Errorf("delete queue entry %s: %w", id, err)
	}
	return 1, nil
}

func queueEntryFromRecord(record *core.Record) *models.WaitingParty {
	p := &models.WaitingParty{
		ID:                          record.GetString("entryId"),
		UserID:                      record.GetString("userId"),
		Name:                        record.GetString("name"),
		Guests:                      record.GetInt("guests"),
		NotificationMethod:          record.GetString("notificationMethod"),
		Contact:                     record.GetString("contact"),
		Hall:                        record.GetString("hall"),
		Segment:                     record.GetString("segment"),
		Position:                    record.GetInt("position"),
		EstimatedWaitMinutes:        record.GetFloat("estimatedWaitMinutes"),
		JoinedAt:                    record.GetDateTime("joinedAt").Time(),
		QueueDate:                   record.GetString("queueDate"),
		TimeSlot:                    record.GetString("timeSlot"),
		TimeSlotDisplay:             record.GetString("timeSlotDisplay"),
		NotifiedAt15Min:             record.GetBool("notifiedAt15Min"),
		TableAvailable:              record.GetBool("tableAvailable"),
		FromReservationCancellation: record.GetBool("fromReservationCancellation"),
	}
	if expires := record.GetDateTime("notificationExpiresAt"); !expires.IsZero() {
		t := expires.Time()
		p.NotificationExpiresAt = &t
	}
	return p
}

func queueEntriesFromRecords(records []*core.Record) []*models.WaitingParty {
	entries := make([]*models.WaitingParty, 0, len(records))
	for _, record := range records {
		entries = append(entries, queueEntryFromRecord(record))
	}
	return entries
}
