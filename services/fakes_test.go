package services

import (
	"sort"
	"strings"
	"time"

	"restaurant-system/models"
)

// In-memory stores for service tests. They mirror the ordering guarantees of
// the real collection-backed stores.

type fakeQueueStore struct {
	entries map[string]*models.WaitingParty
}

func newFakeQueueStore() *fakeQueueStore {
	return &fakeQueueStore{entries: map[string]*models.WaitingParty{}}
}

func (f *fakeQueueStore) Upsert(p *models.WaitingParty) error {
	clone := *p
	f.entries[p.ID] = &clone
	return nil
}

func (f *fakeQueueStore) FindByID(id string) (*models.WaitingParty, error) {
	if p, ok := f.entries[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeQueueStore) FindByUser(userID string) (*models.WaitingParty, error) {
	for _, p := range f.sorted() {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeQueueStore) FindNotified(userID string) (*models.WaitingParty, error) {
	for _, p := range f.sorted() {
		if p.UserID == userID && p.TableAvailable {
			clone := *p
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeQueueStore) FindBySlot(queueDate, timeSlot string) ([]*models.WaitingParty, error) {
	var out []*models.WaitingParty
	for _, p := range f.sorted() {
		if p.QueueDate == queueDate && p.TimeSlot == timeSlot {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeQueueStore) List(filter models.QueueFilter) ([]*models.WaitingParty, error) {
	var out []*models.WaitingParty
	for _, p := range f.sorted() {
		if filter.QueueDate != "" && p.QueueDate != filter.QueueDate {
			continue
		}
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QueueDate != out[j].QueueDate {
			return out[i].QueueDate > out[j].QueueDate
		}
		if out[i].TimeSlot != out[j].TimeSlot {
			return out[i].TimeSlot < out[j].TimeSlot
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (f *fakeQueueStore) CountCohort(c models.Cohort) (int, error) {
	count := 0
	for _, p := range f.entries {
		if p.Cohort() == c {
			count++
		}
	}
	return count, nil
}

func (f *fakeQueueStore) FindCohort(c models.Cohort) ([]*models.WaitingParty, error) {
	var out []*models.WaitingParty
	for _, p := range f.sorted() {
		if p.Cohort() == c {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeQueueStore) UpdateFields(id string, fields map[string]any) error {
	p, ok := f.entries[id]
	if !ok {
		return models.ErrNotFound
	}
	for field, value := range fields {
		switch field {
		case "position":
			p.Position = value.(int)
		case "notifiedAt15Min":
			p.NotifiedAt15Min = value.(bool)
		case "tableAvailable":
			p.TableAvailable = value.(bool)
		case "notificationExpiresAt":
			t := value.(time.Time)
			p.NotificationExpiresAt = &t
		case "estimatedWaitMinutes":
			p.EstimatedWaitMinutes = value.(float64)
		case "fromReservationCancellation":
			p.FromReservationCancellation = value.(bool)
		}
	}
	return nil
}

func (f *fakeQueueStore) Delete(id string) (int, error) {
	if _, ok := f.entries[id]; !ok {
		return 0, nil
	}
	delete(f.entries, id)
	return 1, nil
}

// sorted returns entries ordered by joinedAt ascending, id as tiebreak.
func (f *fakeQueueStore) sorted() []*models.WaitingParty {
	out := make([]*models.WaitingParty, 0, len(f.entries))
	for _, p := range f.entries {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type fakeReservationStore struct {
	reservations map[string]*models.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: map[string]*models.Reservation{}}
}

func (f *fakeReservationStore) Upsert(r *models.Reservation) error {
	clone := *r
	f.reservations[r.ReservationID] = &clone
	return nil
}

func (f *fakeReservationStore) FindByID(reservationID string) (*models.Reservation, error) {
	if r, ok := f.reservations[reservationID]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeReservationStore) List(filter models.ReservationFilter) ([]*models.Reservation, error) {
	out := make([]*models.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		clone := *r
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

func (f *fakeReservationStore) FindMatching(date, timeSlot, locationContains, segmentPrefix string) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, r := range f.reservations {
		if r.Date != date || r.TimeSlot != timeSlot {
			continue
		}
		if locationContains != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(locationContains)) {
			continue
		}
		if segmentPrefix != "" && !strings.HasPrefix(strings.ToLower(r.Segment), strings.ToLower(segmentPrefix)) {
			continue
		}
		clone := *r
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeReservationStore) ReservedTableNumbers(date, timeSlot string) (map[int]bool, error) {
	taken := map[int]bool{}
	for _, r := range f.reservations {
		if r.Date == date && r.TimeSlot == timeSlot {
			taken[r.TableNumber] = true
		}
	}
	return taken, nil
}

func (f *fakeReservationStore) Delete(reservationID string) (int, error) {
	if _, ok := f.reservations[reservationID]; !ok {
		return 0, nil
	}
	delete(f.reservations, reservationID)
	return 1, nil
}

type fakeWaitingStore struct {
	entries map[string]*models.WaitingReservation
}

func newFakeWaitingStore() *fakeWaitingStore {
	return &fakeWaitingStore{entries: map[string]*models.WaitingReservation{}}
}

func (f *fakeWaitingStore) Upsert(w *models.WaitingReservation) error {
	clone := *w
	f.entries[w.QueueID] = &clone
	return nil
}

func (f *fakeWaitingStore) FindByID(queueID string) (*models.WaitingReservation, error) {
	if w, ok := f.entries[queueID]; ok {
		clone := *w
		return &clone, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeWaitingStore) List(filter models.ReservationFilter) ([]*models.WaitingReservation, error) {
	out := make([]*models.WaitingReservation, 0, len(f.entries))
	for _, w := range f.entries {
		if filter.UserID != "" && w.UserID != filter.UserID {
			continue
		}
		clone := *w
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].TimeSlot != out[j].TimeSlot {
			return out[i].TimeSlot < out[j].TimeSlot
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (f *fakeWaitingStore) Count(date, timeSlot string) (int, error) {
	count := 0
	for _, w := range f.entries {
		if w.Date == date && w.TimeSlot == timeSlot {
			count++
		}
	}
	return count, nil
}

func (f *fakeWaitingStore) Delete(queueID string) (int, error) {
	if _, ok := f.entries[queueID]; !ok {
		return 0, nil
	}
	delete(f.entries, queueID)
	return 1, nil
}

type fakeTableStore struct {
	tables []*models.Table
}

func (f *fakeTableStore) All() ([]*models.Table, error) {
	out := make([]*models.Table, 0, len(f.tables))
	for _, t := range f.tables {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

// seedTables is the fixed dining-room inventory used across tests.
func seedTables() []*models.Table {
	return []*models.Table{
		{TableID: "T001", Name: "VIP Table 1", Location: "VIP Hall", Segment: "Front", Capacity: 4},
		{TableID: "T002", Name: "VIP Table 2", Location: "VIP Hall", Segment: "Middle", Capacity: 6},
		{TableID: "T003", Name: "VIP Table 3", Location: "VIP Hall", Segment: "Back", Capacity: 8},
		{TableID: "T004", Name: "AC Table 1", Location: "AC Hall", Segment: "Front", Capacity: 4},
		{TableID: "T005", Name: "AC Table 2", Location: "AC Hall", Segment: "Middle", Capacity: 4},
		{TableID: "T006", Name: "AC Table 3", Location: "AC Hall", Segment: "Middle", Capacity: 6},
		{TableID: "T007", Name: "AC Table 4", Location: "AC Hall", Segment: "Back", Capacity: 2},
		{TableID: "T008", Name: "Main Table 1", Location: "Main Hall", Segment: "Front", Capacity: 4},
		{TableID: "T009", Name: "Main Table 2", Location: "Main Hall", Segment: "Front", Capacity: 6},
		{TableID: "T010", Name: "Main Table 3", Location: "Main Hall", Segment: "Middle", Capacity: 8},
		{TableID: "T011", Name: "Main Table 4", Location: "Main Hall", Segment: "Back", Capacity: 2},
		{TableID: "T012", Name: "Main Table 5", Location: "Main Hall", Segment: "Back", Capacity: 4},
	}
}
