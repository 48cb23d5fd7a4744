package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"restaurant-system/config"
	"restaurant-system/models"
	"restaurant-system/monitoring"
	"restaurant-system/stores"
	"restaurant-system/utils"
)

// QueueService owns the walk-in waitlist: position assignment within cohorts,
// table-offer notification with a claim window, and lazy expiry. Expiry is
// evaluated only when the affected user polls; there is no background reaper,
// so an expired-but-unpolled entry stays visible in listings.
type QueueService struct {
	store        stores.QueueStore
	reservations stores.ReservationStore
	redis        *redis.Client
	pubnub       *pubnub.PubNub
	breaker      *utils.CircuitBreaker
	monitor      *monitoring.Monitor
	config       *config.Config

	now func() time.Time
}

func NewQueueService(
	store stores.QueueStore,
	reservations stores.ReservationStore,
	redisClient *redis.Client,
	pn *pubnub.PubNub,
	monitor *monitoring.Monitor,
	cfg *config.Config,
) *QueueService {
	return &QueueService{
		store:        store,
		reservations: reservations,
		redis:        redisClient,
		pubnub:       pn,
		breaker:      utils.NewCircuitBreaker("pubnub"),
		monitor:      monitor,
		config:       cfg,
		now:          time.Now,
	}
}

// Join adds a party to the waitlist and assigns its position within the
// cohort (queueDate, timeSlot, guests, hall, segment). Rejoining with the
// same id into the same cohort keeps the original position and joinedAt.
func (s *QueueService) Join(ctx context.Context, req *models.JoinRequest) (*models.WaitingParty, error) {
	if err := req.Validate(); err != nil {
		s.trackQueue("join", "invalid")
		return nil, err
	}

	joinedAt := s.now()
	if req.JoinedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.JoinedAt); err == nil {
			joinedAt = parsed
		}
	}

	userID := req.UserID
	if userID == "" {
		userID = req.Contact
	}
	method := req.NotificationMethod
	if method == "" {
		method = "sms"
	}

	cohort := req.Cohort()
	unlock := s.lockCohort(ctx, cohort)
	defer unlock()

	position := 0
	if existing, err := s.store.FindByID(req.ID); err == nil && existing.Cohort() == cohort {
		// Idempotent rejoin: the party keeps its place in line.
		position = existing.Position
		joinedAt = existing.JoinedAt
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.trackQueue("join", "error")
		return nil, err
	}

	if position == 0 {
		count, err := s.store.CountCohort(cohort)
		if err != nil {
			s.trackQueue("join", "error")
			return nil, err
		}
		position = count + 1
	}

	party := &models.WaitingParty{
		ID:                   req.ID,
		UserID:               userID,
		Name:                 req.Name,
		Guests:               req.Guests,
		NotificationMethod:   method,
		Contact:              req.Contact,
		Hall:                 req.Hall,
		Segment:              req.Segment,
		Position:             position,
		EstimatedWaitMinutes: EstimateWaitMinutes(req.QueueDate, req.TimeSlot, s.now()),
		JoinedAt:             joinedAt,
		QueueDate:            req.QueueDate,
		TimeSlot:             req.TimeSlot,
		TimeSlotDisplay:      ToDisplaySlot(req.TimeSlot),
	}

	if err := s.store.Upsert(party); err != nil {
		s.trackQueue("join", "error")
		return nil, err
	}

	s.trackQueue("join", "success")
	slog.Info("queue join", "entryId", party.ID, "queueDate", party.QueueDate, "timeSlot", party.TimeSlot, "position", party.Position)
	return party, nil
}

// List returns waitlist entries, newest date first, then slot and position.
func (s *QueueService) List(filter models.QueueFilter) ([]*models.WaitingParty, error) {
	return s.store.List(filter)
}

// CheckSlotAvailability reports whether any confirmed reservation already
// covers the requested date, slot, hall and segment. Guests is not part of
// the check: a reservation blocks the slot regardless of party size.
func (s *QueueService) CheckSlotAvailability(queueDate, timeSlot, hall, segment string) (*models.SlotAvailability, error) {
	locationContains := ""
	if hall != "Any" {
		locationContains = HallToLocationToken(hall)
	}
	segmentPrefix := ""
	if segment != "Any" {
		segmentPrefix = segment
	}

	matches, err := s.reservations.FindMatching(queueDate, ToReservationSlot(timeSlot), locationContains, segmentPrefix)
	if err != nil {
		return nil, err
	}

	reserved := len(matches) > 0
	return &models.SlotAvailability{IsReserved: reserved, Available: !reserved}, nil
}

// PollStatus is the client's heartbeat. A pending table offer whose claim
// window has lapsed is deleted here, the cohort is resequenced, and the
// caller learns the entry auto-expired.
func (s *QueueService) PollStatus(ctx context.Context, userID string) (*models.PollResult, error) {
	notified, err := s.store.FindNotified(userID)
	if err == nil {
		if notified.NotificationExpiresAt != nil && s.now().After(*notified.NotificationExpiresAt) {
			if _, err := s.store.Delete(notified.ID); err != nil {
				return nil, err
			}
			s.Resequence(ctx, notified.Cohort())
			s.trackQueue("poll_expire", "success")
			if s.monitor != nil {
				s.monitor.TrackOfferExpiration()
			}
			slog.Info("table offer expired", "entryId", notified.ID, "userId", userID)
			return &models.PollResult{AutoExpired: true}, nil
		}
		return &models.PollResult{
			Entry:                       notified,
			TableAvailable:              true,
			FromReservationCancellation: notified.FromReservationCancellation,
		}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	entry, err := s.store.FindByUser(userID)
	if errors.Is(err, models.ErrNotFound) {
		return &models.PollResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.PollResult{Entry: entry}, nil
}

// Cancel removes an entry and closes the gap its departure leaves in the
// cohort ordering.
func (s *QueueService) Cancel(ctx context.Context, entryID string) error {
	entry, err := s.store.FindByID(entryID)
	if err != nil {
		s.trackQueue("cancel", "not_found")
		return err
	}

	deleted, err := s.store.Delete(entryID)
	if err != nil {
		s.trackQueue("cancel", "error")
		return err
	}
	if deleted == 0 {
		s.trackQueue("cancel", "not_found")
		return models.ErrNotFound
	}

	s.Resequence(ctx, entry.Cohort())
	s.trackQueue("cancel", "success")
	slog.Info("queue cancel", "entryId", entryID)
	return nil
}

// UpdateFields applies a whitelisted partial update. Flipping tableAvailable
// on triggers a push notification to the party.
func (s *QueueService) UpdateFields(ctx context.Context, entryID string, patch *models.EntryPatch) (*models.WaitingParty, error) {
	fields := patch.Fields()
	if len(fields) > 0 {
		if err := s.store.UpdateFields(entryID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.FindByID(entryID)
	if err != nil {
		return nil, err
	}

	if patch.TableAvailable != nil && *patch.TableAvailable {
		s.notifyTableOffer(ctx, updated)
	}
	return updated, nil
}

// OfferTableFromCancellation hands a freed table to the head of the matching
// cohort: same date and slot, hall token contained in the reservation's
// location, queue segment a prefix of the reservation's segment. The offer
// carries a claim window; an unclaimed offer expires on the next poll.
func (s *QueueService) OfferTableFromCancellation(ctx context.Context, res *models.Reservation) error {
	compact, ok := FromReservationSlot(res.TimeSlot)
	if !ok {
		return nil
	}

	entries, err := s.store.FindBySlot(res.Date, compact)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Position != 1 || entry.TableAvailable {
			continue
		}
		if !HallMatchesLocation(entry.Hall, res.Location) || !SegmentMatchesPrefix(entry.Segment, res.Segment) {
			continue
		}

		expires := s.now().Add(s.config.ClaimWindow)
		err := s.store.UpdateFields(entry.ID, map[string]any{
			"tableAvailable":              true,
			"notificationExpiresAt":       expires,
			"fromReservationCancellation": true,
		})
		if err != nil {
			return err
		}

		entry.TableAvailable = true
		entry.NotificationExpiresAt = &expires
		entry.FromReservationCancellation = true
		s.notifyTableOffer(ctx, entry)
		s.trackQueue("offer", "success")
		slog.Info("table offered from cancellation", "entryId", entry.ID, "reservationId", res.ReservationID)
		return nil
	}
	return nil
}

// Resequence reassigns positions 1..N by joinedAt within the cohort, under
// the cohort lock.
func (s *QueueService) Resequence(ctx context.Context, cohort models.Cohort) {
	unlock := s.lockCohort(ctx, cohort)
	defer unlock()
	s.resequenceLocked(ctx, cohort)
}

// resequenceLocked assumes the caller holds the cohort lock.
func (s *QueueService) resequenceLocked(ctx context.Context, cohort models.Cohort) {
	started := s.now()

	entries, err := s.store.FindCohort(cohort)
	if err != nil {
		slog.Error("resequence failed", "queueDate", cohort.QueueDate, "timeSlot", cohort.TimeSlot, "error", err)
		return
	}

	for i, entry := range entries {
		position := i + 1
		if entry.Position == position {
			continue
		}
		if err := s.store.UpdateFields(entry.ID, map[string]any{"position": position}); err != nil {
			slog.Error("resequence update failed", "entryId", entry.ID, "error", err)
			continue
		}
		s.notifyPositionUpdate(ctx, entry, position)
	}

	if s.monitor != nil {
		s.monitor.TrackResequence(s.now().Sub(started))
	}
}

// lockCohort serializes join and resequence for one cohort with a Redis
// SETNX lock. When the lock cannot be obtained after the configured retries
// the operation proceeds unserialized; availability wins over strictness.
func (s *QueueService) lockCohort(ctx context.Context, c models.Cohort) func() {
	if s.redis == nil {
		return func() {}
	}

	key := fmt.Sprintf("lock:cohort:%s:%s:%d:%s:%s", c.QueueDate, c.TimeSlot, c.Guests, c.Hall, c.Segment)
	for attempt := 0; attempt <= s.config.CohortLockRetries; attempt++ {
		ok, err := s.redis.SetNX(ctx, key, "1", s.config.CohortLockTTL).Result()
		if err != nil {
			slog.Warn("cohort lock unavailable, proceeding", "key", key, "error", err)
			return func() {}
		}
		if ok {
			return func() {
				if err := s.redis.Del(ctx, key).Err(); err != nil {
					slog.Warn("cohort unlock failed", "key", key, "error", err)
				}
			}
		}
		time.Sleep(s.config.CohortLockRetryDelay)
	}

	slog.Warn("cohort lock not acquired, proceeding", "key", key)
	return func() {}
}

func (s *QueueService) notifyTableOffer(ctx context.Context, entry *models.WaitingParty) {
	if s.pubnub == nil {
		return
	}
	s.publish(ctx, "user-"+entry.UserID, map[string]any{
		"type":                        "table_offer",
		"entryId":                     entry.ID,
		"timeSlot":                    entry.TimeSlotDisplay,
		"fromReservationCancellation": entry.FromReservationCancellation,
	})
}

func (s *QueueService) notifyPositionUpdate(ctx context.Context, entry *models.WaitingParty, position int) {
	if s.pubnub == nil {
		return
	}
	s.publish(ctx, "user-"+entry.UserID, map[string]any{
		"type":     "queue_position",
		"entryId":  entry.ID,
		"position": position,
	})
}

func (s *QueueService) publish(ctx context.Context, channel string, message map[string]any) {
	_, err := s.breaker.Execute(ctx, func() (interface{}, error) {
		_, _, err := s.pubnub.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return nil, err
	})
	if err != nil {
		slog.Warn("pubnub publish failed", "channel", channel, "error", err)
	}
}

func (s *QueueService) trackQueue(operation, status string) {
	if s.monitor != nil {
		s.monitor.TrackQueueOperation(operation, status)
	}
}
