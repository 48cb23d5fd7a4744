package models

import (
	"time"
)

// WaitingParty is one walk-in party in the waitlist queue. Position and
// estimatedWaitMinutes are mutable; joinedAt is the immutable ordering key
// for position assignment within a cohort.
type WaitingParty struct {
	ID                          string     `json:"id"`
	UserID                      string     `json:"userId"`
	Name                        string     `json:"name"`
	Guests                      int        `json:"guests"`
	NotificationMethod          string     `json:"notificationMethod"` // sms, email
	Contact                     string     `json:"contact"`
	Hall                        string     `json:"hall"`    // AC, Main, VIP, Any
	Segment                     string     `json:"segment"` // Front, Middle, Back, Any
	Position                    int        `json:"position"`
	EstimatedWaitMinutes        float64    `json:"estimatedWaitMinutes"`
	JoinedAt                    time.Time  `json:"joinedAt"`
	QueueDate                   string     `json:"queueDate"` // YYYY-MM-DD
	TimeSlot                    string     `json:"timeSlot"`  // compact encoding, "07:30-08:50"
	TimeSlotDisplay             string     `json:"timeSlotDisplay"`
	NotifiedAt15Min             bool       `json:"notifiedAt15Min"`
	TableAvailable              bool       `json:"tableAvailable"`
	NotificationExpiresAt       *time.Time `json:"notificationExpiresAt"`
	FromReservationCancellation bool       `json:"fromReservationCancellation"`
}

// Cohort is the tuple a party competes within. Positions are ranked per
// cohort; parties in different cohorts never compare.
type Cohort struct {
	QueueDate string
	TimeSlot  string
	Guests    int
	Hall      string
	Segment   string
}

func (p *WaitingParty) Cohort() Cohort {
	return Cohort{
		QueueDate: p.QueueDate,
		TimeSlot:  p.TimeSlot,
		Guests:    p.Guests,
		Hall:      p.Hall,
		Segment:   p.Segment,
	}
}

// JoinRequest carries the fields a party submits when joining the queue.
// JoinedAt is optional (RFC 3339); the server assigns the current time when
// it is absent.
type JoinRequest struct {
	ID                 string `json:"id"`
	UserID             string `json:"userId"`
	Name               string `json:"name"`
	Guests             int    `json:"guests"`
	NotificationMethod string `json:"notificationMethod"`
	Contact            string `json:"contact"`
	Hall               string `json:"hall"`
	Segment            string `json:"segment"`
	QueueDate          string `json:"queueDate"`
	TimeSlot           string `json:"timeSlot"`
	JoinedAt           string `json:"joinedAt"`
}

// Validate reports the first missing required field, in the wire order the
// clients rely on.
func (r *JoinRequest) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"id", r.ID != ""},
		{"name", r.Name != ""},
		{"guests", r.Guests > 0},
		{"contact", r.Contact != ""},
		{"hall", r.Hall != ""},
		{"segment", r.Segment != ""},
		{"queueDate", r.QueueDate != ""},
		{"timeSlot", r.TimeSlot != ""},
	}
	for _, c := range checks {
		if !c.ok {
			return &ValidationError{Field: c.field}
		}
	}
	return nil
}

func (r *JoinRequest) Cohort() Cohort {
	return Cohort{
		QueueDate: r.QueueDate,
		TimeSlot:  r.TimeSlot,
		Guests:    r.Guests,
		Hall:      r.Hall,
		Segment:   r.Segment,
	}
}

// QueueFilter narrows queue listings. Zero values mean "no constraint".
type QueueFilter struct {
	QueueDate string
	UserID    string
}

// EntryPatch is the whitelisted partial update applied through UpdateFields.
// Only these five fields may be mutated by external collaborators; nil
// pointers are left untouched.
type EntryPatch struct {
	NotifiedAt15Min             *bool      `json:"notifiedAt15Min"`
	TableAvailable              *bool      `json:"tableAvailable"`
	NotificationExpiresAt       *time.Time `json:"notificationExpiresAt"`
	EstimatedWaitMinutes        *float64   `json:"estimatedWaitMinutes"`
	FromReservationCancellation *bool      `json:"fromReservationCancellation"`
}

// Fields flattens the patch into store update fields.
func (p *EntryPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.NotifiedAt15Min != nil {
		fields["notifiedAt15Min"] = *p.NotifiedAt15Min
	}
	if p.TableAvailable != nil {
		fields["tableAvailable"] = *p.TableAvailable
	}
	if p.NotificationExpiresAt != nil {
		fields["notificationExpiresAt"] = *p.NotificationExpiresAt
	}
	if p.EstimatedWaitMinutes != nil {
		fields["estimatedWaitMinutes"] = *p.EstimatedWaitMinutes
	}
	if p.FromReservationCancellation != nil {
		fields["fromReservationCancellation"] = *p.FromReservationCancellation
	}
	return fields
}

// PollResult is the outcome of one poll cycle for a user.
type PollResult struct {
	Entry                       *WaitingParty
	TableAvailable              bool
	AutoExpired                 bool
	FromReservationCancellation bool
}

// SlotAvailability answers a pre-join availability check against the
// reservation collection.
type SlotAvailability struct {
	IsReserved bool `json:"isReserved"`
	Available  bool `json:"available"`
}
