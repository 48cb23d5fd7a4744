package models

// Reservation is a confirmed table booking. TimeSlot carries the reservation
// display encoding ("7:30 AM – 8:50 AM"), not the compact queue form.
type Reservation struct {
	ReservationID string `json:"reservationId"`
	UserID        string `json:"userId"`
	TableNumber   int    `json:"tableNumber"`
	Date          string `json:"date"` // YYYY-MM-DD
	TimeSlot      string `json:"timeSlot"`
	Guests        int    `json:"guests"`
	Location      string `json:"location"`
	Segment       string `json:"segment"`
	UserName      string `json:"userName"`
	UserPhone     string `json:"userPhone"`
	Status        string `json:"status"`
}

// ReservationRequest is the create/upsert payload. TableNumber is optional;
// when absent the server assigns the lowest free table for the slot.
type ReservationRequest struct {
	ReservationID string `json:"reservationId"`
	UserID        string `json:"userId"`
	TableNumber   int    `json:"tableNumber"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	Guests        int    `json:"guests"`
	Location      string `json:"location"`
	Segment       string `json:"segment"`
	UserName      string `json:"userName"`
	UserPhone     string `json:"userPhone"`
	Status        string `json:"status"`
}

func (r *ReservationRequest) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"reservationId", r.ReservationID != ""},
		{"userId", r.UserID != ""},
		{"date", r.Date != ""},
		{"timeSlot", r.TimeSlot != ""},
		{"guests", r.Guests > 0},
		{"location", r.Location != ""},
		{"segment", r.Segment != ""},
		{"userName", r.UserName != ""},
		{"userPhone", r.UserPhone != ""},
	}
	for _, c := range checks {
		if !c.ok {
			return &ValidationError{Field: c.field}
		}
	}
	return nil
}

// ReservationFilter narrows reservation and waiting-list listings. The zero
// value means "no constraint".
type ReservationFilter struct {
	UserID string
}

// Table is one row of the static dining-room inventory.
type Table struct {
	TableID  string `json:"tableId"` // T001..T012
	Name     string `json:"tableName"`
	Location string `json:"location"` // VIP Hall, AC Hall, Main Hall
	Segment  string `json:"segment"`  // Front, Middle, Back
	Capacity int    `json:"capacity"`
}

// TableAvailability is a table annotated with whether it is free for the
// requested date and slot.
type TableAvailability struct {
	Table
	IsAvailable bool `json:"isAvailable"`
}

// AvailabilityResult is the availability response. ShowWaitingQueueOption is
// true only when matching tables exist and every one of them is taken.
type AvailabilityResult struct {
	Tables                 []TableAvailability `json:"tables"`
	ShowWaitingQueueOption bool                `json:"showWaitingQueueOption"`
}

// WaitingReservation is one row of the secondary reservation waiting list.
// EstimatedWait is a textual range derived from position at join time.
type WaitingReservation struct {
	QueueID       string `json:"queueId"`
	UserID        string `json:"userId"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	Guests        int    `json:"guests"`
	Position      int    `json:"position"`
	EstimatedWait string `json:"estimatedWait"`
}

type WaitingJoinRequest struct {
	QueueID  string `json:"queueId"`
	UserID   string `json:"userId"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Guests   int    `json:"guests"`
}

func (r *WaitingJoinRequest) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"queueId", r.QueueID != ""},
		{"userId", r.UserID != ""},
		{"date", r.Date != ""},
		{"timeSlot", r.TimeSlot != ""},
		{"guests", r.Guests > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return &ValidationError{Field: c.field}
		}
	}
	return nil
}
