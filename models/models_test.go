package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitingPartyJSON(t *testing.T) {
	joined := time.Date(2026, 8, 28, 10, 15, 0, 0, time.UTC)
	p := WaitingParty{
		ID:                   "q-1001",
		UserID:               "5551234",
		Name:                 "Arjun",
		Guests:               4,
		NotificationMethod:   "sms",
		Contact:              "5551234",
		Hall:                 "AC",
		Segment:              "Front",
		Position:             2,
		EstimatedWaitMinutes: 45,
		JoinedAt:             joined,
		QueueDate:            "2026-08-28",
		TimeSlot:             "12:00-13:20",
		TimeSlotDisplay:      "12:00 PM - 1:20 PM",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "q-1001", decoded["id"])
	assert.Equal(t, "AC", decoded["hall"])
	assert.Equal(t, float64(2), decoded["position"])
	assert.Equal(t, false, decoded["tableAvailable"])
	assert.Nil(t, decoded["notificationExpiresAt"])
}

func TestJoinRequestValidate(t *testing.T) {
	valid := JoinRequest{
		ID:        "q-1",
		Name:      "Mei",
		Guests:    2,
		Contact:   "5550000",
		Hall:      "Main",
		Segment:   "Back",
		QueueDate: "2026-08-28",
		TimeSlot:  "18:40-20:00",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*JoinRequest)
		want   string
	}{
		{"missing id", func(r *JoinRequest) { r.ID = "" }, "id_required"},
		{"missing name", func(r *JoinRequest) { r.Name = "" }, "name_required"},
		{"zero guests", func(r *JoinRequest) { r.Guests = 0 }, "guests_required"},
		{"missing contact", func(r *JoinRequest) { r.Contact = "" }, "contact_required"},
		{"missing hall", func(r *JoinRequest) { r.Hall = "" }, "hall_required"},
		{"missing segment", func(r *JoinRequest) { r.Segment = "" }, "segment_required"},
		{"missing date", func(r *JoinRequest) { r.QueueDate = "" }, "queueDate_required"},
		{"missing slot", func(r *JoinRequest) { r.TimeSlot = "" }, "timeSlot_required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestJoinRequestValidateFieldOrder(t *testing.T) {
	// Several fields missing: the first in wire order wins.
	r := JoinRequest{Guests: 4, Contact: "x"}
	err := r.Validate()
	require.Error(t, err)
	assert.Equal(t, "id_required", err.Error())
}

func TestReservationRequestValidate(t *testing.T) {
	valid := ReservationRequest{
		ReservationID: "r-9",
		UserID:        "u-1",
		Date:          "2026-08-28",
		TimeSlot:      "7:30 AM – 8:50 AM",
		Guests:        4,
		Location:      "AC Hall",
		Segment:       "Front",
		UserName:      "Sam",
		UserPhone:     "5559999",
	}
	assert.NoError(t, valid.Validate())

	r := valid
	r.UserPhone = ""
	err := r.Validate()
	require.Error(t, err)
	assert.Equal(t, "userPhone_required", err.Error())
}

func TestWaitingJoinRequestValidate(t *testing.T) {
	valid := WaitingJoinRequest{
		QueueID:  "w-1",
		UserID:   "u-1",
		Date:     "2026-08-28",
		TimeSlot: "7:30 AM – 8:50 AM",
		Guests:   2,
	}
	assert.NoError(t, valid.Validate())

	r := valid
	r.Guests = 0
	err := r.Validate()
	require.Error(t, err)
	assert.Equal(t, "guests_required", err.Error())
}

func TestEntryPatchFields(t *testing.T) {
	avail := true
	wait := 12.5
	expires := time.Date(2026, 8, 28, 12, 3, 0, 0, time.UTC)
	p := EntryPatch{
		TableAvailable:        &avail,
		EstimatedWaitMinutes:  &wait,
		NotificationExpiresAt: &expires,
	}

	fields := p.Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, true, fields["tableAvailable"])
	assert.Equal(t, 12.5, fields["estimatedWaitMinutes"])
	assert.Equal(t, expires, fields["notificationExpiresAt"])
	assert.NotContains(t, fields, "notifiedAt15Min")
}

func TestEntryPatchFieldsEmpty(t *testing.T) {
	p := EntryPatch{}
	assert.Empty(t, p.Fields())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "queueDate"}
	assert.Equal(t, "queueDate_required", err.Error())
}
