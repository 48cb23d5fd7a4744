package services

import "strings"

// Slot encodings. The queue stores compact 24h ranges, reservations store an
// AM/PM display form with an en dash, and the queue additionally carries a
// human display form with a plain hyphen. Unknown inputs pass through
// unchanged so ad-hoc slots entered upstream keep working.
var slotToReservation = map[string]string{
	"07:30-08:50": "7:30 AM – 8:50 AM",
	"09:10-10:30": "9:10 AM – 10:30 AM",
	"12:00-13:20": "12:00 PM – 1:20 PM",
	"13:40-15:00": "1:40 PM – 3:00 PM",
	"18:40-20:00": "6:40 PM – 8:00 PM",
	"20:20-21:40": "8:20 PM – 9:40 PM",
}

var slotToDisplay = map[string]string{
	"07:30-08:50": "7:30 AM - 8:50 AM",
	"09:10-10:30": "9:10 AM - 10:30 AM",
	"12:00-13:20": "12:00 PM - 1:20 PM",
	"13:40-15:00": "1:40 PM - 3:00 PM",
	"18:40-20:00": "6:40 PM - 8:00 PM",
	"20:20-21:40": "8:20 PM - 9:40 PM",
}

var hallToLocation = map[string]string{
	"AC":   "ac hall",
	"Main": "main hall",
	"VIP":  "vip hall",
	"Any":  "any",
}

// ToReservationSlot maps a compact queue slot to the reservation encoding.
func ToReservationSlot(slot string) string {
	if v, ok := slotToReservation[slot]; ok {
		return v
	}
	return slot
}

// ToDisplaySlot maps a compact queue slot to the human display form.
func ToDisplaySlot(slot string) string {
	if v, ok := slotToDisplay[slot]; ok {
		return v
	}
	return slot
}

// FromReservationSlot is the reverse lookup, reservation encoding back to the
// compact form. Reports false for slots outside the fixed six.
func FromReservationSlot(slot string) (string, bool) {
	for compact, display := range slotToReservation {
		if display == slot {
			return compact, true
		}
	}
	return "", false
}

// HallToLocationToken maps a queue hall choice to the lowercase token used
// for matching against reservation location text.
func HallToLocationToken(hall string) string {
	if v, ok := hallToLocation[hall]; ok {
		return v
	}
	return strings.ToLower(hall)
}

// HallMatchesLocation reports whether a reservation's location satisfies the
// queue hall constraint. "Any" matches everything; otherwise the hall token
// must appear inside the location text, case-insensitively.
func HallMatchesLocation(hall, location string) bool {
	if hall == "Any" {
		return true
	}
	token := HallToLocationToken(hall)
	return strings.Contains(strings.ToLower(location), token)
}

// SegmentMatchesPrefix reports whether a reservation's segment satisfies the
// queue segment constraint. "Any" matches everything; otherwise the
// reservation segment must start with the queue segment, case-insensitively.
func SegmentMatchesPrefix(segment, reservationSegment string) bool {
	if segment == "Any" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(reservationSegment), strings.ToLower(segment))
}
