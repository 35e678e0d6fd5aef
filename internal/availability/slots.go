package availability

import (
	"fmt"
	"time"
)

// Hours is the opening window of one weekday. DayOfWeek uses 0 for Sunday.
type Hours struct {
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsOpen    bool   `json:"isOpen"`
}

// Reservation is the part of an appointment that occupies a slot.
type Reservation struct {
	Date      string
	TimeSlot  string
	ServiceID string
	Cancelled bool
}

// Slot is an offered start time annotated with whether it is still free.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// GenerateSlots returns the start times of consecutive slots of duration
// minutes beginning at openTime. A slot is offered only when it ends at or
// before closeTime; a remainder shorter than duration is left unused.
func GenerateSlots(openTime, closeTime string, duration int) ([]string, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}
	start, err := ParseClock(openTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(closeTime)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0)
	// minutes are compared unwrapped so a slot can never run past midnight
	for current := int(start); current < int(end); current += duration {
		if current+duration <= int(end) {
			slots = append(slots, Clock(current).String())
		}
	}
	return slots, nil
}

// IsSlotAvailable reports whether no non-cancelled reservation holds date and
// timeSlot. A non-empty serviceID restricts the check to that service.
func IsSlotAvailable(reservations []Reservation, date, timeSlot, serviceID string) bool {
	for _, r := range reservations {
		if r.Cancelled || r.Date != date || r.TimeSlot != timeSlot {
			continue
		}
		if serviceID != "" && r.ServiceID != serviceID {
			continue
		}
		return false
	}
	return true
}

// Index answers availability questions in constant time. It gives the same
// answers as IsSlotAvailable over the reservations it was built from.
type Index struct {
	taken map[string][]string
}

// NewIndex builds an index of the non-cancelled reservations.
func NewIndex(reservations []Reservation) Index {
	taken := make(map[string][]string, len(reservations))
	for _, r := range reservations {
		if r.Cancelled {
			continue
		}
		key := indexKey(r.Date, r.TimeSlot)
		taken[key] = append(taken[key], r.ServiceID)
	}
	return Index{taken: taken}
}

// IsSlotAvailable mirrors the package level function.
func (idx Index) IsSlotAvailable(date, timeSlot, serviceID string) bool {
	services, ok := idx.taken[indexKey(date, timeSlot)]
	if !ok {
		return true
	}
	if serviceID == "" {
		return false
	}
	for _, id := range services {
		if id == serviceID {
			return false
		}
	}
	return true
}

func indexKey(date, timeSlot string) string {
	return date + "|" + timeSlot
}

// HoursFor returns the entry for weekday, if any.
func HoursFor(hours []Hours, weekday time.Weekday) (Hours, bool) {
	for _, h := range hours {
		if h.DayOfWeek == int(weekday) {
			return h, true
		}
	}
	return Hours{}, false
}

// DaySlots lists the slots offered on date for a service of the given duration.
// Closed days and weekdays without an hours entry yield no slots. Availability
// is checked against every service, so one booking blocks the time slot.
func DaySlots(date string, hours []Hours, duration int, reservations []Reservation) ([]Slot, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return nil, err
	}

	day, ok := HoursFor(hours, weekday)
	if !ok || !day.IsOpen {
		return []Slot{}, nil
	}

	starts, err := GenerateSlots(day.OpenTime, day.CloseTime, duration)
	if err != nil {
		return nil, err
	}

	idx := NewIndex(reservations)
	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, Slot{Time: start, Available: idx.IsSlotAvailable(date, start, "")})
	}
	return slots, nil
}
