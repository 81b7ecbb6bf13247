package reservation

import (
	"errors"
	"strings"
	"time"

	"bistro-reserve/internal/domain/schedule"
)

// Money is an integer amount of centavos. Fees never use floating point.
type Money struct {
	centavos int64
}

func NewMoney(centavos int64) (Money, error) {
	if centavos < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{centavos: centavos}, nil
}

func (m Money) Centavos() int64 {
	return m.centavos
}

func (m Money) LessThan(other Money) bool {
	return m.centavos < other.centavos
}

// Contact is the booking party's name and reachable contact info.
type Contact struct {
	name string
	info string
}

func NewContact(name, info string) (Contact, error) {
	name = strings.TrimSpace(name)
	info = strings.TrimSpace(info)
	if name == "" {
		return Contact{}, errors.New("contact name is required")
	}
	if info == "" {
		return Contact{}, errors.New("contact info is required")
	}
	return Contact{name: name, info: info}, nil
}

func (c Contact) Name() string { return c.name }
func (c Contact) Info() string { return c.info }

// Slot is the occupancy of one table for one timeslot: the unit the store's
// uniqueness constraint guards. (StartsAt, TableID) is unique across all
// non-cancelled reservations.
type Slot struct {
	TableID  string
	StartsAt time.Time
	EndsAt   time.Time
}

// BuildSlots cross-products the selected timeslots and tables into the slot
// rows a reservation occupies.
func BuildSlots(timeslots []schedule.Timeslot, tableIDs []string) []Slot {
	slots := make([]Slot, 0, len(timeslots)*len(tableIDs))
	for _, ts := range timeslots {
		for _, id := range tableIDs {
			slots = append(slots, Slot{
				TableID:  id,
				StartsAt: ts.Start(),
				EndsAt:   ts.End(),
			})
		}
	}
	return slots
}
