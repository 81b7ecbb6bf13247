package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrEmptyTimeslots         = errors.New("at least one timeslot must be selected")
	ErrNotOnSchedule          = errors.New("instant is not a scheduled timeslot start")
	ErrMultipleDates          = errors.New("timeslots must fall on a single date")
	ErrNonContiguousTimeslots = errors.New("timeslots must be contiguous")
	ErrDateInPast             = errors.New("reservation date is in the past")
	ErrClosedDay              = errors.New("restaurant is closed on that day")
)

// Timeslot is a fixed-length window derived from the daily schedule.
// It is a value, never a stored entity.
type Timeslot struct {
	start    time.Time
	duration time.Duration
}

func (t Timeslot) Start() time.Time {
	return t.start
}

func (t Timeslot) End() time.Time {
	return t.start.Add(t.duration)
}

func (t Timeslot) Duration() time.Duration {
	return t.duration
}

type startOfDay struct {
	hour   int
	minute int
}

// DailySchedule is the restaurant's fixed sequence of bookable start times.
// Two timeslots are adjacent when they are immediate neighbors in this
// sequence; a valid selection is an unbroken chain of adjacent timeslots.
type DailySchedule struct {
	loc      *time.Location
	starts   []startOfDay
	duration time.Duration
	closed   func(date time.Time) bool
}

// New builds a schedule from "HH:MM" start times in the given timezone.
// The closed predicate decides whether the restaurant accepts bookings on a
// given date; nil means always open.
func New(timezone string, startTimes []string, duration time.Duration, closed func(date time.Time) bool) (*DailySchedule, error) {
	if len(startTimes) == 0 {
		return nil, errors.New("schedule requires at least one start time")
	}
	if duration <= 0 {
		return nil, errors.New("slot duration must be positive")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", timezone, err)
	}

	starts := make([]startOfDay, 0, len(startTimes))
	for _, s := range startTimes {
		var h, m int
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", s, err)
		}
		if h < 0 || h > 23 || m < 0 || m > 59 {
			return nil, fmt.Errorf("start time %q out of range", s)
		}
		starts = append(starts, startOfDay{hour: h, minute: m})
	}
	sort.Slice(starts, func(i, j int) bool {
		if starts[i].hour != starts[j].hour {
			return starts[i].hour < starts[j].hour
		}
		return starts[i].minute < starts[j].minute
	})
	for i := 1; i < len(starts); i++ {
		if starts[i] == starts[i-1] {
			return nil, fmt.Errorf("duplicate start time %02d:%02d", starts[i].hour, starts[i].minute)
		}
	}

	return &DailySchedule{
		loc:      loc,
		starts:   starts,
		duration: duration,
		closed:   closed,
	}, nil
}

// ClosedWeekdays builds a closed-day predicate from weekday names
// ("Monday", "Tuesday", ...). Unknown names are ignored.
func ClosedWeekdays(names []string) func(time.Time) bool {
	closed := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if strings.EqualFold(strings.TrimSpace(n), wd.String()) {
				closed[wd] = true
			}
		}
	}
	if len(closed) == 0 {
		return nil
	}
	return func(date time.Time) bool {
		return closed[date.Weekday()]
	}
}

func (s *DailySchedule) Location() *time.Location {
	return s.loc
}

// SlotsOn returns the day's timeslots for the date of the given instant,
// interpreted in the restaurant's timezone.
func (s *DailySchedule) SlotsOn(date time.Time) []Timeslot {
	local := date.In(s.loc)
	y, m, d := local.Date()

	slots := make([]Timeslot, len(s.starts))
	for i, st := range s.starts {
		slots[i] = Timeslot{
			start:    time.Date(y, m, d, st.hour, st.minute, 0, 0, s.loc),
			duration: s.duration,
		}
	}
	return slots
}

// Slot resolves an instant to its schedule timeslot. The second return is
// false when the instant is not one of the day's fixed start times.
func (s *DailySchedule) Slot(instant time.Time) (Timeslot, bool) {
	if _, ok := s.indexOf(instant); !ok {
		return Timeslot{}, false
	}
	return Timeslot{start: instant.In(s.loc), duration: s.duration}, true
}

// Adjacent reports whether two scheduled instants are immediate neighbors
// in the same day's sequence.
func (s *DailySchedule) Adjacent(a, b time.Time) bool {
	ia, oka := s.indexOf(a)
	ib, okb := s.indexOf(b)
	if !oka || !okb || !sameLocalDate(a.In(s.loc), b.In(s.loc)) {
		return false
	}
	diff := ia - ib
	return diff == 1 || diff == -1
}

func (s *DailySchedule) IsClosedOn(date time.Time) bool {
	if s.closed == nil {
		return false
	}
	return s.closed(date.In(s.loc))
}

// ValidateSelection enforces the booking rules over a set of requested
// instants: every instant is a scheduled start, all on one not-yet-past open
// date, and together they form an unbroken chain of adjacent timeslots.
// On success the selection is returned as ordered timeslots.
func (s *DailySchedule) ValidateSelection(instants []time.Time, now time.Time) ([]Timeslot, error) {
	if len(instants) == 0 {
		return nil, ErrEmptyTimeslots
	}

	indexes := make([]int, 0, len(instants))
	slots := make([]Timeslot, 0, len(instants))
	var day time.Time
	for i, at := range instants {
		idx, ok := s.indexOf(at)
		if !ok {
			return nil, ErrNotOnSchedule
		}
		local := at.In(s.loc)
		if i == 0 {
			day = local
		} else if !sameLocalDate(day, local) {
			return nil, ErrMultipleDates
		}
		indexes = append(indexes, idx)
		slots = append(slots, Timeslot{start: local, duration: s.duration})
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].start.Before(slots[j].start) })
	sort.Ints(indexes)
	for i := 1; i < len(indexes); i++ {
		if indexes[i] != indexes[i-1]+1 {
			// Duplicates and gaps both break the chain.
			return nil, ErrNonContiguousTimeslots
		}
	}

	if slots[0].Start().Before(now) {
		return nil, ErrDateInPast
	}
	if s.IsClosedOn(day) {
		return nil, ErrClosedDay
	}

	return slots, nil
}

func (s *DailySchedule) indexOf(instant time.Time) (int, bool) {
	local := instant.In(s.loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return 0, false
	}
	for i, st := range s.starts {
		if local.Hour() == st.hour && local.Minute() == st.minute {
			return i, true
		}
	}
	return 0, false
}

func sameLocalDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
