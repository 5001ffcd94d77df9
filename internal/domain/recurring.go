package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeekdaySet is a set of weekdays stored as a bitmask indexed by time.Weekday.
type WeekdaySet uint8

const allWeekdays WeekdaySet = 1<<7 - 1

// mondayFirst is the display order of weekdays.
var mondayFirst = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) IsEmpty() bool { return s&allWeekdays == 0 }

// Days returns the members of s, Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for _, d := range mondayFirst {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the set for humans: "Daily", "Never", or "Mon, Wed".
func (s WeekdaySet) String() string {
	switch {
	case s&allWeekdays == allWeekdays:
		return "Daily"
	case s.IsEmpty():
		return "Never"
	}
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ", ")
}

// ParseWeekday accepts full or three-letter English day names, any case.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for _, d := range mondayFirst {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, true
		}
	}
	return 0, false
}

// RecurringSchedule makes an inventory item produce a to-buy copy on the
// selected weekdays.
type RecurringSchedule struct {
	ItemID uuid.UUID
	Days   WeekdaySet

	// LastTriggeredOn is the calendar date (midnight UTC) of the last firing.
	LastTriggeredOn *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShouldFire reports whether the schedule fires on the calendar date today.
// A schedule fires at most once per date.
func (s *RecurringSchedule) ShouldFire(today time.Time) bool {
	if !s.Days.Has(today.Weekday()) {
		return false
	}
	return s.LastTriggeredOn == nil || !SameDate(*s.LastTriggeredOn, today)
}

func (s *RecurringSchedule) Description() string {
	return s.Days.String()
}

// DateOf returns the calendar date of t in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RecurringEntry pairs a schedule with the item that owns it.
type RecurringEntry struct {
	Schedule RecurringSchedule
	Source   Item
}
