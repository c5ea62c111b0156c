package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is a live commitment of one employee to a piece of work over an
// inclusive date range. remaining_hours <= total_hours is expected but not
// enforced upstream; consumers clamp rather than fail.
type Assignment struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	Title          string
	StartDate      time.Time
	EndDate        time.Time
	TotalHours     float64
	RemainingHours float64
	Priority       int
}

// Overlaps reports whether the assignment interval intersects [start, end],
// both ranges inclusive.
func (a Assignment) Overlaps(start, end time.Time) bool {
	return !a.StartDate.After(end) && !a.EndDate.Before(start)
}

// DurationDays is the inclusive day count of the assignment interval.
func (a Assignment) DurationDays() int {
	return daysInclusive(a.StartDate, a.EndDate)
}

// OverlapDays is the inclusive number of days the assignment shares with
// [start, end], clamped at zero.
func (a Assignment) OverlapDays(start, end time.Time) int {
	s := maxTime(a.StartDate, start)
	e := minTime(a.EndDate, end)
	d := daysInclusive(s, e)
	if d < 0 {
		return 0
	}
	return d
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
