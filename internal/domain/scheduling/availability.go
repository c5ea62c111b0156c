package scheduling

import (
	"time"

	"staff-match/internal/domain/assignment"
)

type Status string

const (
	StatusAvailable Status = "Available"
	StatusPartial   Status = "Partial"
	StatusBusy      Status = "Busy"
)

// Policy holds the workload constants used to prorate assignments over a
// query window. The values are product policy, not physical facts, so they
// are named and overridable rather than inlined.
type Policy struct {
	// HoursPerDay is the assumed daily working capacity, and the fallback
	// daily rate for assignments that carry no usable hour fields.
	HoursPerDay float64
	// BusyMaxPercent is the upper bound of the Busy band.
	BusyMaxPercent float64
	// PartialMaxPercent is the upper bound of the Partial band.
	PartialMaxPercent float64
}

func DefaultPolicy() Policy {
	return Policy{
		HoursPerDay:       8,
		BusyMaxPercent:    30,
		PartialMaxPercent: 50,
	}
}

type Availability struct {
	Percent float64
	Status  Status
}

// Calculate prorates the overlapping assignments across [windowStart,
// windowEnd] and returns the free fraction of the window as a percentage.
//
// Each assignment contributes a daily-hour rate times the days it shares
// with the window. The rate is derived from remaining hours when positive,
// else total hours, else the policy fallback of HoursPerDay for every day
// of the assignment. No overlapping assignments means a fully free window.
func Calculate(assignments []assignment.Assignment, windowStart, windowEnd time.Time, policy Policy) Availability {
	windowDays := inclusiveDays(windowStart, windowEnd)
	capacity := float64(windowDays) * policy.HoursPerDay
	if capacity <= 0 {
		// degenerate window, nothing can be scheduled into it
		return Availability{Percent: 0, Status: StatusBusy}
	}

	committed := 0.0
	overlapping := 0

	for _, a := range assignments {
		if !a.Overlaps(windowStart, windowEnd) {
			continue
		}
		overlapping++

		duration := a.DurationDays()
		if duration <= 0 {
			continue
		}

		base := a.RemainingHours
		if base <= 0 {
			base = a.TotalHours
		}
		if base <= 0 {
			base = float64(duration) * policy.HoursPerDay
		}

		rate := base / float64(duration)
		committed += rate * float64(a.OverlapDays(windowStart, windowEnd))
	}

	if overlapping == 0 {
		return Availability{Percent: 100, Status: StatusAvailable}
	}

	percent := (1 - committed/capacity) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Availability{Percent: percent, Status: policy.status(percent)}
}

func (p Policy) status(percent float64) Status {
	switch {
	case percent <= p.BusyMaxPercent:
		return StatusBusy
	case percent <= p.PartialMaxPercent:
		return StatusPartial
	default:
		return StatusAvailable
	}
}

func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
