// Package fdtl implements flight-duty-time-limitation legality checks
// over in-memory crew duty ledgers.
package fdtl

import (
	"fmt"
	"time"
)

// Limits holds the FDTL caps in real-valued hours. A duty total exactly at
// a cap is legal; only exceeding it is a violation.
type Limits struct {
	MinRestHours         float64
	MaxFDPHours          float64
	MaxDailyFlyHours     float64
	MaxWeeklyFlyHours    float64
	MaxRolling28FlyHours float64
}

// DefaultLimits returns the CAA caps the original roster operated under.
func DefaultLimits() Limits {
	return Limits{
		MinRestHours:         12,
		MaxFDPHours:          13,
		MaxDailyFlyHours:     8,
		MaxWeeklyFlyHours:    40,
		MaxRolling28FlyHours: 100,
	}
}

// Evaluator decides whether a candidate flight is legal for a crew member
// given their accumulated duty state. It is stateless with respect to
// storage; all inputs arrive as arguments.
type Evaluator struct {
	limits Limits
}

// NewEvaluator constructs an evaluator for the given limits.
func NewEvaluator(limits Limits) *Evaluator {
	return &Evaluator{limits: limits}
}

// Limits exposes the configured caps.
func (e *Evaluator) Limits() Limits {
	return e.limits
}

// Check evaluates the five FDTL rules in order and reports the first
// failure. A legal pairing returns (true, "Legal"). Durations are exact
// hour values; the one-decimal rounding below is message formatting only.
func (e *Evaluator) Check(state *DutyState, departure, arrival time.Time) (bool, string) {
	flightHours := arrival.Sub(departure).Hours()

	// Rule 1: minimum rest since last duty end.
	if lastEnd, ok := state.LastDutyEnd(); ok {
		restGap := departure.Sub(lastEnd).Hours()
		if restGap < e.limits.MinRestHours {
			return false, fmt.Sprintf("Insufficient rest: %.1fh < %gh", restGap, e.limits.MinRestHours)
		}
	}

	// Rule 2: maximum flight duty period measured from the first report
	// time on the departure's calendar date.
	if firstStart, ok := state.FirstDutyStartOn(departure); ok {
		fdp := arrival.Sub(firstStart).Hours()
		if fdp > e.limits.MaxFDPHours {
			return false, fmt.Sprintf("FDP exceeded: %.1fh > %gh", fdp, e.limits.MaxFDPHours)
		}
	}

	// Rule 3: daily flying from local midnight of the departure date.
	midnight := startOfDay(departure)
	if flown := state.FlyingHoursSince(midnight) + flightHours; flown > e.limits.MaxDailyFlyHours {
		return false, fmt.Sprintf("Daily flying exceeded: %.1fh > %gh", flown, e.limits.MaxDailyFlyHours)
	}

	// Rule 4: trailing 7-day window.
	if flown := state.FlyingHoursSince(departure.AddDate(0, 0, -7)) + flightHours; flown > e.limits.MaxWeeklyFlyHours {
		return false, fmt.Sprintf("Weekly flying exceeded: %.1fh > %gh", flown, e.limits.MaxWeeklyFlyHours)
	}

	// Rule 5: trailing 28-day window.
	if flown := state.FlyingHoursSince(departure.AddDate(0, 0, -28)) + flightHours; flown > e.limits.MaxRolling28FlyHours {
		return false, fmt.Sprintf("28-day flying exceeded: %.1fh > %gh", flown, e.limits.MaxRolling28FlyHours)
	}

	return true, "Legal"
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
