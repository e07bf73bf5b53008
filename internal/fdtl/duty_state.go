package fdtl

import (
	"time"

	"github.com/skyops/crew-roster-api/internal/models"
)

type dutySpan struct {
	start time.Time
	end   time.Time
	hours float64
}

// DutyState is one crew member's in-memory duty ledger for the duration of
// a roster build. It is append-only: Assign is the sole mutator and must
// only be called for pairings the Evaluator accepted.
type DutyState struct {
	crewID  string
	spans   []dutySpan
	lastEnd time.Time
	hasDuty bool
}

// NewDutyState returns an empty ledger for the crew member.
func NewDutyState(crewID string) *DutyState {
	return &DutyState{crewID: crewID}
}

// CrewID returns the owning crew member's id.
func (s *DutyState) CrewID() string {
	return s.crewID
}

// Seed loads persisted duty history into the ledger, for incremental
// builds that must respect duty already flown before the build window.
func (s *DutyState) Seed(history []models.DutyPeriod) {
	for _, p := range history {
		s.Assign(p.DutyStart, p.DutyEnd)
	}
}

// Assign appends a duty period and refreshes the cached last duty end.
func (s *DutyState) Assign(start, end time.Time) {
	s.spans = append(s.spans, dutySpan{
		start: start,
		end:   end,
		hours: end.Sub(start).Hours(),
	})
	if !s.hasDuty || end.After(s.lastEnd) {
		s.lastEnd = end
		s.hasDuty = true
	}
}

// LastDutyEnd returns the latest duty end, if any duty exists.
func (s *DutyState) LastDutyEnd() (time.Time, bool) {
	return s.lastEnd, s.hasDuty
}

// FlyingHoursSince sums duty hours of periods starting at or after the
// given instant. Pure read; safe to call repeatedly.
func (s *DutyState) FlyingHoursSince(since time.Time) float64 {
	var total float64
	for _, span := range s.spans {
		if !span.start.Before(since) {
			total += span.hours
		}
	}
	return total
}

// FirstDutyStartOn returns the earliest duty start falling on the same
// calendar date as the given instant, in that instant's location.
func (s *DutyState) FirstDutyStartOn(day time.Time) (time.Time, bool) {
	loc := day.Location()
	y, m, d := day.Date()

	var earliest time.Time
	found := false
	for _, span := range s.spans {
		sy, sm, sd := span.start.In(loc).Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		if !found || span.start.Before(earliest) {
			earliest = span.start
			found = true
		}
	}
	return earliest, found
}
