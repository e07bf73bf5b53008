package dto

// BuildRosterRequest triggers a roster build over [start_date, end_date).
// Dates are calendar days; end_date is exclusive.
type BuildRosterRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Async     bool   `json:"async"`
}

// OverrideAssignmentRequest swaps the crew member on an existing assignment.
type OverrideAssignmentRequest struct {
	CrewID string `json:"crew_id" validate:"required"`
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// OverrideResult reports the outcome of a manual override, including any
// legality warning the operator chose to accept.
type OverrideResult struct {
	AssignmentID    string `json:"assignment_id"`
	CrewID          string `json:"crew_id"`
	LegalityWarning string `json:"legality_warning,omitempty"`
}
