package idp

import "time"

const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityNormal   = "normal"

	ActivityStatusOpen       = "open"
	ActivityStatusInProgress = "in_progress"
	ActivityStatusDone       = "done"
)

type Plan struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AssessmentID string    `json:"assessmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Activity struct {
	ID           string    `json:"id"`
	PlanID       string    `json:"planId"`
	CompetencyID string    `json:"competencyId"`
	Title        string    `json:"title"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GapInput is one finalized detail row feeding plan generation.
type GapInput struct {
	CompetencyID   string
	CompetencyName string
	RequiredLevel  *int
	FinalScore     *int
}
