package assessment

import "time"

type Cycle struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Assessment struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	CycleID        string     `json:"cycleId"`
	Status         string     `json:"status"`
	SelfScoreAvg   *float64   `json:"selfScoreAvg,omitempty"`
	LeaderScoreAvg *float64   `json:"leaderScoreAvg,omitempty"`
	FinalScoreAvg  *float64   `json:"finalScoreAvg,omitempty"`
	Feedback       *string    `json:"feedback,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	FinalizedAt    *time.Time `json:"finalizedAt,omitempty"`
}

// Detail is one competency row of an assessment. RequiredLevel is a snapshot
// taken from the requirement matrix at assignment time; matrix edits after
// that never reach existing rows.
type Detail struct {
	ID            string `json:"id"`
	AssessmentID  string `json:"assessmentId"`
	CompetencyID  string `json:"competencyId"`
	RequiredLevel *int   `json:"requiredLevel,omitempty"`
	SelfScore     *int   `json:"selfScore,omitempty"`
	LeaderScore   *int   `json:"leaderScore,omitempty"`
	FinalScore    *int   `json:"finalScore,omitempty"`
	Note          string `json:"note"`
}

// ScoreEntry is one competency's submission within a stage call.
type ScoreEntry struct {
	CompetencyID string `json:"competencyId"`
	Score        int    `json:"score"`
	Note         string `json:"note"`
}

// FinalEntry is one competency's finalize input. Score is optional; when
// absent the stored leader score (then self score) is used.
type FinalEntry struct {
	CompetencyID string `json:"competencyId"`
	Score        *int   `json:"score,omitempty"`
	Note         string `json:"note"`
}

type ActivationSummary struct {
	CycleID         string `json:"cycleId"`
	Assigned        int    `json:"assigned"`
	AlreadyAssigned int    `json:"alreadyAssigned"`
	SkippedNoMatrix int    `json:"skippedNoMatrix"`
}

type ReminderSummary struct {
	CycleID  string `json:"cycleId"`
	Reminded int    `json:"reminded"`
}
