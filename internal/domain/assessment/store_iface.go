package assessment

import (
	"context"
	"time"
)

// RequirementSnapshot is the matrix row copied onto a detail at assignment
// time.
type RequirementSnapshot struct {
	CompetencyID  string
	RequiredLevel int
}

type EligibleUser struct {
	UserID       string
	CareerBandID string
}

const (
	stageFieldSelf   = "self"
	stageFieldLeader = "leader"
	stageFieldFinal  = "final"
)

// StageWrite carries one atomic stage transition: the status precondition is
// re-checked inside the store transaction, the detail rows are written, the
// cached average is stored and the status advances, all or nothing.
type StageWrite struct {
	AssessmentID   string
	ExpectedStatus string
	NextStatus     string
	Field          string
	Entries        map[string]ScoreEntry
	Average        float64
	Feedback       *string
}

type StoreAPI interface {
	CreateCycle(ctx context.Context, name string, startDate, endDate time.Time) (string, error)
	GetCycle(ctx context.Context, cycleID string) (Cycle, error)
	ListCycles(ctx context.Context) ([]Cycle, error)
	AdvanceCycleStatus(ctx context.Context, cycleID, fromStatus, toStatus string) (bool, error)
	DeleteDraftCycle(ctx context.Context, cycleID string) (bool, error)
	CreateAssessment(ctx context.Context, userID, cycleID string, requirements []RequirementSnapshot) (string, bool, error)
	GetAssessment(ctx context.Context, assessmentID string) (Assessment, error)
	ListCycleAssessments(ctx context.Context, cycleID, status string, userIDs []string) ([]Assessment, error)
	ListUserAssessments(ctx context.Context, userID string) ([]Assessment, error)
	ListDetails(ctx context.Context, assessmentID string) ([]Detail, error)
	ApplyStage(ctx context.Context, write StageWrite) error
}

// DirectoryAPI is the read-only slice of the user directory the engine needs.
type DirectoryAPI interface {
	EligibleUsers(ctx context.Context) ([]EligibleUser, error)
	LeaderUserID(ctx context.Context, userID string) (string, error)
	TeamMemberIDs(ctx context.Context, leaderUserID string) ([]string, error)
}

// MatrixAPI resolves career band requirements at assignment time.
type MatrixAPI interface {
	MatrixForBand(ctx context.Context, careerBandID string) ([]RequirementSnapshot, error)
}

// Notifier is fire and forget; implementations must never block or fail the
// caller.
type Notifier interface {
	Notify(userID, templateCode string, vars map[string]string)
}
