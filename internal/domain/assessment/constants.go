package assessment

const (
	CycleStatusDraft     = "draft"
	CycleStatusActive    = "active"
	CycleStatusCompleted = "completed"

	StatusSelfAssessing   = "self_assessing"
	StatusLeaderAssessing = "leader_assessing"
	StatusDiscussion      = "discussion"
	StatusDone            = "done"

	MinScore = 1
	MaxScore = 5

	// DefaultFeedback is stored when finalize is called with empty feedback.
	DefaultFeedback = "No additional feedback provided."
)

// stageOrder gives each assessment status its position in the forward-only
// sequence. Transitions may only move to the immediately following stage.
var stageOrder = map[string]int{
	StatusSelfAssessing:   0,
	StatusLeaderAssessing: 1,
	StatusDiscussion:      2,
	StatusDone:            3,
}

func NextStatus(current string) (string, bool) {
	switch current {
	case StatusSelfAssessing:
		return StatusLeaderAssessing, true
	case StatusLeaderAssessing:
		return StatusDiscussion, true
	case StatusDiscussion:
		return StatusDone, true
	default:
		return "", false
	}
}

func StageRank(status string) int {
	rank, ok := stageOrder[status]
	if !ok {
		return -1
	}
	return rank
}
