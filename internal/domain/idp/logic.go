package idp

import "fmt"

// ActivityDraft is a generated development activity before persistence.
type ActivityDraft struct {
	CompetencyID string
	Title        string
	Priority     string
}

// BuildActivities derives one development activity per competency scoring
// below its required level. Rows without a required level or a final score
// are skipped.
func BuildActivities(inputs []GapInput) []ActivityDraft {
	var drafts []ActivityDraft
	for _, input := range inputs {
		if input.RequiredLevel == nil || input.FinalScore == nil {
			continue
		}
		gapValue := *input.FinalScore - *input.RequiredLevel
		if gapValue >= 0 {
			continue
		}

		priority := PriorityNormal
		switch {
		case gapValue <= -2:
			priority = PriorityCritical
		case gapValue == -1:
			priority = PriorityHigh
		}

		drafts = append(drafts, ActivityDraft{
			CompetencyID: input.CompetencyID,
			Title: fmt.Sprintf("Develop %s from level %d to level %d",
				input.CompetencyName, *input.FinalScore, *input.RequiredLevel),
			Priority: priority,
		})
	}
	return drafts
}
