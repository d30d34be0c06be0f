package assessment

import (
	"math"
	"strings"
)

// validateEntries checks a stage submission against the assessment's fixed
// detail set: every competency must be covered exactly once and every score
// must be within [MinScore, MaxScore].
func validateEntries(details []Detail, entries []ScoreEntry) error {
	byCompetency := make(map[string]ScoreEntry, len(entries))
	for _, entry := range entries {
		if _, dup := byCompetency[entry.CompetencyID]; dup {
			return Validationf("duplicate score for competency %s", entry.CompetencyID)
		}
		byCompetency[entry.CompetencyID] = entry
	}

	for _, detail := range details {
		entry, ok := byCompetency[detail.CompetencyID]
		if !ok {
			return Validationf("missing score for competency %s", detail.CompetencyID)
		}
		if entry.Score < MinScore || entry.Score > MaxScore {
			return Validationf("score for competency %s must be between %d and %d", detail.CompetencyID, MinScore, MaxScore)
		}
		delete(byCompetency, detail.CompetencyID)
	}

	for competencyID := range byCompetency {
		return Validationf("unknown competency %s", competencyID)
	}
	return nil
}

// resolveFinalScores applies the finalize tie-break per detail row: the
// caller-supplied score wins, otherwise the stored leader score, otherwise
// the self score. Returns a validation error when a row ends up with no
// resolvable score at all.
func resolveFinalScores(details []Detail, entries []FinalEntry) (map[string]ScoreEntry, error) {
	supplied := make(map[string]FinalEntry, len(entries))
	for _, entry := range entries {
		if _, dup := supplied[entry.CompetencyID]; dup {
			return nil, Validationf("duplicate final score for competency %s", entry.CompetencyID)
		}
		supplied[entry.CompetencyID] = entry
	}

	resolved := make(map[string]ScoreEntry, len(details))
	for _, detail := range details {
		entry := supplied[detail.CompetencyID]
		delete(supplied, detail.CompetencyID)

		var score int
		switch {
		case entry.Score != nil:
			score = *entry.Score
		case detail.LeaderScore != nil:
			score = *detail.LeaderScore
		case detail.SelfScore != nil:
			score = *detail.SelfScore
		default:
			return nil, Validationf("no final score available for competency %s", detail.CompetencyID)
		}
		if score < MinScore || score > MaxScore {
			return nil, Validationf("final score for competency %s must be between %d and %d", detail.CompetencyID, MinScore, MaxScore)
		}

		note := entry.Note
		if note == "" {
			note = detail.Note
		}
		resolved[detail.CompetencyID] = ScoreEntry{CompetencyID: detail.CompetencyID, Score: score, Note: note}
	}

	for competencyID := range supplied {
		return nil, Validationf("unknown competency %s", competencyID)
	}
	return resolved, nil
}

// averageScore computes the mean of the submitted scores at full precision.
// Rounding happens at the presentation boundary only.
func averageScore(entries map[string]ScoreEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.Score
	}
	return float64(sum) / float64(len(entries))
}

func entriesByCompetency(entries []ScoreEntry) map[string]ScoreEntry {
	out := make(map[string]ScoreEntry, len(entries))
	for _, entry := range entries {
		out[entry.CompetencyID] = entry
	}
	return out
}

func normalizeFeedback(feedback string) string {
	if strings.TrimSpace(feedback) == "" {
		return DefaultFeedback
	}
	return feedback
}

// Round2 rounds to two decimals for display payloads.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
