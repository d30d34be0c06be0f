package assessment

import "testing"

func intPtr(v int) *int { return &v }

func threeDetails() []Detail {
	return []Detail{
		{CompetencyID: "c1"},
		{CompetencyID: "c2"},
		{CompetencyID: "c3"},
	}
}

func TestValidateEntriesComplete(t *testing.T) {
	entries := []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c2", Score: 5},
		{CompetencyID: "c3", Score: 1},
	}
	if err := validateEntries(threeDetails(), entries); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestValidateEntriesMissingCompetency(t *testing.T) {
	entries := []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c2", Score: 5},
	}
	err := validateEntries(threeDetails(), entries)
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateEntriesScoreOutOfRange(t *testing.T) {
	entries := []ScoreEntry{
		{CompetencyID: "c1", Score: 0},
		{CompetencyID: "c2", Score: 5},
		{CompetencyID: "c3", Score: 1},
	}
	if err := validateEntries(threeDetails(), entries); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for score 0, got %v", err)
	}

	entries[0].Score = 6
	if err := validateEntries(threeDetails(), entries); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for score 6, got %v", err)
	}
}

func TestValidateEntriesDuplicate(t *testing.T) {
	entries := []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c1", Score: 4},
		{CompetencyID: "c2", Score: 5},
		{CompetencyID: "c3", Score: 1},
	}
	if err := validateEntries(threeDetails(), entries); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for duplicate, got %v", err)
	}
}

func TestValidateEntriesUnknownCompetency(t *testing.T) {
	entries := []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c2", Score: 5},
		{CompetencyID: "c3", Score: 1},
		{CompetencyID: "c9", Score: 2},
	}
	if err := validateEntries(threeDetails(), entries); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for unknown competency, got %v", err)
	}
}

func TestResolveFinalScoresLeaderWinsWithoutOverride(t *testing.T) {
	details := []Detail{
		{CompetencyID: "c1", SelfScore: intPtr(5), LeaderScore: intPtr(3)},
	}
	resolved, err := resolveFinalScores(details, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["c1"].Score != 3 {
		t.Fatalf("expected leader score 3, got %d", resolved["c1"].Score)
	}
}

func TestResolveFinalScoresOverrideWins(t *testing.T) {
	details := []Detail{
		{CompetencyID: "c1", SelfScore: intPtr(5), LeaderScore: intPtr(3)},
	}
	resolved, err := resolveFinalScores(details, []FinalEntry{
		{CompetencyID: "c1", Score: intPtr(4)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["c1"].Score != 4 {
		t.Fatalf("expected override 4, got %d", resolved["c1"].Score)
	}
}

func TestResolveFinalScoresFallsBackToSelf(t *testing.T) {
	details := []Detail{
		{CompetencyID: "c1", SelfScore: intPtr(2)},
	}
	resolved, err := resolveFinalScores(details, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved["c1"].Score != 2 {
		t.Fatalf("expected self score 2, got %d", resolved["c1"].Score)
	}
}

func TestResolveFinalScoresNoScoreAnywhere(t *testing.T) {
	details := []Detail{{CompetencyID: "c1"}}
	if _, err := resolveFinalScores(details, nil); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAverageScoreFullPrecision(t *testing.T) {
	entries := map[string]ScoreEntry{
		"c1": {Score: 3},
		"c2": {Score: 4},
		"c3": {Score: 4},
	}
	avg := averageScore(entries)
	if avg < 3.66 || avg > 3.67 {
		t.Fatalf("expected average near 3.6667, got %v", avg)
	}
	if averageScore(nil) != 0 {
		t.Fatal("expected zero average for empty entries")
	}
}

func TestNormalizeFeedback(t *testing.T) {
	if normalizeFeedback("  ") != DefaultFeedback {
		t.Fatal("expected default feedback for blank input")
	}
	if normalizeFeedback("great progress") != "great progress" {
		t.Fatal("expected feedback to pass through")
	}
}

func TestNextStatusForwardOnly(t *testing.T) {
	next, ok := NextStatus(StatusSelfAssessing)
	if !ok || next != StatusLeaderAssessing {
		t.Fatalf("expected leader_assessing after self, got %q", next)
	}
	next, ok = NextStatus(StatusLeaderAssessing)
	if !ok || next != StatusDiscussion {
		t.Fatalf("expected discussion after leader, got %q", next)
	}
	next, ok = NextStatus(StatusDiscussion)
	if !ok || next != StatusDone {
		t.Fatalf("expected done after discussion, got %q", next)
	}
	if _, ok := NextStatus(StatusDone); ok {
		t.Fatal("done must be terminal")
	}
}
