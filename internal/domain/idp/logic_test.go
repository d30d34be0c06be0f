package idp

import "testing"

func intPtr(v int) *int { return &v }

func TestBuildActivitiesPriorities(t *testing.T) {
	inputs := []GapInput{
		{CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: intPtr(4), FinalScore: intPtr(2)},
		{CompetencyID: "c2", CompetencyName: "SQL", RequiredLevel: intPtr(3), FinalScore: intPtr(2)},
		{CompetencyID: "c3", CompetencyName: "Mentoring", RequiredLevel: intPtr(2), FinalScore: intPtr(3)},
	}

	drafts := BuildActivities(inputs)
	if len(drafts) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(drafts))
	}
	if drafts[0].CompetencyID != "c1" || drafts[0].Priority != PriorityCritical {
		t.Fatalf("expected critical activity for c1, got %+v", drafts[0])
	}
	if drafts[1].CompetencyID != "c2" || drafts[1].Priority != PriorityHigh {
		t.Fatalf("expected high priority for c2, got %+v", drafts[1])
	}
	if drafts[0].Title != "Develop Go from level 2 to level 4" {
		t.Fatalf("unexpected title: %q", drafts[0].Title)
	}
}

func TestBuildActivitiesSkipsIncompleteRows(t *testing.T) {
	inputs := []GapInput{
		{CompetencyID: "c1", CompetencyName: "Go", FinalScore: intPtr(1)},
		{CompetencyID: "c2", CompetencyName: "SQL", RequiredLevel: intPtr(5)},
	}
	if drafts := BuildActivities(inputs); len(drafts) != 0 {
		t.Fatalf("expected no activities, got %d", len(drafts))
	}
}

func TestBuildActivitiesEmptyForMetRequirements(t *testing.T) {
	inputs := []GapInput{
		{CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: intPtr(3), FinalScore: intPtr(3)},
	}
	if drafts := BuildActivities(inputs); drafts != nil {
		t.Fatalf("expected nil drafts, got %+v", drafts)
	}
}
