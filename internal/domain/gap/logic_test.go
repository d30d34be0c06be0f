package gap

import "testing"

func intPtr(v int) *int { return &v }

func TestEffectiveScorePrecedence(t *testing.T) {
	row := DetailRow{SelfScore: intPtr(2), LeaderScore: intPtr(3), FinalScore: intPtr(4)}
	if EffectiveScore(row) != 4 {
		t.Fatalf("expected final score, got %d", EffectiveScore(row))
	}
	row.FinalScore = nil
	if EffectiveScore(row) != 3 {
		t.Fatalf("expected leader score, got %d", EffectiveScore(row))
	}
	row.LeaderScore = nil
	if EffectiveScore(row) != 2 {
		t.Fatalf("expected self score, got %d", EffectiveScore(row))
	}
	row.SelfScore = nil
	if EffectiveScore(row) != 0 {
		t.Fatalf("expected zero for unscored row, got %d", EffectiveScore(row))
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := map[int]string{
		-3: ClassCritical,
		-2: ClassCritical,
		-1: ClassSlight,
		0:  ClassMeets,
		1:  ClassExceeds,
		2:  ClassExceeds,
	}
	for gapValue, want := range cases {
		if got := Classify(gapValue); got != want {
			t.Fatalf("Classify(%d) = %q, want %q", gapValue, got, want)
		}
	}
}

func TestGapOfIgnoresRowsWithoutRequirement(t *testing.T) {
	if _, eligible := GapOf(DetailRow{FinalScore: intPtr(4)}); eligible {
		t.Fatal("row without required level must be ineligible")
	}
	gapValue, eligible := GapOf(DetailRow{RequiredLevel: intPtr(3), FinalScore: intPtr(5)})
	if !eligible || gapValue != 2 {
		t.Fatalf("expected gap 2, got %d eligible=%v", gapValue, eligible)
	}
}

func TestAggregateSummary(t *testing.T) {
	rows := []DetailRow{
		{UserID: "u1", CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: intPtr(3), FinalScore: intPtr(4)},
		{UserID: "u1", CompetencyID: "c2", CompetencyName: "SQL", RequiredLevel: intPtr(3), FinalScore: intPtr(3)},
		{UserID: "u2", CompetencyID: "c1", CompetencyName: "Go", RequiredLevel: intPtr(4), FinalScore: intPtr(2)},
	}

	report := Aggregate(rows)

	if report.Summary.TotalEmployees != 2 {
		t.Fatalf("expected 2 employees, got %d", report.Summary.TotalEmployees)
	}
	// gaps are +1, 0, -2 so the mean is -1/3
	if report.Summary.AvgGap != -0.33 {
		t.Fatalf("expected avg gap -0.33, got %v", report.Summary.AvgGap)
	}
	if report.Summary.MeetsRequirementPercent != 66.67 {
		t.Fatalf("expected 66.67%% meeting, got %v", report.Summary.MeetsRequirementPercent)
	}
	if report.Summary.NeedsDevelopmentPercent != 33.33 {
		t.Fatalf("expected 33.33%% needing development, got %v", report.Summary.NeedsDevelopmentPercent)
	}

	if len(report.ByCompetency) != 2 {
		t.Fatalf("expected 2 competency rows, got %d", len(report.ByCompetency))
	}
	// c1 averages (+1 + -2)/2 = -0.5 and sorts before c2 at 0
	if report.ByCompetency[0].CompetencyID != "c1" || report.ByCompetency[0].AvgGap != -0.5 {
		t.Fatalf("unexpected worst competency: %+v", report.ByCompetency[0])
	}
	if report.ByCompetency[0].EmployeesBelow != 1 {
		t.Fatalf("expected 1 employee below on c1, got %d", report.ByCompetency[0].EmployeesBelow)
	}

	if report.ByEmployee[0].UserID != "u2" {
		t.Fatalf("expected u2 ranked worst, got %s", report.ByEmployee[0].UserID)
	}
	if len(report.ByEmployee[0].CriticalGaps) != 1 {
		t.Fatalf("expected 1 critical gap for u2, got %d", len(report.ByEmployee[0].CriticalGaps))
	}
}

func TestAggregateExcludesIneligibleRows(t *testing.T) {
	rows := []DetailRow{
		{UserID: "u1", CompetencyID: "c1", RequiredLevel: intPtr(3), FinalScore: intPtr(3)},
		{UserID: "u2", CompetencyID: "c9", FinalScore: intPtr(5)},
	}
	report := Aggregate(rows)
	if report.Summary.TotalEmployees != 1 {
		t.Fatalf("user with only ineligible rows must not count, got %d", report.Summary.TotalEmployees)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	report := Aggregate(nil)
	if report.Summary.TotalEmployees != 0 || report.Summary.AvgGap != 0 {
		t.Fatalf("expected zeroed summary, got %+v", report.Summary)
	}
	if len(report.ByCompetency) != 0 || len(report.ByEmployee) != 0 {
		t.Fatal("expected empty breakdowns")
	}
}

func TestRadarByGroup(t *testing.T) {
	rows := []DetailRow{
		{UserID: "u1", CompetencyID: "c1", CompetencyName: "Go", GroupID: "g1", GroupName: "Technical", RequiredLevel: intPtr(3), FinalScore: intPtr(4)},
		{UserID: "u2", CompetencyID: "c1", CompetencyName: "Go", GroupID: "g1", GroupName: "Technical", RequiredLevel: intPtr(3), FinalScore: intPtr(2)},
		{UserID: "u1", CompetencyID: "c3", CompetencyName: "Mentoring", GroupID: "g2", GroupName: "Leadership", RequiredLevel: intPtr(2), FinalScore: intPtr(2)},
	}

	groups := RadarByGroup(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// sorted by group name: Leadership first
	if groups[0].GroupName != "Leadership" || groups[1].GroupName != "Technical" {
		t.Fatalf("unexpected group order: %s, %s", groups[0].GroupName, groups[1].GroupName)
	}
	technical := groups[1]
	if technical.AvgFinalScore != 3 || technical.AvgRequired != 3 {
		t.Fatalf("unexpected technical averages: %+v", technical)
	}
	if len(technical.Competencies) != 1 || technical.Competencies[0].AvgGap != 0 {
		t.Fatalf("unexpected technical breakdown: %+v", technical.Competencies)
	}
}
