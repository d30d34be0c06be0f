package gap

import (
	"math"
	"sort"
)

const (
	ClassCritical = "Critical"
	ClassSlight   = "Slight Gap"
	ClassMeets    = "Meets Requirement"
	ClassExceeds  = "Exceeds Requirement"
)

// EffectiveScore picks the most authoritative score present on a row:
// final, then leader, then self, else zero.
func EffectiveScore(row DetailRow) int {
	switch {
	case row.FinalScore != nil:
		return *row.FinalScore
	case row.LeaderScore != nil:
		return *row.LeaderScore
	case row.SelfScore != nil:
		return *row.SelfScore
	default:
		return 0
	}
}

// GapOf returns the gap and whether the row is eligible for gap statistics.
// Rows without a required level are kept for score display but never counted.
func GapOf(row DetailRow) (int, bool) {
	if row.RequiredLevel == nil {
		return 0, false
	}
	return EffectiveScore(row) - *row.RequiredLevel, true
}

func Classify(gapValue int) string {
	switch {
	case gapValue <= -2:
		return ClassCritical
	case gapValue < 0:
		return ClassSlight
	case gapValue == 0:
		return ClassMeets
	default:
		return ClassExceeds
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Aggregate computes the summary, per-competency, and per-employee views
// over the given rows. Aggregation keeps full float precision internally and
// rounds only the returned figures. Empty input yields a zeroed report.
func Aggregate(rows []DetailRow) Report {
	var (
		totalGap      float64
		eligibleRows  int
		meetingRows   int
		byUser        = map[string]*EmployeeGap{}
		byCompetency  = map[string]*CompetencyGap{}
		gapSumByUser  = map[string]float64{}
		gapSumByComp  = map[string]float64{}
		rowsByCompNum = map[string]int{}
	)

	for _, row := range rows {
		gapValue, eligible := GapOf(row)
		if !eligible {
			continue
		}
		eligibleRows++
		totalGap += float64(gapValue)
		if gapValue >= 0 {
			meetingRows++
		}

		employee, ok := byUser[row.UserID]
		if !ok {
			employee = &EmployeeGap{UserID: row.UserID}
			byUser[row.UserID] = employee
		}
		employee.TotalCompetencies++
		gapSumByUser[row.UserID] += float64(gapValue)
		if gapValue <= -2 {
			employee.CriticalGaps = append(employee.CriticalGaps, EmployeeCompetencyGap{
				CompetencyID:   row.CompetencyID,
				CompetencyName: row.CompetencyName,
				Gap:            gapValue,
				Classification: Classify(gapValue),
			})
		}

		competency, ok := byCompetency[row.CompetencyID]
		if !ok {
			competency = &CompetencyGap{CompetencyID: row.CompetencyID, CompetencyName: row.CompetencyName}
			byCompetency[row.CompetencyID] = competency
		}
		rowsByCompNum[row.CompetencyID]++
		gapSumByComp[row.CompetencyID] += float64(gapValue)
		if gapValue < 0 {
			competency.EmployeesBelow++
		}
	}

	report := Report{}
	report.Summary.TotalEmployees = len(byUser)
	if eligibleRows > 0 {
		report.Summary.AvgGap = round2(totalGap / float64(eligibleRows))
		report.Summary.MeetsRequirementPercent = round2(float64(meetingRows) / float64(eligibleRows) * 100)
		report.Summary.NeedsDevelopmentPercent = round2(float64(eligibleRows-meetingRows) / float64(eligibleRows) * 100)
	}

	for id, competency := range byCompetency {
		competency.AvgGap = round2(gapSumByComp[id] / float64(rowsByCompNum[id]))
		report.ByCompetency = append(report.ByCompetency, *competency)
	}
	sort.Slice(report.ByCompetency, func(i, j int) bool {
		if report.ByCompetency[i].AvgGap == report.ByCompetency[j].AvgGap {
			return report.ByCompetency[i].CompetencyID < report.ByCompetency[j].CompetencyID
		}
		return report.ByCompetency[i].AvgGap < report.ByCompetency[j].AvgGap
	})

	for id, employee := range byUser {
		employee.AvgGap = round2(gapSumByUser[id] / float64(employee.TotalCompetencies))
		sort.Slice(employee.CriticalGaps, func(i, j int) bool {
			return employee.CriticalGaps[i].CompetencyID < employee.CriticalGaps[j].CompetencyID
		})
		report.ByEmployee = append(report.ByEmployee, *employee)
	}
	sort.Slice(report.ByEmployee, func(i, j int) bool {
		if report.ByEmployee[i].AvgGap == report.ByEmployee[j].AvgGap {
			return report.ByEmployee[i].UserID < report.ByEmployee[j].UserID
		}
		return report.ByEmployee[i].AvgGap < report.ByEmployee[j].AvgGap
	})

	return report
}

// RadarByGroup folds rows into competency-group aggregates for the radar
// chart: average effective score against average required level, with the
// per-competency breakdown nested inside each group.
func RadarByGroup(rows []DetailRow) []RadarGroup {
	type compAccumulator struct {
		name        string
		groupID     string
		scoreSum    float64
		requiredSum float64
		count       int
	}
	type groupAccumulator struct {
		name        string
		scoreSum    float64
		requiredSum float64
		count       int
	}

	comps := map[string]*compAccumulator{}
	groups := map[string]*groupAccumulator{}

	for _, row := range rows {
		if row.RequiredLevel == nil {
			continue
		}
		score := float64(EffectiveScore(row))
		required := float64(*row.RequiredLevel)

		comp, ok := comps[row.CompetencyID]
		if !ok {
			comp = &compAccumulator{name: row.CompetencyName, groupID: row.GroupID}
			comps[row.CompetencyID] = comp
		}
		comp.scoreSum += score
		comp.requiredSum += required
		comp.count++

		group, ok := groups[row.GroupID]
		if !ok {
			group = &groupAccumulator{name: row.GroupName}
			groups[row.GroupID] = group
		}
		group.scoreSum += score
		group.requiredSum += required
		group.count++
	}

	byGroup := map[string][]RadarCompetency{}
	for id, comp := range comps {
		avgScore := comp.scoreSum / float64(comp.count)
		avgRequired := comp.requiredSum / float64(comp.count)
		byGroup[comp.groupID] = append(byGroup[comp.groupID], RadarCompetency{
			CompetencyID:   id,
			CompetencyName: comp.name,
			AvgScore:       round2(avgScore),
			AvgRequired:    round2(avgRequired),
			AvgGap:         round2(avgScore - avgRequired),
		})
	}

	var out []RadarGroup
	for id, group := range groups {
		competencies := byGroup[id]
		sort.Slice(competencies, func(i, j int) bool {
			return competencies[i].CompetencyName < competencies[j].CompetencyName
		})
		out = append(out, RadarGroup{
			GroupID:       id,
			GroupName:     group.name,
			AvgFinalScore: round2(group.scoreSum / float64(group.count)),
			AvgRequired:   round2(group.requiredSum / float64(group.count)),
			Competencies:  competencies,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupName < out[j].GroupName })
	return out
}
