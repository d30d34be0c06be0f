package gap

// DetailRow is the aggregation input: one assessment detail joined with its
// competency reference data.
type DetailRow struct {
	UserID         string
	CompetencyID   string
	CompetencyName string
	GroupID        string
	GroupName      string
	RequiredLevel  *int
	SelfScore      *int
	LeaderScore    *int
	FinalScore     *int
}

type Summary struct {
	TotalEmployees          int     `json:"totalEmployees"`
	AvgGap                  float64 `json:"avgGap"`
	MeetsRequirementPercent float64 `json:"meetsRequirementPercent"`
	NeedsDevelopmentPercent float64 `json:"needsDevelopmentPercent"`
}

type CompetencyGap struct {
	CompetencyID   string  `json:"competencyId"`
	CompetencyName string  `json:"competencyName"`
	AvgGap         float64 `json:"avgGap"`
	EmployeesBelow int     `json:"employeesBelow"`
}

type EmployeeCompetencyGap struct {
	CompetencyID   string `json:"competencyId"`
	CompetencyName string `json:"competencyName"`
	Gap            int    `json:"gap"`
	Classification string `json:"classification"`
}

type EmployeeGap struct {
	UserID            string                  `json:"userId"`
	AvgGap            float64                 `json:"avgGap"`
	TotalCompetencies int                     `json:"totalCompetencies"`
	CriticalGaps      []EmployeeCompetencyGap `json:"criticalGaps"`
}

type RadarCompetency struct {
	CompetencyID   string  `json:"competencyId"`
	CompetencyName string  `json:"competencyName"`
	AvgScore       float64 `json:"avgScore"`
	AvgRequired    float64 `json:"avgRequired"`
	AvgGap         float64 `json:"avgGap"`
}

type RadarGroup struct {
	GroupID       string            `json:"groupId"`
	GroupName     string            `json:"groupName"`
	AvgFinalScore float64           `json:"avgFinalScore"`
	AvgRequired   float64           `json:"avgRequiredLevel"`
	Competencies  []RadarCompetency `json:"competencies"`
}

type Report struct {
	Summary      Summary         `json:"summary"`
	ByCompetency []CompetencyGap `json:"byCompetency"`
	ByEmployee   []EmployeeGap   `json:"byEmployee"`
}
