package competency

import "time"

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Competency struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CareerBand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Requirement is one cell of the requirement matrix: the proficiency level
// a career band is expected to reach on a competency.
type Requirement struct {
	CareerBandID  string    `json:"careerBandId"`
	CompetencyID  string    `json:"competencyId"`
	RequiredLevel int       `json:"requiredLevel"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	MinLevel = 1
	MaxLevel = 5
)
