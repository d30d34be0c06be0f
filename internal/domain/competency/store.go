package competency

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM competency_groups ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Store) CreateGroup(ctx context.Context, name string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, "INSERT INTO competency_groups (name) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListCompetencies(ctx context.Context) ([]Competency, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, group_id, name, description
    FROM competencies
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var competencies []Competency
	for rows.Next() {
		var c Competency
		if err := rows.Scan(&c.ID, &c.GroupID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		competencies = append(competencies, c)
	}
	return competencies, rows.Err()
}

func (s *Store) CreateCompetency(ctx context.Context, groupID, name, description string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO competencies (group_id, name, description)
    VALUES ($1,$2,$3)
    RETURNING id
  `, groupID, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListCareerBands(ctx context.Context) ([]CareerBand, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, rank FROM career_bands ORDER BY rank")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bands []CareerBand
	for rows.Next() {
		var b CareerBand
		if err := rows.Scan(&b.ID, &b.Name, &b.Rank); err != nil {
			return nil, err
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

// UpsertRequirement writes one matrix cell. Existing assessments keep their
// snapshot; this only affects future assignments.
func (s *Store) UpsertRequirement(ctx context.Context, careerBandID, competencyID string, requiredLevel int) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO competency_requirements (career_band_id, competency_id, required_level)
    VALUES ($1,$2,$3)
    ON CONFLICT (career_band_id, competency_id)
    DO UPDATE SET required_level = EXCLUDED.required_level, updated_at = now()
  `, careerBandID, competencyID, requiredLevel)
	return err
}

func (s *Store) DeleteRequirement(ctx context.Context, careerBandID, competencyID string) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM competency_requirements WHERE career_band_id = $1 AND competency_id = $2
  `, careerBandID, competencyID)
	return err
}

func (s *Store) MatrixForBand(ctx context.Context, careerBandID string) ([]Requirement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT career_band_id, competency_id, required_level, updated_at
    FROM competency_requirements
    WHERE career_band_id = $1
    ORDER BY competency_id
  `, careerBandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requirements []Requirement
	for rows.Next() {
		var r Requirement
		if err := rows.Scan(&r.CareerBandID, &r.CompetencyID, &r.RequiredLevel, &r.UpdatedAt); err != nil {
			return nil, err
		}
		requirements = append(requirements, r)
	}
	return requirements, rows.Err()
}
