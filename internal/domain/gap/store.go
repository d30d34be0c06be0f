package gap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Scope narrows which detail rows feed a report. Zero value means the whole
// org.
type Scope struct {
	CycleID string
	UserID  string
	TeamID  string
}

func (s *Store) DetailRows(ctx context.Context, scope Scope) ([]DetailRow, error) {
	query := `
    SELECT a.user_id, d.competency_id, c.name, c.group_id, g.name,
           d.required_level, d.self_score, d.leader_score, d.final_score
    FROM assessment_details d
    JOIN assessments a ON d.assessment_id = a.id
    JOIN competencies c ON d.competency_id = c.id
    JOIN competency_groups g ON c.group_id = g.id
    WHERE 1=1
  `
	var args []any
	if scope.CycleID != "" {
		args = append(args, scope.CycleID)
		query += fmt.Sprintf(" AND a.cycle_id = $%d", len(args))
	}
	if scope.UserID != "" {
		args = append(args, scope.UserID)
		query += fmt.Sprintf(" AND a.user_id = $%d", len(args))
	}
	if scope.TeamID != "" {
		args = append(args, scope.TeamID)
		query += fmt.Sprintf(" AND a.user_id IN (SELECT id FROM users WHERE team_id = $%d)", len(args))
	}
	query += " ORDER BY a.user_id, d.competency_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DetailRow
	for rows.Next() {
		var row DetailRow
		if err := rows.Scan(&row.UserID, &row.CompetencyID, &row.CompetencyName, &row.GroupID, &row.GroupName,
			&row.RequiredLevel, &row.SelfScore, &row.LeaderScore, &row.FinalScore); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
