package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCycle(ctx context.Context, name string, startDate, endDate time.Time) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO assessment_cycles (name, start_date, end_date, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, name, startDate, endDate, CycleStatusDraft).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	var cycle Cycle
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, start_date, end_date, status, created_at
    FROM assessment_cycles
    WHERE id = $1
  `, cycleID).Scan(&cycle.ID, &cycle.Name, &cycle.StartDate, &cycle.EndDate, &cycle.Status, &cycle.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, NotFoundf("cycle %s not found", cycleID)
	}
	if err != nil {
		return Cycle{}, err
	}
	return cycle, nil
}

func (s *Store) ListCycles(ctx context.Context) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, start_date, end_date, status, created_at
    FROM assessment_cycles
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var cycle Cycle
		if err := rows.Scan(&cycle.ID, &cycle.Name, &cycle.StartDate, &cycle.EndDate, &cycle.Status, &cycle.CreatedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, nil
}

// AdvanceCycleStatus performs the forward-only cycle transition guarded by
// the expected current status in the WHERE clause.
func (s *Store) AdvanceCycleStatus(ctx context.Context, cycleID, fromStatus, toStatus string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE assessment_cycles SET status = $1 WHERE id = $2 AND status = $3
  `, toStatus, cycleID, fromStatus)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteDraftCycle(ctx context.Context, cycleID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM assessment_cycles WHERE id = $1 AND status = $2
  `, cycleID, CycleStatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateAssessment inserts the assessment and its full detail set in one
// transaction. The (user_id, cycle_id) unique constraint makes re-runs a
// no-op; the second return value reports whether a new row was created.
func (s *Store) CreateAssessment(ctx context.Context, userID, cycleID string, requirements []RequirementSnapshot) (string, bool, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO assessments (user_id, cycle_id, status)
    VALUES ($1,$2,$3)
    ON CONFLICT (user_id, cycle_id) DO NOTHING
    RETURNING id
  `, userID, cycleID, StatusSelfAssessing).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	for _, req := range requirements {
		if _, err := tx.Exec(ctx, `
      INSERT INTO assessment_details (assessment_id, competency_id, required_level)
      VALUES ($1,$2,$3)
    `, id, req.CompetencyID, req.RequiredLevel); err != nil {
			return "", false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (s *Store) GetAssessment(ctx context.Context, assessmentID string) (Assessment, error) {
	var a Assessment
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, cycle_id, status, self_score_avg, leader_score_avg, final_score_avg,
           feedback, created_at, updated_at, finalized_at
    FROM assessments
    WHERE id = $1
  `, assessmentID).Scan(&a.ID, &a.UserID, &a.CycleID, &a.Status, &a.SelfScoreAvg, &a.LeaderScoreAvg,
		&a.FinalScoreAvg, &a.Feedback, &a.CreatedAt, &a.UpdatedAt, &a.FinalizedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assessment{}, NotFoundf("assessment %s not found", assessmentID)
	}
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *Store) ListCycleAssessments(ctx context.Context, cycleID, status string, userIDs []string) ([]Assessment, error) {
	query := `
    SELECT id, user_id, cycle_id, status, self_score_avg, leader_score_avg, final_score_avg,
           feedback, created_at, updated_at, finalized_at
    FROM assessments
    WHERE cycle_id = $1
  `
	args := []any{cycleID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if len(userIDs) > 0 {
		args = append(args, userIDs)
		query += fmt.Sprintf(" AND user_id = ANY($%d)", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssessments(rows)
}

func (s *Store) ListUserAssessments(ctx context.Context, userID string) ([]Assessment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, cycle_id, status, self_score_avg, leader_score_avg, final_score_avg,
           feedback, created_at, updated_at, finalized_at
    FROM assessments
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssessments(rows)
}

func scanAssessments(rows pgx.Rows) ([]Assessment, error) {
	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.UserID, &a.CycleID, &a.Status, &a.SelfScoreAvg, &a.LeaderScoreAvg,
			&a.FinalScoreAvg, &a.Feedback, &a.CreatedAt, &a.UpdatedAt, &a.FinalizedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListDetails(ctx context.Context, assessmentID string) ([]Detail, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, assessment_id, competency_id, required_level, self_score, leader_score, final_score, note
    FROM assessment_details
    WHERE assessment_id = $1
    ORDER BY competency_id
  `, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.AssessmentID, &d.CompetencyID, &d.RequiredLevel, &d.SelfScore,
			&d.LeaderScore, &d.FinalScore, &d.Note); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

var stageColumns = map[string]struct {
	score string
	avg   string
}{
	stageFieldSelf:   {score: "self_score", avg: "self_score_avg"},
	stageFieldLeader: {score: "leader_score", avg: "leader_score_avg"},
	stageFieldFinal:  {score: "final_score", avg: "final_score_avg"},
}

// ApplyStage runs the stage transition as one transaction. The current
// status is re-read under a row lock so that two racing submissions cannot
// both pass the precondition; the loser gets a state error and nothing is
// written.
func (s *Store) ApplyStage(ctx context.Context, write StageWrite) error {
	columns, ok := stageColumns[write.Field]
	if !ok {
		return fmt.Errorf("unknown stage field %q", write.Field)
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var currentStatus string
	err = tx.QueryRow(ctx, `
    SELECT status FROM assessments WHERE id = $1 FOR UPDATE
  `, write.AssessmentID).Scan(&currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundf("assessment %s not found", write.AssessmentID)
	}
	if err != nil {
		return err
	}
	if currentStatus != write.ExpectedStatus {
		return Statef("assessment already in stage %s", currentStatus)
	}

	for competencyID, entry := range write.Entries {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
      UPDATE assessment_details
      SET %s = $1, note = $2
      WHERE assessment_id = $3 AND competency_id = $4
    `, columns.score), entry.Score, entry.Note, write.AssessmentID, competencyID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return Validationf("unknown competency %s", competencyID)
		}
	}

	if write.Feedback != nil {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`
      UPDATE assessments
      SET %s = $1, status = $2, feedback = $3, finalized_at = now(), updated_at = now()
      WHERE id = $4
    `, columns.avg), write.Average, write.NextStatus, *write.Feedback, write.AssessmentID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`
      UPDATE assessments
      SET %s = $1, status = $2, updated_at = now()
      WHERE id = $3
    `, columns.avg), write.Average, write.NextStatus, write.AssessmentID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
