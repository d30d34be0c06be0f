package idp

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talenthub/internal/domain/assessment"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AssessmentStatusAndUser(ctx context.Context, assessmentID string) (string, string, error) {
	var status, userID string
	err := s.DB.QueryRow(ctx, `
    SELECT status, user_id FROM assessments WHERE id = $1
  `, assessmentID).Scan(&status, &userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", assessment.NotFoundf("assessment %s not found", assessmentID)
	}
	if err != nil {
		return "", "", err
	}
	return status, userID, nil
}

func (s *Store) GapInputs(ctx context.Context, assessmentID string) ([]GapInput, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.competency_id, c.name, d.required_level, d.final_score
    FROM assessment_details d
    JOIN competencies c ON d.competency_id = c.id
    WHERE d.assessment_id = $1
    ORDER BY d.competency_id
  `, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []GapInput
	for rows.Next() {
		var input GapInput
		if err := rows.Scan(&input.CompetencyID, &input.CompetencyName, &input.RequiredLevel, &input.FinalScore); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// ReplacePlan upserts the plan for the assessment and swaps out any still
// open generated activities for the fresh drafts, in one transaction.
func (s *Store) ReplacePlan(ctx context.Context, userID, assessmentID string, drafts []ActivityDraft) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var planID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO idp_plans (user_id, assessment_id)
    VALUES ($1,$2)
    ON CONFLICT (assessment_id) DO UPDATE SET user_id = EXCLUDED.user_id
    RETURNING id
  `, userID, assessmentID).Scan(&planID); err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
    DELETE FROM idp_activities WHERE plan_id = $1 AND status = $2
  `, planID, ActivityStatusOpen); err != nil {
		return "", err
	}

	for _, draft := range drafts {
		if _, err := tx.Exec(ctx, `
      INSERT INTO idp_activities (plan_id, competency_id, title, priority, status)
      VALUES ($1,$2,$3,$4,$5)
    `, planID, draft.CompetencyID, draft.Title, draft.Priority, ActivityStatusOpen); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return planID, nil
}

func (s *Store) ListUserPlans(ctx context.Context, userID string) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, assessment_id, created_at
    FROM idp_plans
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.UserID, &p.AssessmentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) ListActivities(ctx context.Context, planID string) ([]Activity, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, competency_id, title, priority, status, created_at
    FROM idp_activities
    WHERE plan_id = $1
    ORDER BY priority, created_at
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.PlanID, &a.CompetencyID, &a.Title, &a.Priority, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) PlanOwner(ctx context.Context, planID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, "SELECT user_id FROM idp_plans WHERE id = $1", planID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", assessment.NotFoundf("plan %s not found", planID)
	}
	return userID, err
}

func (s *Store) UpdateActivityStatus(ctx context.Context, planID, activityID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE idp_activities SET status = $1 WHERE id = $2 AND plan_id = $3
  `, status, activityID, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return assessment.NotFoundf("activity %s not found", activityID)
	}
	return nil
}
