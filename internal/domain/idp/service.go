package idp

import (
	"context"

	"talenthub/internal/domain/assessment"
	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/notifications"
)

type Notifier interface {
	Notify(userID, templateCode string, vars map[string]string)
}

type Service struct {
	Store  *Store
	notify Notifier
}

func NewService(store *Store, notify Notifier) *Service {
	return &Service{Store: store, notify: notify}
}

// Generate builds a development plan from a finalized assessment's negative
// gaps. Regenerating replaces still-open generated activities; activities a
// user already started are left alone.
func (s *Service) Generate(ctx context.Context, actor auth.Actor, assessmentID string) (string, error) {
	status, subjectID, err := s.Store.AssessmentStatusAndUser(ctx, assessmentID)
	if err != nil {
		return "", err
	}
	if !actor.Caps.ReviewOrgWide && actor.UserID != subjectID {
		return "", assessment.Permissionf("not authorized to generate a plan for this assessment")
	}
	if status != assessment.StatusDone {
		return "", assessment.Statef("assessment is in stage %s, plans are generated from finalized assessments only", status)
	}

	inputs, err := s.Store.GapInputs(ctx, assessmentID)
	if err != nil {
		return "", err
	}
	planID, err := s.Store.ReplacePlan(ctx, subjectID, assessmentID, BuildActivities(inputs))
	if err != nil {
		return "", err
	}

	s.notify.Notify(subjectID, notifications.TypeIDPCreated, map[string]string{
		"assessmentId": assessmentID,
	})
	return planID, nil
}

func (s *Service) ListUserPlans(ctx context.Context, actor auth.Actor, userID string) ([]Plan, error) {
	if !actor.Caps.ReviewOrgWide && actor.UserID != userID {
		return nil, assessment.Permissionf("not authorized to view these plans")
	}
	return s.Store.ListUserPlans(ctx, userID)
}

func (s *Service) ListActivities(ctx context.Context, actor auth.Actor, planID string) ([]Activity, error) {
	owner, err := s.Store.PlanOwner(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !actor.Caps.ReviewOrgWide && actor.UserID != owner {
		return nil, assessment.Permissionf("not authorized to view this plan")
	}
	return s.Store.ListActivities(ctx, planID)
}

func (s *Service) UpdateActivityStatus(ctx context.Context, actor auth.Actor, planID, activityID, status string) error {
	switch status {
	case ActivityStatusOpen, ActivityStatusInProgress, ActivityStatusDone:
	default:
		return assessment.Validationf("unknown activity status %q", status)
	}
	owner, err := s.Store.PlanOwner(ctx, planID)
	if err != nil {
		return err
	}
	if !actor.Caps.ReviewOrgWide && actor.UserID != owner {
		return assessment.Permissionf("not authorized to update this plan")
	}
	return s.Store.UpdateActivityStatus(ctx, planID, activityID, status)
}
