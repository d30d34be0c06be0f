package assessment

import (
	"context"
	"strings"
	"time"

	"talenthub/internal/domain/auth"
	"talenthub/internal/domain/notifications"
)

type Service struct {
	store  StoreAPI
	dir    DirectoryAPI
	matrix MatrixAPI
	notify Notifier
}

func NewService(store StoreAPI, dir DirectoryAPI, matrix MatrixAPI, notify Notifier) *Service {
	return &Service{store: store, dir: dir, matrix: matrix, notify: notify}
}

func (s *Service) CreateCycle(ctx context.Context, actor auth.Actor, name string, startDate, endDate time.Time) (string, error) {
	if !actor.Caps.ManageCycles {
		return "", Permissionf("only HR or admin may create cycles")
	}
	if strings.TrimSpace(name) == "" {
		return "", Validationf("cycle name is required")
	}
	if !endDate.After(startDate) {
		return "", Validationf("end date must be after start date")
	}
	return s.store.CreateCycle(ctx, name, startDate, endDate)
}

func (s *Service) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	return s.store.GetCycle(ctx, cycleID)
}

func (s *Service) ListCycles(ctx context.Context) ([]Cycle, error) {
	return s.store.ListCycles(ctx)
}

// Activate moves a draft cycle to active and bulk-assigns every active user
// with a career band. Re-invoking on an already-active cycle is a no-op for
// users already assigned; the (userID, cycleID) uniqueness constraint makes
// the assignment idempotent.
func (s *Service) Activate(ctx context.Context, actor auth.Actor, cycleID string) (ActivationSummary, error) {
	summary := ActivationSummary{CycleID: cycleID}
	if !actor.Caps.ManageCycles {
		return summary, Permissionf("only HR or admin may activate cycles")
	}

	cycle, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return summary, err
	}
	switch cycle.Status {
	case CycleStatusDraft:
		if _, err := s.store.AdvanceCycleStatus(ctx, cycleID, CycleStatusDraft, CycleStatusActive); err != nil {
			return summary, err
		}
	case CycleStatusActive:
		// re-run: assign users added since the first activation
	default:
		return summary, Statef("cycle %s is completed", cycleID)
	}

	users, err := s.dir.EligibleUsers(ctx)
	if err != nil {
		return summary, err
	}

	var assigned []string
	for _, user := range users {
		requirements, err := s.matrix.MatrixForBand(ctx, user.CareerBandID)
		if err != nil {
			return summary, err
		}
		if len(requirements) == 0 {
			summary.SkippedNoMatrix++
			continue
		}
		_, created, err := s.store.CreateAssessment(ctx, user.UserID, cycleID, requirements)
		if err != nil {
			return summary, err
		}
		if !created {
			summary.AlreadyAssigned++
			continue
		}
		summary.Assigned++
		assigned = append(assigned, user.UserID)
	}

	for _, userID := range assigned {
		s.notify.Notify(userID, notifications.TypeAssessmentAssigned, map[string]string{
			"cycleName": cycle.Name,
		})
	}
	return summary, nil
}

func (s *Service) Close(ctx context.Context, actor auth.Actor, cycleID string) error {
	if !actor.Caps.ManageCycles {
		return Permissionf("only HR or admin may close cycles")
	}
	moved, err := s.store.AdvanceCycleStatus(ctx, cycleID, CycleStatusActive, CycleStatusCompleted)
	if err != nil {
		return err
	}
	if !moved {
		cycle, err := s.store.GetCycle(ctx, cycleID)
		if err != nil {
			return err
		}
		return Statef("cycle %s is %s, only active cycles can be closed", cycleID, cycle.Status)
	}
	return nil
}

func (s *Service) DeleteCycle(ctx context.Context, actor auth.Actor, cycleID string) error {
	if !actor.Caps.ManageCycles {
		return Permissionf("only HR or admin may delete cycles")
	}
	deleted, err := s.store.DeleteDraftCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if !deleted {
		cycle, err := s.store.GetCycle(ctx, cycleID)
		if err != nil {
			return err
		}
		return Statef("cycle %s is %s, only draft cycles can be deleted", cycleID, cycle.Status)
	}
	return nil
}

// RemindPending sends one reminder per assessment still waiting on the
// subject's self rating. Read-only apart from the notification side effects.
func (s *Service) RemindPending(ctx context.Context, actor auth.Actor, cycleID string) (ReminderSummary, error) {
	summary := ReminderSummary{CycleID: cycleID}
	if !actor.Caps.ManageCycles {
		return summary, Permissionf("only HR or admin may send reminders")
	}
	cycle, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return summary, err
	}
	pending, err := s.store.ListCycleAssessments(ctx, cycleID, StatusSelfAssessing, nil)
	if err != nil {
		return summary, err
	}
	for _, a := range pending {
		s.notify.Notify(a.UserID, notifications.TypeAssessmentReminder, map[string]string{
			"cycleName": cycle.Name,
		})
		summary.Reminded++
	}
	return summary, nil
}

// SubmitSelf records the subject's complete self rating and advances the
// assessment to leader rating.
func (s *Service) SubmitSelf(ctx context.Context, actor auth.Actor, assessmentID string, entries []ScoreEntry) error {
	a, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	if actor.UserID != a.UserID {
		return Permissionf("only the assessment subject may submit a self rating")
	}
	if err := s.requireOpenCycle(ctx, a.CycleID); err != nil {
		return err
	}
	if a.Status != StatusSelfAssessing {
		return Statef("assessment already in stage %s", a.Status)
	}

	details, err := s.store.ListDetails(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := validateEntries(details, entries); err != nil {
		return err
	}

	byCompetency := entriesByCompetency(entries)
	if err := s.store.ApplyStage(ctx, StageWrite{
		AssessmentID:   assessmentID,
		ExpectedStatus: StatusSelfAssessing,
		NextStatus:     StatusLeaderAssessing,
		Field:          stageFieldSelf,
		Entries:        byCompetency,
		Average:        averageScore(byCompetency),
	}); err != nil {
		return err
	}

	if leaderID, err := s.dir.LeaderUserID(ctx, a.UserID); err == nil && leaderID != "" {
		s.notify.Notify(leaderID, notifications.TypeLeaderReviewReady, map[string]string{
			"subjectUserId": a.UserID,
		})
	}
	return nil
}

// SubmitLeader records the leader's complete rating and advances the
// assessment to the joint discussion stage.
func (s *Service) SubmitLeader(ctx context.Context, actor auth.Actor, assessmentID string, entries []ScoreEntry) error {
	a, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := s.requireReviewer(ctx, actor, a.UserID); err != nil {
		return err
	}
	if err := s.requireOpenCycle(ctx, a.CycleID); err != nil {
		return err
	}
	if a.Status != StatusLeaderAssessing {
		return Statef("assessment already in stage %s", a.Status)
	}

	details, err := s.store.ListDetails(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := validateEntries(details, entries); err != nil {
		return err
	}

	byCompetency := entriesByCompetency(entries)
	return s.store.ApplyStage(ctx, StageWrite{
		AssessmentID:   assessmentID,
		ExpectedStatus: StatusLeaderAssessing,
		NextStatus:     StatusDiscussion,
		Field:          stageFieldLeader,
		Entries:        byCompetency,
		Average:        averageScore(byCompetency),
	})
}

// Finalize closes the assessment after the joint discussion. Supplied scores
// win; otherwise the stored leader score and then the self score are used.
// The done stage is terminal.
func (s *Service) Finalize(ctx context.Context, actor auth.Actor, assessmentID string, entries []FinalEntry, feedback string) error {
	a, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := s.requireReviewer(ctx, actor, a.UserID); err != nil {
		return err
	}
	if err := s.requireOpenCycle(ctx, a.CycleID); err != nil {
		return err
	}
	if a.Status != StatusDiscussion {
		return Statef("assessment already in stage %s", a.Status)
	}

	details, err := s.store.ListDetails(ctx, assessmentID)
	if err != nil {
		return err
	}
	resolved, err := resolveFinalScores(details, entries)
	if err != nil {
		return err
	}

	finalFeedback := normalizeFeedback(feedback)
	if err := s.store.ApplyStage(ctx, StageWrite{
		AssessmentID:   assessmentID,
		ExpectedStatus: StatusDiscussion,
		NextStatus:     StatusDone,
		Field:          stageFieldFinal,
		Entries:        resolved,
		Average:        averageScore(resolved),
		Feedback:       &finalFeedback,
	}); err != nil {
		return err
	}

	s.notify.Notify(a.UserID, notifications.TypeAssessmentFinalized, map[string]string{
		"assessmentId": assessmentID,
	})
	return nil
}

// AssessmentView is what read endpoints return: the assessment plus its
// detail rows, with discussion-stage display defaulting applied.
type AssessmentView struct {
	Assessment Assessment `json:"assessment"`
	Details    []Detail   `json:"details"`
}

func (s *Service) GetAssessmentView(ctx context.Context, actor auth.Actor, assessmentID string) (AssessmentView, error) {
	a, err := s.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return AssessmentView{}, err
	}
	if err := s.requireReader(ctx, actor, a.UserID); err != nil {
		return AssessmentView{}, err
	}
	details, err := s.store.ListDetails(ctx, assessmentID)
	if err != nil {
		return AssessmentView{}, err
	}
	return AssessmentView{Assessment: a, Details: displayDetails(a.Status, details)}, nil
}

func (s *Service) ListMyAssessments(ctx context.Context, actor auth.Actor) ([]Assessment, error) {
	return s.store.ListUserAssessments(ctx, actor.UserID)
}

// ListCycleAssessments scopes the roster to the caller: org-wide reviewers
// see everything, leaders see their own team.
func (s *Service) ListCycleAssessments(ctx context.Context, actor auth.Actor, cycleID, status string) ([]Assessment, error) {
	if actor.Caps.ReviewOrgWide {
		return s.store.ListCycleAssessments(ctx, cycleID, status, nil)
	}
	if actor.Caps.ReviewTeam {
		members, err := s.dir.TeamMemberIDs(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, nil
		}
		return s.store.ListCycleAssessments(ctx, cycleID, status, members)
	}
	return nil, Permissionf("not authorized to list cycle assessments")
}

// requireOpenCycle rejects stage transitions once the owning cycle is
// completed. A completed cycle is frozen for reporting.
func (s *Service) requireOpenCycle(ctx context.Context, cycleID string) error {
	cycle, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if cycle.Status == CycleStatusCompleted {
		return Statef("cycle %s is completed, its assessments are frozen", cycleID)
	}
	return nil
}

func (s *Service) requireReviewer(ctx context.Context, actor auth.Actor, subjectUserID string) error {
	if actor.Caps.ReviewOrgWide {
		return nil
	}
	if actor.Caps.ReviewTeam {
		leaderID, err := s.dir.LeaderUserID(ctx, subjectUserID)
		if err != nil {
			return err
		}
		if leaderID == actor.UserID {
			return nil
		}
	}
	return Permissionf("caller is not the subject's leader")
}

func (s *Service) requireReader(ctx context.Context, actor auth.Actor, subjectUserID string) error {
	if actor.UserID == subjectUserID {
		return nil
	}
	return s.requireReviewer(ctx, actor, subjectUserID)
}

// displayDetails fills unset final scores with the leader score while the
// assessment sits in discussion. Display only, nothing is persisted until
// finalize.
func displayDetails(status string, details []Detail) []Detail {
	if status != StatusDiscussion {
		return details
	}
	out := make([]Detail, len(details))
	copy(out, details)
	for i := range out {
		if out[i].FinalScore == nil && out[i].LeaderScore != nil {
			value := *out[i].LeaderScore
			out[i].FinalScore = &value
		}
	}
	return out
}
