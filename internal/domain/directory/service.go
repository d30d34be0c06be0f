package directory

import (
	"context"
	"strings"

	"talenthub/internal/domain/assessment"
	"talenthub/internal/domain/auth"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) GetUser(ctx context.Context, userID string) (User, error) {
	return s.Store.GetUser(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	return s.Store.ListUsers(ctx, limit, offset)
}

func (s *Service) CreateUser(ctx context.Context, email, password, firstName, lastName, role string, careerBandID, teamID *string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", assessment.Validationf("email is required")
	}
	if !auth.ValidRole(role) {
		return "", assessment.Validationf("unknown role %q", role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.Store.CreateUser(ctx, email, hash, firstName, lastName, role, careerBandID, teamID)
}

func (s *Service) UpdateUser(ctx context.Context, userID, firstName, lastName, role string, careerBandID, teamID *string, active bool) error {
	if !auth.ValidRole(role) {
		return assessment.Validationf("unknown role %q", role)
	}
	return s.Store.UpdateUser(ctx, userID, firstName, lastName, role, careerBandID, teamID, active)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	return s.Store.GetProfile(ctx, userID)
}

func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	return s.Store.ListTeams(ctx)
}

func (s *Service) CreateTeam(ctx context.Context, name string, leaderUserID *string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", assessment.Validationf("team name is required")
	}
	return s.Store.CreateTeam(ctx, name, leaderUserID)
}

func (s *Service) TeamMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	return s.Store.TeamMemberIDs(ctx, teamID)
}

func (s *Service) MemberIDsLedBy(ctx context.Context, leaderUserID string) ([]string, error) {
	return s.Store.MemberIDsLedBy(ctx, leaderUserID)
}

func (s *Service) TeamLeaderID(ctx context.Context, teamID string) (string, error) {
	return s.Store.TeamLeaderID(ctx, teamID)
}

func (s *Service) LedTeamID(ctx context.Context, leaderUserID string) (string, error) {
	return s.Store.LedTeamID(ctx, leaderUserID)
}

func (s *Service) EligibleUsers(ctx context.Context) ([]EligibleUser, error) {
	return s.Store.EligibleUsers(ctx)
}

// LeaderUserID resolves the subject's team leader, empty when the user has
// no team or the team has no leader.
func (s *Service) LeaderUserID(ctx context.Context, userID string) (string, error) {
	profile, err := s.Store.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile.LeaderUserID == nil {
		return "", nil
	}
	return *profile.LeaderUserID, nil
}
