package competency

import (
	"context"
	"strings"

	"talenthub/internal/domain/assessment"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	return s.Store.ListGroups(ctx)
}

func (s *Service) CreateGroup(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", assessment.Validationf("group name is required")
	}
	return s.Store.CreateGroup(ctx, name)
}

func (s *Service) ListCompetencies(ctx context.Context) ([]Competency, error) {
	return s.Store.ListCompetencies(ctx)
}

func (s *Service) CreateCompetency(ctx context.Context, groupID, name, description string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", assessment.Validationf("competency name is required")
	}
	if strings.TrimSpace(groupID) == "" {
		return "", assessment.Validationf("competency group is required")
	}
	return s.Store.CreateCompetency(ctx, groupID, name, description)
}

func (s *Service) ListCareerBands(ctx context.Context) ([]CareerBand, error) {
	return s.Store.ListCareerBands(ctx)
}

func (s *Service) SetRequirement(ctx context.Context, careerBandID, competencyID string, requiredLevel int) error {
	if requiredLevel < MinLevel || requiredLevel > MaxLevel {
		return assessment.Validationf("required level must be between %d and %d", MinLevel, MaxLevel)
	}
	return s.Store.UpsertRequirement(ctx, careerBandID, competencyID, requiredLevel)
}

func (s *Service) DeleteRequirement(ctx context.Context, careerBandID, competencyID string) error {
	return s.Store.DeleteRequirement(ctx, careerBandID, competencyID)
}

func (s *Service) MatrixForBand(ctx context.Context, careerBandID string) ([]Requirement, error) {
	return s.Store.MatrixForBand(ctx, careerBandID)
}
