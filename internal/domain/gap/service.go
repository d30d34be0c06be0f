package gap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"talenthub/internal/domain/assessment"
	"talenthub/internal/domain/auth"
)

// DirectoryAPI resolves team ownership for report scoping.
type DirectoryAPI interface {
	TeamLeaderID(ctx context.Context, teamID string) (string, error)
	LedTeamID(ctx context.Context, leaderUserID string) (string, error)
	LeaderUserID(ctx context.Context, userID string) (string, error)
}

type Service struct {
	Store     *Store
	dir       DirectoryAPI
	ExportDir string
}

func NewService(store *Store, dir DirectoryAPI, exportDir string) *Service {
	return &Service{Store: store, dir: dir, ExportDir: exportDir}
}

// authorizeScope narrows or rejects the requested scope. Org-wide reviewers
// see anything; leaders see their own team and its members only; everyone
// else sees themselves. A leader's unscoped request is narrowed to the team
// they lead.
func (s *Service) authorizeScope(ctx context.Context, actor auth.Actor, scope Scope) (Scope, error) {
	if actor.Caps.ReviewOrgWide {
		return scope, nil
	}
	if actor.Caps.ReviewTeam {
		if scope.TeamID != "" {
			leaderID, err := s.dir.TeamLeaderID(ctx, scope.TeamID)
			if err != nil {
				return Scope{}, err
			}
			if leaderID != actor.UserID {
				return Scope{}, assessment.Permissionf("caller is not the leader of the requested team")
			}
			return scope, nil
		}
		if scope.UserID != "" && scope.UserID != actor.UserID {
			leaderID, err := s.dir.LeaderUserID(ctx, scope.UserID)
			if err != nil {
				return Scope{}, err
			}
			if leaderID != actor.UserID {
				return Scope{}, assessment.Permissionf("requested user is not in the caller's team")
			}
			return scope, nil
		}
		if scope.UserID == actor.UserID {
			return scope, nil
		}
		teamID, err := s.dir.LedTeamID(ctx, actor.UserID)
		if err != nil {
			return Scope{}, err
		}
		if teamID == "" {
			return Scope{}, assessment.Permissionf("caller leads no team")
		}
		scope.TeamID = teamID
		return scope, nil
	}
	if scope.TeamID != "" {
		return Scope{}, assessment.Permissionf("not authorized for the requested report scope")
	}
	if scope.UserID == "" {
		scope.UserID = actor.UserID
	}
	if scope.UserID != actor.UserID {
		return Scope{}, assessment.Permissionf("not authorized for the requested report scope")
	}
	return scope, nil
}

func (s *Service) Report(ctx context.Context, actor auth.Actor, scope Scope) (Report, error) {
	scope, err := s.authorizeScope(ctx, actor, scope)
	if err != nil {
		return Report{}, err
	}
	rows, err := s.Store.DetailRows(ctx, scope)
	if err != nil {
		return Report{}, err
	}
	return Aggregate(rows), nil
}

func (s *Service) Radar(ctx context.Context, actor auth.Actor, scope Scope) ([]RadarGroup, error) {
	scope, err := s.authorizeScope(ctx, actor, scope)
	if err != nil {
		return nil, err
	}
	rows, err := s.Store.DetailRows(ctx, scope)
	if err != nil {
		return nil, err
	}
	return RadarByGroup(rows), nil
}

// ExportPDF writes the scoped gap report to a PDF file and returns its path.
func (s *Service) ExportPDF(ctx context.Context, actor auth.Actor, scope Scope, title string) (string, error) {
	report, err := s.Report(ctx, actor, scope)
	if err != nil {
		return "", err
	}

	dir := s.ExportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, fmt.Sprintf("gap-report-%d.pdf", time.Now().UnixNano()))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Competency Gap Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	if title != "" {
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employees assessed: %d", report.Summary.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average gap: %.2f", report.Summary.AvgGap))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Meets requirement: %.2f%%", report.Summary.MeetsRequirementPercent))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Needs development: %.2f%%", report.Summary.NeedsDevelopmentPercent))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Priority competencies")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for i, competency := range report.ByCompetency {
		if i >= 15 {
			break
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s  avg gap %.2f  (%d below requirement)",
			competency.CompetencyName, competency.AvgGap, competency.EmployeesBelow))
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
