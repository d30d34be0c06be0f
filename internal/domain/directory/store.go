package directory

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

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, first_name, last_name, role, career_band_id, team_id, active, created_at
    FROM users
    WHERE id = $1
  `, userID).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CareerBandID, &u.TeamID, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, assessment.NotFoundf("user %s not found", userID)
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, first_name, last_name, role, career_band_id, team_id, active, created_at
    FROM users
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CareerBandID, &u.TeamID, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, firstName, lastName, role string, careerBandID, teamID *string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role, career_band_id, team_id, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,true)
    RETURNING id
  `, email, passwordHash, firstName, lastName, role, careerBandID, teamID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateUser(ctx context.Context, userID, firstName, lastName, role string, careerBandID, teamID *string, active bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE users
    SET first_name = $1, last_name = $2, role = $3, career_band_id = $4, team_id = $5, active = $6, updated_at = now()
    WHERE id = $7
  `, firstName, lastName, role, careerBandID, teamID, active, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return assessment.NotFoundf("user %s not found", userID)
	}
	return nil
}

// GetProfile returns the reference record consumed by the assessment engine:
// career band, team, and the team leader.
func (s *Store) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.career_band_id, u.team_id, t.leader_user_id
    FROM users u
    LEFT JOIN teams t ON u.team_id = t.id
    WHERE u.id = $1
  `, userID).Scan(&p.UserID, &p.CareerBandID, &p.TeamID, &p.LeaderUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, assessment.NotFoundf("user %s not found", userID)
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, leader_user_id, created_at
    FROM teams
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LeaderUserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *Store) CreateTeam(ctx context.Context, name string, leaderUserID *string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO teams (name, leader_user_id)
    VALUES ($1,$2)
    RETURNING id
  `, name, leaderUserID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) TeamMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM users WHERE team_id = $1 AND active = true", teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TeamLeaderID returns the leader of the given team, empty when the team
// has no leader assigned.
func (s *Store) TeamLeaderID(ctx context.Context, teamID string) (string, error) {
	var leaderUserID *string
	err := s.DB.QueryRow(ctx, "SELECT leader_user_id FROM teams WHERE id = $1", teamID).Scan(&leaderUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", assessment.NotFoundf("team %s not found", teamID)
	}
	if err != nil {
		return "", err
	}
	if leaderUserID == nil {
		return "", nil
	}
	return *leaderUserID, nil
}

// LedTeamID returns the team the given user leads, empty when they lead
// none.
func (s *Store) LedTeamID(ctx context.Context, leaderUserID string) (string, error) {
	var teamID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM teams WHERE leader_user_id = $1 LIMIT 1", leaderUserID).Scan(&teamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return teamID, err
}

// MemberIDsLedBy lists active users in teams whose leader is the given user.
func (s *Store) MemberIDsLedBy(ctx context.Context, leaderUserID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id
    FROM users u
    JOIN teams t ON u.team_id = t.id
    WHERE t.leader_user_id = $1 AND u.active = true
  `, leaderUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EligibleUsers lists active users that carry a career band, the population
// bulk cycle activation assigns from.
func (s *Store) EligibleUsers(ctx context.Context) ([]EligibleUser, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, career_band_id
    FROM users
    WHERE active = true AND career_band_id IS NOT NULL
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []EligibleUser
	for rows.Next() {
		var u EligibleUser
		if err := rows.Scan(&u.UserID, &u.CareerBandID); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type EligibleUser struct {
	UserID       string
	CareerBandID string
}
