package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	RoleName     string
	Active       bool
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, active
    FROM users
    WHERE lower(email) = lower($1)
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleName, &user.Active)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, active
    FROM users
    WHERE id = $1
  `, userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.RoleName, &user.Active)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, hash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2", hash, userID)
	return err
}

func (s *Store) TouchSeen(ctx context.Context, userID string, at time.Time) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_seen_at = $1 WHERE id = $2", at, userID)
	return err
}
