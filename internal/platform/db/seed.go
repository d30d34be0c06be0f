package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"talenthub/internal/domain/auth"
	"talenthub/internal/platform/config"
)

// Seed provisions the initial admin account and a starter competency model.
// Every step is an upsert so repeated startups are safe.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	if err := ensureCareerBands(ctx, pool); err != nil {
		return err
	}
	return ensureCompetencyModel(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE lower(email) = lower($1)", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, first_name, last_name, role, active)
    VALUES ($1,$2,'System','Admin',$3,true)
  `, email, hash, auth.RoleAdmin)
	return err
}

func ensureCareerBands(ctx context.Context, pool *pgxpool.Pool) error {
	bands := []struct {
		name string
		rank int
	}{
		{"Junior", 1},
		{"Intermediate", 2},
		{"Senior", 3},
		{"Principal", 4},
	}
	for _, band := range bands {
		if _, err := pool.Exec(ctx, `
      INSERT INTO career_bands (name, rank)
      VALUES ($1,$2)
      ON CONFLICT (name) DO NOTHING
    `, band.name, band.rank); err != nil {
			return err
		}
	}
	return nil
}

func ensureCompetencyModel(ctx context.Context, pool *pgxpool.Pool) error {
	model := map[string][]string{
		"Technical":     {"Problem Solving", "System Design", "Code Quality"},
		"Collaboration": {"Communication", "Teamwork"},
		"Leadership":    {"Mentoring", "Ownership"},
	}
	for groupName, competencies := range model {
		var groupID string
		if err := pool.QueryRow(ctx, `
      INSERT INTO competency_groups (name)
      VALUES ($1)
      ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
      RETURNING id
    `, groupName).Scan(&groupID); err != nil {
			return err
		}
		for _, name := range competencies {
			if _, err := pool.Exec(ctx, `
        INSERT INTO competencies (group_id, name, description)
        VALUES ($1,$2,'')
        ON CONFLICT (name) DO NOTHING
      `, groupID, name); err != nil {
				return err
			}
		}
	}
	return nil
}
