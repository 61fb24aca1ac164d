package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rhportal/internal/domain/auth"
	"rhportal/internal/platform/config"
)

// Seed ensures a bootstrap administrator exists so a fresh deployment can log
// in. The seeded job title must be one the classifier treats as privileged,
// otherwise the portal would start with no admin at all.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, classifier *auth.Classifier) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	if !classifier.IsPrivileged(cfg.SeedAdminTitle) {
		return fmt.Errorf("SEED_ADMIN_TITLE %q is not in the privileged title list", cfg.SeedAdminTitle)
	}

	var existing int64
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", email).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (full_name, email, password_hash, job_title, status)
    VALUES ($1, $2, $3, $4, 'active')
  `, cfg.SeedAdminName, email, hash, cfg.SeedAdminTitle)
	return err
}
