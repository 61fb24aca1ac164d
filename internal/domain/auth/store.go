package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// credentialRow is the minimum read needed to verify a login attempt. The
// password hash never leaves this package.
type credentialRow struct {
	ID           int64
	FullName     string
	Email        string
	JobTitle     string
	Department   string
	PasswordHash string
}

func (s *Store) findActiveByEmail(ctx context.Context, email string) (credentialRow, error) {
	var row credentialRow
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, email, job_title, COALESCE(department, ''), password_hash
    FROM employees
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&row.ID, &row.FullName, &row.Email, &row.JobTitle, &row.Department, &row.PasswordHash)
	return row, err
}
