package reports

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

type Birthday struct {
	FullName  string     `json:"fullName"`
	BirthDate *time.Time `json:"birthDate"`
}

type Dashboard struct {
	ActiveEmployees int        `json:"activeEmployees"`
	Birthdays       []Birthday `json:"birthdays"`
}

func (s *Store) ActiveEmployeeCount(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE status = 'active'").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MonthBirthdays lists active employees whose birthday falls in the current
// month, ordered by day of month.
func (s *Store) MonthBirthdays(ctx context.Context) ([]Birthday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT full_name, birth_date
    FROM employees
    WHERE status = 'active'
      AND birth_date IS NOT NULL
      AND EXTRACT(MONTH FROM birth_date) = EXTRACT(MONTH FROM CURRENT_DATE)
    ORDER BY EXTRACT(DAY FROM birth_date), full_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Birthday{}
	for rows.Next() {
		var item Birthday
		if err := rows.Scan(&item.FullName, &item.BirthDate); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) BuildDashboard(ctx context.Context) (Dashboard, error) {
	active, err := s.ActiveEmployeeCount(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	birthdays, err := s.MonthBirthdays(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{ActiveEmployees: active, Birthdays: birthdays}, nil
}
