package document

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrMissingPeriod    = errors.New("payslip requires a competency period")
	ErrInvalidPeriod    = errors.New("competency period must be YYYY-MM")
	ErrDuplicatePeriod  = errors.New("payslip for this period already exists")
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Store struct {
	DB *pgxpool.Pool

	// UniquePayslipPerPeriod turns same-employee same-period uploads into a
	// duplicate error instead of letting them accumulate.
	UniquePayslipPerPeriod bool
}

func NewStore(db *pgxpool.Pool, uniquePayslipPerPeriod bool) *Store {
	return &Store{DB: db, UniquePayslipPerPeriod: uniquePayslipPerPeriod}
}

func (s *Store) CreatePayslip(ctx context.Context, employeeID int64, period, fileURL string) (Payslip, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return Payslip{}, ErrMissingPeriod
	}
	if !periodPattern.MatchString(period) {
		return Payslip{}, ErrInvalidPeriod
	}

	// Check-then-insert: two concurrent uploads for the same period can both
	// pass the count. The rule is a validation, not a schema constraint.
	if s.UniquePayslipPerPeriod {
		var count int
		if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payslips WHERE employee_id = $1 AND period = $2", employeeID, period).Scan(&count); err != nil {
			return Payslip{}, err
		}
		if count > 0 {
			return Payslip{}, ErrDuplicatePeriod
		}
	}

	slip := Payslip{EmployeeID: employeeID, Period: period, FileURL: fileURL}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payslips (employee_id, period, file_url)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, employeeID, period, fileURL).Scan(&slip.ID, &slip.CreatedAt)
	if err != nil {
		return Payslip{}, mapForeignKey(err)
	}
	return slip, nil
}

func (s *Store) ListPayslips(ctx context.Context, employeeID int64) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, period, file_url, created_at
    FROM payslips
    WHERE employee_id = $1
    ORDER BY period DESC, created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payslip{}
	for rows.Next() {
		var slip Payslip
		if err := rows.Scan(&slip.ID, &slip.EmployeeID, &slip.Period, &slip.FileURL, &slip.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, slip)
	}
	return out, rows.Err()
}

// CreateCertificate fills defaults for absent metadata: the issue date falls
// back to now, days off to zero, reason to blank.
func (s *Store) CreateCertificate(ctx context.Context, employeeID int64, issuedOn time.Time, daysOff int, reason, fileURL string) (Certificate, error) {
	if issuedOn.IsZero() {
		issuedOn = time.Now()
	}
	if daysOff < 0 {
		daysOff = 0
	}

	cert := Certificate{EmployeeID: employeeID, IssuedOn: issuedOn, DaysOff: daysOff, Reason: reason, FileURL: fileURL}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO certificates (employee_id, issued_on, days_off, reason, file_url)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, created_at
  `, employeeID, issuedOn, daysOff, reason, fileURL).Scan(&cert.ID, &cert.CreatedAt)
	if err != nil {
		return Certificate{}, mapForeignKey(err)
	}
	return cert, nil
}

// ListCertificates returns every certificate when employeeID is zero,
// otherwise only that employee's, newest issue date first.
func (s *Store) ListCertificates(ctx context.Context, employeeID int64) ([]Certificate, error) {
	query := `
    SELECT c.id, c.employee_id, e.full_name, c.issued_on, c.days_off, c.reason, c.file_url, c.created_at
    FROM certificates c
    JOIN employees e ON c.employee_id = e.id
  `
	args := []any{}
	if employeeID > 0 {
		query += " WHERE c.employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY c.issued_on DESC, c.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certificate{}
	for rows.Next() {
		var cert Certificate
		if err := rows.Scan(&cert.ID, &cert.EmployeeID, &cert.EmployeeName, &cert.IssuedOn, &cert.DaysOff, &cert.Reason, &cert.FileURL, &cert.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

func mapForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrEmployeeNotFound
	}
	return err
}
