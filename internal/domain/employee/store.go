package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "rhportal/internal/platform/crypto"
)

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

const employeeColumns = `
    id, full_name, email, job_title, COALESCE(department, ''), status,
    birth_date, COALESCE(national_id, ''), COALESCE(identity_card, ''),
    COALESCE(phone, ''), COALESCE(address, ''), COALESCE(marital_status, ''),
    COALESCE(spouse_details, ''), COALESCE(nationality, ''), COALESCE(birth_place, ''),
    COALESCE(mother_name, ''), COALESCE(father_name, ''), dependents,
    COALESCE(voter_id, ''), COALESCE(voter_zone, ''), COALESCE(voter_section, ''),
    COALESCE(work_card_number, ''), COALESCE(work_card_series, ''),
    COALESCE(social_security_id, ''), COALESCE(driver_license_number, ''),
    COALESCE(driver_license_category, ''), COALESCE(reservist_certificate, ''),
    COALESCE(professional_registration, ''),
    COALESCE(bank_details, ''), bank_details_enc, salary,
    hire_date, termination_date, COALESCE(photo_url, ''), created_at, updated_at`

func (s *Store) scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	var birthDate, hireDate, terminationDate *time.Time
	var bankPlain string
	var bankEnc []byte
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.JobTitle, &emp.Department, &emp.Status,
		&birthDate, &emp.NationalID, &emp.IdentityCard,
		&emp.Phone, &emp.Address, &emp.MaritalStatus,
		&emp.SpouseDetails, &emp.Nationality, &emp.BirthPlace,
		&emp.MotherName, &emp.FatherName, &emp.Dependents,
		&emp.VoterID, &emp.VoterZone, &emp.VoterSection,
		&emp.WorkCardNumber, &emp.WorkCardSeries,
		&emp.SocialSecurityID, &emp.DriverLicenseNumber,
		&emp.DriverLicenseCategory, &emp.ReservistCertificate,
		&emp.ProfessionalRegistration,
		&bankPlain, &bankEnc, &emp.Salary,
		&hireDate, &terminationDate, &emp.PhotoURL, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	emp.BirthDate = dateFromTime(birthDate)
	emp.HireDate = dateFromTime(hireDate)
	emp.TerminationDate = dateFromTime(terminationDate)
	emp.BankDetails = s.decryptFallback(bankEnc, bankPlain)
	return &emp, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = $1", id)
	return s.scanEmployee(row)
}

// Search matches case-insensitively on a full-name substring. Queries shorter
// than two characters return nothing: an empty search box must never dump the
// whole directory.
func (s *Store) Search(ctx context.Context, query string) ([]Summary, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 2 {
		return []Summary{}, nil
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name, email, job_title, COALESCE(department, ''), status
    FROM employees
    WHERE full_name ILIKE '%' || $1 || '%'
    ORDER BY full_name
  `, trimmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.FullName, &sum.Email, &sum.JobTitle, &sum.Department, &sum.Status); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, emp Employee, passwordHash string) (int64, error) {
	bankPlain, bankEnc := s.encryptBankDetails(emp.BankDetails)

	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      full_name, email, password_hash, job_title, department, status,
      birth_date, national_id, identity_card, phone, address, marital_status,
      spouse_details, nationality, birth_place, mother_name, father_name, dependents,
      voter_id, voter_zone, voter_section, work_card_number, work_card_series,
      social_security_id, driver_license_number, driver_license_category,
      reservist_certificate, professional_registration,
      bank_details, bank_details_enc, salary, hire_date, termination_date
    ) VALUES (
      $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
      $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33
    )
    RETURNING id
  `,
		emp.FullName, emp.Email, passwordHash, emp.JobTitle, nullIfEmpty(emp.Department), emp.Status,
		dateArg(emp.BirthDate), nullIfEmpty(emp.NationalID), nullIfEmpty(emp.IdentityCard),
		nullIfEmpty(emp.Phone), nullIfEmpty(emp.Address), nullIfEmpty(emp.MaritalStatus),
		nullIfEmpty(emp.SpouseDetails), nullIfEmpty(emp.Nationality), nullIfEmpty(emp.BirthPlace),
		nullIfEmpty(emp.MotherName), nullIfEmpty(emp.FatherName), emp.Dependents,
		nullIfEmpty(emp.VoterID), nullIfEmpty(emp.VoterZone), nullIfEmpty(emp.VoterSection),
		nullIfEmpty(emp.WorkCardNumber), nullIfEmpty(emp.WorkCardSeries),
		nullIfEmpty(emp.SocialSecurityID), nullIfEmpty(emp.DriverLicenseNumber),
		nullIfEmpty(emp.DriverLicenseCategory), nullIfEmpty(emp.ReservistCertificate),
		nullIfEmpty(emp.ProfessionalRegistration),
		bankPlain, bankEnc, emp.Salary, dateArg(emp.HireDate), dateArg(emp.TerminationDate),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// Update applies only the patch fields that are present. Each writable column
// is listed here by name; there is no path from request keys to SQL.
func (s *Store) Update(ctx context.Context, id int64, patch Patch) error {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	addText := func(column string, value *string) {
		if value != nil {
			add(column, nullIfEmpty(*value))
		}
	}

	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.JobTitle != nil {
		add("job_title", *patch.JobTitle)
	}
	addText("department", patch.Department)
	if patch.Status != nil {
		add("status", strings.TrimSpace(*patch.Status))
	}
	if patch.BirthDate != nil {
		add("birth_date", dateArg(patch.BirthDate))
	}
	addText("national_id", patch.NationalID)
	addText("identity_card", patch.IdentityCard)
	addText("phone", patch.Phone)
	addText("address", patch.Address)
	addText("marital_status", patch.MaritalStatus)
	addText("spouse_details", patch.SpouseDetails)
	addText("nationality", patch.Nationality)
	addText("birth_place", patch.BirthPlace)
	addText("mother_name", patch.MotherName)
	addText("father_name", patch.FatherName)
	if patch.Dependents != nil {
		add("dependents", *patch.Dependents)
	}
	addText("voter_id", patch.VoterID)
	addText("voter_zone", patch.VoterZone)
	addText("voter_section", patch.VoterSection)
	addText("work_card_number", patch.WorkCardNumber)
	addText("work_card_series", patch.WorkCardSeries)
	addText("social_security_id", patch.SocialSecurityID)
	addText("driver_license_number", patch.DriverLicenseNumber)
	addText("driver_license_category", patch.DriverLicenseCategory)
	addText("reservist_certificate", patch.ReservistCertificate)
	addText("professional_registration", patch.ProfessionalRegistration)
	if patch.BankDetails != nil {
		bankPlain, bankEnc := s.encryptBankDetails(*patch.BankDetails)
		add("bank_details", bankPlain)
		add("bank_details_enc", bankEnc)
	}
	if patch.Salary != nil {
		add("salary", *patch.Salary)
	}
	if patch.HireDate != nil {
		add("hire_date", dateArg(patch.HireDate))
	}
	if patch.TerminationDate != nil {
		// A blank termination date means "not terminated", stored as NULL.
		add("termination_date", dateArg(patch.TerminationDate))
	}

	if len(set) == 0 {
		return ErrEmptyPatch
	}

	add("updated_at", time.Now())
	args = append(args, id)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	cmd, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePhotoURL(ctx context.Context, id int64, url string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET photo_url = $1, updated_at = now() WHERE id = $2", url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the record and every attachment referencing it inside one
// transaction, children before parent, so a missing employee can never leave
// orphaned documents behind.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM payslips WHERE employee_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM certificates WHERE employee_id = $1", id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) encryptBankDetails(value string) (any, []byte) {
	if s.Crypto != nil && s.Crypto.Configured() {
		encrypted, err := s.Crypto.EncryptString(value)
		if err == nil {
			return nil, encrypted
		}
		slog.Warn("bank details encryption failed, storing plaintext", "err", err)
	}
	return nullIfEmpty(value), nil
}

func (s *Store) decryptFallback(encrypted []byte, plain string) string {
	if s.Crypto == nil || !s.Crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := s.Crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func dateArg(d *Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

func dateFromTime(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	return &Date{Time: *t}
}
