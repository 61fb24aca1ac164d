package employee

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Date is a calendar date carried over JSON as YYYY-MM-DD (RFC3339 is also
// accepted on input). The zero value marshals as null; an empty input string
// decodes to the zero value, so blank date fields become NULL instead of
// ambiguous empty strings.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Employee is the canonical personnel record. Password is write-only: it is
// accepted on create, stored as a bcrypt hash, and never scanned back out.
type Employee struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
	Status     string `json:"status"`

	BirthDate     *Date  `json:"birthDate"`
	NationalID    string `json:"nationalId"`
	IdentityCard  string `json:"identityCard"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	MaritalStatus string `json:"maritalStatus"`
	SpouseDetails string `json:"spouseDetails"`
	Nationality   string `json:"nationality"`
	BirthPlace    string `json:"birthPlace"`
	MotherName    string `json:"motherName"`
	FatherName    string `json:"fatherName"`
	Dependents    int    `json:"dependents"`

	VoterID      string `json:"voterId"`
	VoterZone    string `json:"voterZone"`
	VoterSection string `json:"voterSection"`

	WorkCardNumber           string `json:"workCardNumber"`
	WorkCardSeries           string `json:"workCardSeries"`
	SocialSecurityID         string `json:"socialSecurityId"`
	DriverLicenseNumber      string `json:"driverLicenseNumber"`
	DriverLicenseCategory    string `json:"driverLicenseCategory"`
	ReservistCertificate     string `json:"reservistCertificate"`
	ProfessionalRegistration string `json:"professionalRegistration"`

	BankDetails string   `json:"bankDetails"`
	Salary      *float64 `json:"salary"`

	HireDate        *Date `json:"hireDate"`
	TerminationDate *Date `json:"terminationDate"`

	PhotoURL  string    `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the directory-listing projection. It deliberately excludes the
// personal/legal fields so a search never leaks more than the roster.
type Summary struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
	Status     string `json:"status"`
}
