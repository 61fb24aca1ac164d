package employee

import "strings"

// Patch enumerates every writable column as an optional field. Decoding a
// request into it (with unknown fields disallowed) replaces the source
// system's habit of building UPDATE statements out of arbitrary payload keys:
// a key that is not listed here is not a writable field, full stop. Nil means
// "leave untouched".
type Patch struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	JobTitle   *string `json:"jobTitle"`
	Department *string `json:"department"`
	Status     *string `json:"status"`

	BirthDate     *Date   `json:"birthDate"`
	NationalID    *string `json:"nationalId"`
	IdentityCard  *string `json:"identityCard"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	MaritalStatus *string `json:"maritalStatus"`
	SpouseDetails *string `json:"spouseDetails"`
	Nationality   *string `json:"nationality"`
	BirthPlace    *string `json:"birthPlace"`
	MotherName    *string `json:"motherName"`
	FatherName    *string `json:"fatherName"`
	Dependents    *int    `json:"dependents"`

	VoterID      *string `json:"voterId"`
	VoterZone    *string `json:"voterZone"`
	VoterSection *string `json:"voterSection"`

	WorkCardNumber           *string `json:"workCardNumber"`
	WorkCardSeries           *string `json:"workCardSeries"`
	SocialSecurityID         *string `json:"socialSecurityId"`
	DriverLicenseNumber      *string `json:"driverLicenseNumber"`
	DriverLicenseCategory    *string `json:"driverLicenseCategory"`
	ReservistCertificate     *string `json:"reservistCertificate"`
	ProfessionalRegistration *string `json:"professionalRegistration"`

	BankDetails *string  `json:"bankDetails"`
	Salary      *float64 `json:"salary"`

	HireDate        *Date `json:"hireDate"`
	TerminationDate *Date `json:"terminationDate"`
}

// SelfServiceSubset keeps only the fields a standard employee may change on
// their own record. Everything else is dropped silently, per the access
// policy: out-of-scope fields in a self-update are ignored, not rejected.
func (p Patch) SelfServiceSubset() Patch {
	return Patch{
		Phone:         p.Phone,
		Address:       p.Address,
		MaritalStatus: p.MaritalStatus,
		Dependents:    p.Dependents,
	}
}

func (p Patch) IsEmpty() bool {
	return p.FullName == nil &&
		p.Email == nil &&
		p.JobTitle == nil &&
		p.Department == nil &&
		p.Status == nil &&
		p.BirthDate == nil &&
		p.NationalID == nil &&
		p.IdentityCard == nil &&
		p.Phone == nil &&
		p.Address == nil &&
		p.MaritalStatus == nil &&
		p.SpouseDetails == nil &&
		p.Nationality == nil &&
		p.BirthPlace == nil &&
		p.MotherName == nil &&
		p.FatherName == nil &&
		p.Dependents == nil &&
		p.VoterID == nil &&
		p.VoterZone == nil &&
		p.VoterSection == nil &&
		p.WorkCardNumber == nil &&
		p.WorkCardSeries == nil &&
		p.SocialSecurityID == nil &&
		p.DriverLicenseNumber == nil &&
		p.DriverLicenseCategory == nil &&
		p.ReservistCertificate == nil &&
		p.ProfessionalRegistration == nil &&
		p.BankDetails == nil &&
		p.Salary == nil &&
		p.HireDate == nil &&
		p.TerminationDate == nil
}

// Validate checks field values, not field presence. Status is the only
// enumerated column.
func (p Patch) Validate() []string {
	var issues []string
	if p.Status != nil {
		status := strings.TrimSpace(*p.Status)
		if status != StatusActive && status != StatusInactive {
			issues = append(issues, "status must be active or inactive")
		}
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		issues = append(issues, "email must be a valid address")
	}
	if p.Dependents != nil && *p.Dependents < 0 {
		issues = append(issues, "dependents must not be negative")
	}
	if p.Salary != nil && *p.Salary < 0 {
		issues = append(issues, "salary must not be negative")
	}
	return issues
}
