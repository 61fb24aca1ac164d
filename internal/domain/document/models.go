package document

import "time"

// Payslip references one employee and one competency period (YYYY-MM).
// Several payslips for the same period may coexist unless the store is
// configured to reject them.
type Payslip struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Period     string    `json:"period"`
	FileURL    string    `json:"fileUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Certificate is a medical/absence certificate self-uploaded by an employee.
// All metadata is optional on upload.
type Certificate struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	IssuedOn     time.Time `json:"issuedOn"`
	DaysOff      int       `json:"daysOff"`
	Reason       string    `json:"reason"`
	FileURL      string    `json:"fileUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
