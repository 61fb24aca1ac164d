package employee

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RecordPDF renders a printable record sheet for HR filing. Sensitive fields
// are included; the caller is responsible for restricting access to admins.
func RecordPDF(emp *Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Record")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(55, 7, label)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, value)
		pdf.Ln(7)
	}

	line("Name", emp.FullName)
	line("Email", emp.Email)
	line("Job title", emp.JobTitle)
	line("Department", emp.Department)
	line("Status", emp.Status)
	line("Birth date", formatDate(emp.BirthDate))
	line("National ID", emp.NationalID)
	line("Identity card", emp.IdentityCard)
	line("Phone", emp.Phone)
	line("Address", emp.Address)
	line("Marital status", emp.MaritalStatus)
	line("Dependents", fmt.Sprintf("%d", emp.Dependents))
	line("Work card", joinNonEmpty(emp.WorkCardNumber, emp.WorkCardSeries))
	line("Social security", emp.SocialSecurityID)
	line("Hire date", formatDate(emp.HireDate))
	line("Termination date", formatDate(emp.TerminationDate))
	if emp.Salary != nil {
		line("Salary", fmt.Sprintf("%.2f", *emp.Salary))
	} else {
		line("Salary", "")
	}
	line("Bank details", emp.BankDetails)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(d *Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func joinNonEmpty(number, series string) string {
	switch {
	case number == "":
		return series
	case series == "":
		return number
	default:
		return number + " / " + series
	}
}
