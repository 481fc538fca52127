// Package export renders employee record sheets as PDF.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"emprecords/internal/domain/records"
	"emprecords/internal/views"
)

// EmployeeSheet writes a one-page summary of the employee and their
// contracts, newest first.
func EmployeeSheet(w io.Writer, employee records.Employee, contracts []records.Contract) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Employee %d", employee.ID)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("%s %s", employee.FirstName, employee.LastName)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, d := range views.EmployeeDetails(employee) {
		pdf.Cell(40, 8, tr(d.Label))
		pdf.Cell(0, 8, tr(d.Value))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Contracts")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	if len(contracts) == 0 {
		pdf.Cell(0, 8, views.NoContractsMessage)
		pdf.Ln(7)
	}
	for _, c := range records.SortedByStartDesc(contracts) {
		for _, d := range views.ContractDetails(c) {
			pdf.Cell(40, 7, tr(d.Label))
			pdf.Cell(0, 7, tr(d.Value))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render employee sheet: %w", err)
	}
	return nil
}

// WriteEmployeeSheet renders the sheet into dir and returns the file path.
func WriteEmployeeSheet(dir string, employee records.Employee, contracts []records.Contract) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, fmt.Sprintf("employee-%d.pdf", employee.ID))
	f, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	if err := EmployeeSheet(f, employee, contracts); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filePath, nil
}
