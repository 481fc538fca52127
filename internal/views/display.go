package views

import (
	"strings"

	"emprecords/internal/domain/records"
)

// NoContractsMessage is shown instead of rows when an employee has no
// contracts.
const NoContractsMessage = "No contracts yet."

type EmployeeRow struct {
	ID       int64
	Name     string
	Email    string
	Contract string
}

type ContractRow struct {
	ID    int64
	Start string
	Type  string
	Time  string
}

// Detail is one labelled value of a record sheet.
type Detail struct {
	Label string
	Value string
}

func employeeRow(e records.Employee) EmployeeRow {
	return EmployeeRow{
		ID:       e.ID,
		Name:     strings.TrimSpace(e.FirstName + " " + e.LastName),
		Email:    e.Email,
		Contract: records.ContractLabel(e),
	}
}

func contractRows(contracts []records.Contract) []ContractRow {
	sorted := records.SortedByStartDesc(contracts)
	rows := make([]ContractRow, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, ContractRow{
			ID:    c.ID,
			Start: records.ShortDate(c.ContractStart),
			Type:  records.OrPlaceholder(c.ContractType),
			Time:  records.OrPlaceholder(c.ContractTime),
		})
	}
	return rows
}

// ContractDetails lists the fields of the contract panel.
func ContractDetails(c records.Contract) []Detail {
	return []Detail{
		{Label: "Start", Value: records.OrPlaceholder(records.ShortDate(c.ContractStart))},
		{Label: "Type", Value: records.OrPlaceholder(c.ContractType)},
		{Label: "Time", Value: records.OrPlaceholder(c.ContractTime)},
		{Label: "End", Value: records.FormatEnd(c.ContractEnd)},
		{Label: "Hours / Week", Value: records.FormatHours(c.HoursPerWeek)},
		{Label: "Salary", Value: records.FormatSalary(c.Salary)},
	}
}

func EmployeeDetails(e records.Employee) []Detail {
	optional := func(v *string) string {
		if v == nil {
			return records.Placeholder
		}
		return records.OrPlaceholder(*v)
	}
	return []Detail{
		{Label: "First Name", Value: records.OrPlaceholder(e.FirstName)},
		{Label: "Last Name", Value: records.OrPlaceholder(e.LastName)},
		{Label: "Email", Value: records.OrPlaceholder(e.Email)},
		{Label: "Mobile", Value: optional(e.MobileNumber)},
		{Label: "Address", Value: optional(e.Address)},
	}
}
