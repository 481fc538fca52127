package records

import (
	"regexp"
	"strings"
	"time"
)

const (
	MsgFirstNameRequired = "First name is required."
	MsgLastNameRequired  = "Last name is required."
	MsgEmailRequired     = "Email is required."
	MsgEmailInvalid      = "Email is invalid."

	MsgStartRequired  = "Contract start date is required."
	MsgStartInvalid   = "Start date must be a valid date (YYYY-MM-DD)."
	MsgEndRequired    = "End date is required for fixed-term contracts."
	MsgEndInvalid     = "End date must be a valid date (YYYY-MM-DD)."
	MsgEndBeforeStart = "End date must be after start date."
	MsgHoursRange     = "Hours per week must be between 1 and 80."
	MsgSalaryNegative = "Salary must not be negative."
	MsgTypeInvalid    = "Contract type must be permanent or contract."
	MsgTimeInvalid    = "Contract time must be full-time or part-time."

	MinHoursPerWeek = 1
	MaxHoursPerWeek = 80
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmployee returns the message of the first failing rule, checked in
// the order firstName, lastName, email, email pattern. Empty means valid.
func ValidateEmployee(e Employee) string {
	switch {
	case strings.TrimSpace(e.FirstName) == "":
		return MsgFirstNameRequired
	case strings.TrimSpace(e.LastName) == "":
		return MsgLastNameRequired
	case strings.TrimSpace(e.Email) == "":
		return MsgEmailRequired
	case !emailPattern.MatchString(strings.TrimSpace(e.Email)):
		return MsgEmailInvalid
	}
	return ""
}

// ValidateContract returns the message of the first failing rule. The end
// date is only looked at for fixed-term contracts.
func ValidateContract(c Contract) string {
	start := strings.TrimSpace(c.ContractStart)
	if start == "" {
		return MsgStartRequired
	}
	if !isDate(start) {
		return MsgStartInvalid
	}
	if c.ContractType == ContractTypeContract {
		end := ""
		if c.ContractEnd != nil {
			end = strings.TrimSpace(*c.ContractEnd)
		}
		if end == "" {
			return MsgEndRequired
		}
		if !isDate(end) {
			return MsgEndInvalid
		}
		// YYYY-MM-DD compares chronologically as a string.
		if end <= start {
			return MsgEndBeforeStart
		}
	}
	if c.HoursPerWeek != nil && (*c.HoursPerWeek < MinHoursPerWeek || *c.HoursPerWeek > MaxHoursPerWeek) {
		return MsgHoursRange
	}
	if c.Salary != nil && *c.Salary < 0 {
		return MsgSalaryNegative
	}
	if c.ContractType != ContractTypePermanent && c.ContractType != ContractTypeContract {
		return MsgTypeInvalid
	}
	if c.ContractTime != ContractTimeFull && c.ContractTime != ContractTimePart {
		return MsgTimeInvalid
	}
	return ""
}

// CheckEmployee wraps ValidateEmployee into an error.
func CheckEmployee(e Employee) error {
	if msg := ValidateEmployee(e); msg != "" {
		return &ValidationError{Message: msg}
	}
	return nil
}

// CheckContract wraps ValidateContract into an error.
func CheckContract(c Contract) error {
	if msg := ValidateContract(c); msg != "" {
		return &ValidationError{Message: msg}
	}
	return nil
}

func isDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// NewEmployeePayload restricts e to the writable fields. Blank optional
// strings become null.
func NewEmployeePayload(e Employee) EmployeePayload {
	return EmployeePayload{
		FirstName:    strings.TrimSpace(e.FirstName),
		LastName:     strings.TrimSpace(e.LastName),
		Email:        strings.TrimSpace(e.Email),
		MobileNumber: nullIfBlank(e.MobileNumber),
		Address:      nullIfBlank(e.Address),
	}
}

// NewContractPayload builds the create body. Permanent contracts never carry
// an end date.
func NewContractPayload(c Contract) ContractPayload {
	p := ContractPayload{
		ContractStart: strings.TrimSpace(c.ContractStart),
		ContractEnd:   nullIfBlank(c.ContractEnd),
		ContractType:  c.ContractType,
		ContractTime:  c.ContractTime,
		HoursPerWeek:  c.HoursPerWeek,
		Salary:        c.Salary,
	}
	if p.ContractType != ContractTypeContract {
		p.ContractEnd = nil
	}
	return p
}

// Employee turns a payload back into a candidate for validation.
func (p EmployeePayload) Employee() Employee {
	return Employee{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		Address:      p.Address,
	}
}

// Contract turns a payload back into a candidate for validation.
func (p ContractPayload) Contract(employeeID int64) Contract {
	return Contract{
		EmployeeID:    employeeID,
		ContractType:  p.ContractType,
		ContractTime:  p.ContractTime,
		ContractStart: p.ContractStart,
		ContractEnd:   p.ContractEnd,
		HoursPerWeek:  p.HoursPerWeek,
		Salary:        p.Salary,
	}
}

func nullIfBlank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringPtr is a helper for optional fields.
func StringPtr(value string) *string {
	return &value
}
