package records

import "testing"

func validEmployee() Employee {
	return Employee{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestValidateEmployeeReportsFirstFailure(t *testing.T) {
	cases := []struct {
		name string
		emp  Employee
		want string
	}{
		{"all missing", Employee{}, MsgFirstNameRequired},
		{"last and email missing", Employee{FirstName: "Ada"}, MsgLastNameRequired},
		{"email missing", Employee{FirstName: "Ada", LastName: "Lovelace"}, MsgEmailRequired},
		{"blank first name with bad email", Employee{FirstName: "  ", LastName: "L", Email: "nope"}, MsgFirstNameRequired},
		{"last name missing with bad email", Employee{FirstName: "Ada", Email: "nope"}, MsgLastNameRequired},
		{"valid", validEmployee(), ""},
	}
	for _, tc := range cases {
		if got := ValidateEmployee(tc.emp); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestValidateEmployeeEmailPattern(t *testing.T) {
	for _, email := range []string{"plain", "no-at.example.com", "a@nodot", "a@b.", "@b.c", "a b@c.d"} {
		emp := validEmployee()
		emp.Email = email
		if got := ValidateEmployee(emp); got != MsgEmailInvalid {
			t.Fatalf("expected %q to be rejected, got %q", email, got)
		}
	}
	for _, email := range []string{"x@y.z", "first.last@corp.example.co.uk", "a+tag@b.io"} {
		emp := validEmployee()
		emp.Email = email
		if got := ValidateEmployee(emp); got != "" {
			t.Fatalf("expected %q to be accepted, got %q", email, got)
		}
	}
}

func TestValidateContractFixedTermEndDate(t *testing.T) {
	c := Contract{ContractType: ContractTypeContract, ContractTime: ContractTimeFull, ContractStart: "2024-01-01"}
	if got := ValidateContract(c); got != MsgEndRequired {
		t.Fatalf("expected missing end to be rejected, got %q", got)
	}

	c.ContractEnd = StringPtr("2023-01-01")
	if got := ValidateContract(c); got != MsgEndBeforeStart {
		t.Fatalf("expected %q, got %q", MsgEndBeforeStart, got)
	}

	c.ContractEnd = StringPtr("2024-01-01")
	if got := ValidateContract(c); got != MsgEndBeforeStart {
		t.Fatalf("expected equal dates to be rejected, got %q", got)
	}

	c.ContractEnd = StringPtr("2024-01-02")
	if got := ValidateContract(c); got != "" {
		t.Fatalf("expected later end to be accepted, got %q", got)
	}
}

func TestValidateContractPermanentIgnoresEnd(t *testing.T) {
	c := Contract{
		ContractType:  ContractTypePermanent,
		ContractTime:  ContractTimePart,
		ContractStart: "2024-05-01",
		ContractEnd:   StringPtr("2020-01-01"),
	}
	if got := ValidateContract(c); got != "" {
		t.Fatalf("expected permanent contract to ignore end date, got %q", got)
	}
	if payload := NewContractPayload(c); payload.ContractEnd != nil {
		t.Fatalf("expected end date to be cleared, got %q", *payload.ContractEnd)
	}
}

func TestValidateContractStartRequired(t *testing.T) {
	c := NewDraftContract(1)
	if got := ValidateContract(c); got != MsgStartRequired {
		t.Fatalf("expected %q, got %q", MsgStartRequired, got)
	}
	c.ContractStart = "01/02/2024"
	if got := ValidateContract(c); got != MsgStartInvalid {
		t.Fatalf("expected %q, got %q", MsgStartInvalid, got)
	}
}

func TestValidateContractHoursBoundaries(t *testing.T) {
	c := NewDraftContract(1)
	c.ContractStart = "2024-01-01"
	for _, hours := range []int{0, -1, 81, 200} {
		c.HoursPerWeek = intPtr(hours)
		if got := ValidateContract(c); got != MsgHoursRange {
			t.Fatalf("expected %d hours to be rejected, got %q", hours, got)
		}
	}
	for _, hours := range []int{1, 37, 80} {
		c.HoursPerWeek = intPtr(hours)
		if got := ValidateContract(c); got != "" {
			t.Fatalf("expected %d hours to be accepted, got %q", hours, got)
		}
	}
}

func TestValidateContractSalaryAndEnums(t *testing.T) {
	c := NewDraftContract(1)
	c.ContractStart = "2024-01-01"
	c.Salary = floatPtr(-1)
	if got := ValidateContract(c); got != MsgSalaryNegative {
		t.Fatalf("expected %q, got %q", MsgSalaryNegative, got)
	}
	c.Salary = floatPtr(0)
	c.ContractType = "freelance"
	if got := ValidateContract(c); got != MsgTypeInvalid {
		t.Fatalf("expected %q, got %q", MsgTypeInvalid, got)
	}
	c.ContractType = ContractTypePermanent
	c.ContractTime = "full_time"
	if got := ValidateContract(c); got != MsgTimeInvalid {
		t.Fatalf("expected %q, got %q", MsgTimeInvalid, got)
	}
}

func TestNewEmployeePayloadNormalisesOptionalFields(t *testing.T) {
	emp := validEmployee()
	emp.ID = 7
	emp.MobileNumber = StringPtr("   ")
	emp.Address = StringPtr(" 1 Main St ")
	emp.ContractType = ContractTypePermanent

	payload := NewEmployeePayload(emp)
	if payload.MobileNumber != nil {
		t.Fatal("expected blank mobile number to become null")
	}
	if payload.Address == nil || *payload.Address != "1 Main St" {
		t.Fatalf("unexpected address: %v", payload.Address)
	}
}

func TestCheckEmployeeReturnsValidationError(t *testing.T) {
	err := CheckEmployee(Employee{FirstName: "Ada"})
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected validation error, got %T", err)
	}
	if verr.Message != MsgLastNameRequired {
		t.Fatalf("unexpected message %q", verr.Message)
	}
}
