package records

const (
	ContractTypePermanent = "permanent"
	ContractTypeContract  = "contract"

	ContractTimeFull = "full-time"
	ContractTimePart = "part-time"

	// DateLayout is the wire format of contract dates.
	DateLayout = "2006-01-02"
)

type Employee struct {
	ID           int64   `json:"id,omitempty"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	MobileNumber *string `json:"mobileNumber"`
	Address      *string `json:"address"`

	// Summary of the latest contract, filled in by list responses only.
	ContractType string  `json:"contractType,omitempty"`
	ContractEnd  *string `json:"contractEnd,omitempty"`
}

// Persisted reports whether the store has assigned an identifier.
func (e Employee) Persisted() bool {
	return e.ID != 0
}

type Contract struct {
	ID            int64    `json:"id,omitempty"`
	EmployeeID    int64    `json:"employeeId,omitempty"`
	ContractType  string   `json:"contractType"`
	ContractTime  string   `json:"contractTime"`
	ContractStart string   `json:"contractStart"`
	ContractEnd   *string  `json:"contractEnd"`
	HoursPerWeek  *int     `json:"hoursPerWeek"`
	Salary        *float64 `json:"salary"`
}

// EmployeePayload is the body of POST/PATCH /employees.
type EmployeePayload struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	MobileNumber *string `json:"mobileNumber"`
	Address      *string `json:"address"`
}

// ContractPayload is the body of POST /employees/{id}/contracts.
type ContractPayload struct {
	ContractStart string   `json:"contractStart"`
	ContractEnd   *string  `json:"contractEnd"`
	ContractType  string   `json:"contractType"`
	ContractTime  string   `json:"contractTime"`
	HoursPerWeek  *int     `json:"hoursPerWeek"`
	Salary        *float64 `json:"salary"`
}

// NewDraftContract returns the defaults of the add-contract form.
func NewDraftContract(employeeID int64) Contract {
	return Contract{
		EmployeeID:   employeeID,
		ContractType: ContractTypePermanent,
		ContractTime: ContractTimeFull,
	}
}
