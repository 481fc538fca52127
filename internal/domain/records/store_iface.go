package records

import "context"

type StoreAPI interface {
	Ping(ctx context.Context) error
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, employeeID int64) (*Employee, error)
	CreateEmployee(ctx context.Context, payload EmployeePayload) (*Employee, error)
	UpdateEmployee(ctx context.Context, employeeID int64, payload EmployeePayload) (*Employee, error)
	DeleteEmployee(ctx context.Context, employeeID int64) error
	ListContracts(ctx context.Context, employeeID int64) ([]Contract, error)
	GetContract(ctx context.Context, employeeID, contractID int64) (*Contract, error)
	CreateContract(ctx context.Context, employeeID int64, payload ContractPayload) (*Contract, error)
	DeleteContract(ctx context.Context, employeeID, contractID int64) error
}
