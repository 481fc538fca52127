package records

import "context"

// Service validates writes before they reach the store.
type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, payload EmployeePayload) (*Employee, error) {
	payload = NewEmployeePayload(payload.Employee())
	if err := CheckEmployee(payload.Employee()); err != nil {
		return nil, err
	}
	return s.store.CreateEmployee(ctx, payload)
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID int64, payload EmployeePayload) (*Employee, error) {
	payload = NewEmployeePayload(payload.Employee())
	if err := CheckEmployee(payload.Employee()); err != nil {
		return nil, err
	}
	return s.store.UpdateEmployee(ctx, employeeID, payload)
}

func (s *Service) DeleteEmployee(ctx context.Context, employeeID int64) error {
	return s.store.DeleteEmployee(ctx, employeeID)
}

func (s *Service) ListContracts(ctx context.Context, employeeID int64) ([]Contract, error) {
	return s.store.ListContracts(ctx, employeeID)
}

func (s *Service) GetContract(ctx context.Context, employeeID, contractID int64) (*Contract, error) {
	return s.store.GetContract(ctx, employeeID, contractID)
}

func (s *Service) CreateContract(ctx context.Context, employeeID int64, payload ContractPayload) (*Contract, error) {
	candidate := payload.Contract(employeeID)
	if err := CheckContract(candidate); err != nil {
		return nil, err
	}
	return s.store.CreateContract(ctx, employeeID, NewContractPayload(candidate))
}

func (s *Service) DeleteContract(ctx context.Context, employeeID, contractID int64) error {
	return s.store.DeleteContract(ctx, employeeID, contractID)
}
