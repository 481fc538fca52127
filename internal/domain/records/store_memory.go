package records

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps records in process. It backs tests and the
// STORE_BACKEND=memory development mode.
type MemoryStore struct {
	mu             sync.RWMutex
	employees      map[int64]Employee
	contracts      map[int64]Contract
	nextEmployeeID int64
	nextContractID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: map[int64]Employee{},
		contracts: map[int64]Contract{},
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		if latest, ok := s.latestContractLocked(emp.ID); ok {
			emp.ContractType = latest.ContractType
			emp.ContractEnd = copyString(latest.ContractEnd)
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (s *MemoryStore) CreateEmployee(ctx context.Context, payload EmployeePayload) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(payload.Email, 0) {
		return nil, ErrDuplicateEmail
	}
	s.nextEmployeeID++
	emp := Employee{
		ID:           s.nextEmployeeID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		MobileNumber: copyString(payload.MobileNumber),
		Address:      copyString(payload.Address),
	}
	s.employees[emp.ID] = emp
	return &emp, nil
}

func (s *MemoryStore) UpdateEmployee(ctx context.Context, employeeID int64, payload EmployeePayload) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	if s.emailTakenLocked(payload.Email, employeeID) {
		return nil, ErrDuplicateEmail
	}
	emp.FirstName = payload.FirstName
	emp.LastName = payload.LastName
	emp.Email = payload.Email
	emp.MobileNumber = copyString(payload.MobileNumber)
	emp.Address = copyString(payload.Address)
	s.employees[employeeID] = emp
	return &emp, nil
}

func (s *MemoryStore) DeleteEmployee(ctx context.Context, employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return ErrNotFound
	}
	delete(s.employees, employeeID)
	for id, contract := range s.contracts {
		if contract.EmployeeID == employeeID {
			delete(s.contracts, id)
		}
	}
	return nil
}

func (s *MemoryStore) ListContracts(ctx context.Context, employeeID int64) ([]Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.employees[employeeID]; !ok {
		return nil, ErrNotFound
	}
	out := make([]Contract, 0)
	for _, contract := range s.contracts {
		if contract.EmployeeID == employeeID {
			out = append(out, contract)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetContract(ctx context.Context, employeeID, contractID int64) (*Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contract, ok := s.contracts[contractID]
	if !ok || contract.EmployeeID != employeeID {
		return nil, ErrNotFound
	}
	return &contract, nil
}

func (s *MemoryStore) CreateContract(ctx context.Context, employeeID int64, payload ContractPayload) (*Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return nil, ErrNotFound
	}
	s.nextContractID++
	contract := payload.Contract(employeeID)
	contract.ID = s.nextContractID
	contract.ContractEnd = copyString(payload.ContractEnd)
	s.contracts[contract.ID] = contract
	return &contract, nil
}

func (s *MemoryStore) DeleteContract(ctx context.Context, employeeID, contractID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[contractID]
	if !ok || contract.EmployeeID != employeeID {
		return ErrNotFound
	}
	delete(s.contracts, contractID)
	return nil
}

func (s *MemoryStore) latestContractLocked(employeeID int64) (Contract, bool) {
	var latest Contract
	found := false
	for _, contract := range s.contracts {
		if contract.EmployeeID != employeeID {
			continue
		}
		if !found || contract.ContractStart > latest.ContractStart ||
			(contract.ContractStart == latest.ContractStart && contract.ID > latest.ID) {
			latest = contract
			found = true
		}
	}
	return latest, found
}

func (s *MemoryStore) emailTakenLocked(email string, exceptID int64) bool {
	for id, emp := range s.employees {
		if id != exceptID && strings.EqualFold(emp.Email, email) {
			return true
		}
	}
	return false
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
