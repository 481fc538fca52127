package views

import (
	"context"
	"sync"
	"sync/atomic"

	"emprecords/internal/domain/records"
	"emprecords/internal/recordclient"
)

// fakeAPI is an in-memory RecordAPI that counts calls per operation.
type fakeAPI struct {
	mu        sync.Mutex
	nextID    int64
	employees []records.Employee
	contracts []records.Contract
	calls     map[string]int
	fail      map[string]error

	listEmployees func(ctx context.Context) ([]records.Employee, error)
	block         func(ctx context.Context, op string)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, calls: map[string]int{}, fail: map[string]error{}}
}

func (f *fakeAPI) record(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	err := f.fail[op]
	block := f.block
	f.mu.Unlock()
	if block != nil {
		block(ctx, op)
	}
	return err
}

// holdCall makes the first call of op wait until release is closed or its
// context ends. started is closed once that call is waiting.
func (f *fakeAPI) holdCall(op string) (started, release chan struct{}) {
	started, release = make(chan struct{}), make(chan struct{})
	var taken atomic.Bool
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = func(ctx context.Context, name string) {
		if name != op || !taken.CompareAndSwap(false, true) {
			return
		}
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
	}
	return started, release
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAPI) addEmployee(e records.Employee) records.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	f.employees = append(f.employees, e)
	return e
}

func (f *fakeAPI) addContract(c records.Contract) records.Contract {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.contracts = append(f.contracts, c)
	return c
}

func (f *fakeAPI) ListEmployees(ctx context.Context) ([]records.Employee, error) {
	if err := f.record(ctx, "ListEmployees"); err != nil {
		return nil, err
	}
	if f.listEmployees != nil {
		return f.listEmployees(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]records.Employee(nil), f.employees...), nil
}

func (f *fakeAPI) GetEmployee(ctx context.Context, employeeID int64) (records.Employee, error) {
	if err := f.record(ctx, "GetEmployee"); err != nil {
		return records.Employee{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ID == employeeID {
			return e, nil
		}
	}
	return records.Employee{}, &recordclient.NotFoundError{Resource: "employee", ID: employeeID}
}

func (f *fakeAPI) CreateEmployee(ctx context.Context, payload records.EmployeePayload) (records.Employee, error) {
	if err := f.record(ctx, "CreateEmployee"); err != nil {
		return records.Employee{}, err
	}
	return f.addEmployee(payload.Employee()), nil
}

func (f *fakeAPI) UpdateEmployee(ctx context.Context, employeeID int64, payload records.EmployeePayload) (records.Employee, error) {
	if err := f.record(ctx, "UpdateEmployee"); err != nil {
		return records.Employee{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.employees {
		if e.ID == employeeID {
			updated := payload.Employee()
			updated.ID = employeeID
			f.employees[i] = updated
			return updated, nil
		}
	}
	return records.Employee{}, &recordclient.TransportError{Status: 404, ServerMessage: "employee not found"}
}

func (f *fakeAPI) DeleteEmployee(ctx context.Context, employeeID int64) error {
	if err := f.record(ctx, "DeleteEmployee"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.employees[:0]
	for _, e := range f.employees {
		if e.ID != employeeID {
			kept = append(kept, e)
		}
	}
	f.employees = kept
	return nil
}

func (f *fakeAPI) ListContracts(ctx context.Context, employeeID int64) ([]records.Contract, error) {
	if err := f.record(ctx, "ListContracts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []records.Contract
	for _, c := range f.contracts {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetContract(ctx context.Context, employeeID, contractID int64) (records.Contract, error) {
	if err := f.record(ctx, "GetContract"); err != nil {
		return records.Contract{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.contracts {
		if c.EmployeeID == employeeID && c.ID == contractID {
			return c, nil
		}
	}
	return records.Contract{}, &recordclient.NotFoundError{Resource: "contract", ID: contractID}
}

func (f *fakeAPI) CreateContract(ctx context.Context, employeeID int64, payload records.ContractPayload) (records.Contract, error) {
	if err := f.record(ctx, "CreateContract"); err != nil {
		return records.Contract{}, err
	}
	return f.addContract(payload.Contract(employeeID)), nil
}

func (f *fakeAPI) DeleteContract(ctx context.Context, employeeID, contractID int64) error {
	if err := f.record(ctx, "DeleteContract"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.contracts[:0]
	for _, c := range f.contracts {
		if c.ID != contractID {
			kept = append(kept, c)
		}
	}
	f.contracts = kept
	return nil
}

var declineAll = ConfirmFunc(func(context.Context, string) bool { return false })

// eventLog collects emitted events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) listen(ctx context.Context, ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, EventName(ev))
	}
	return out
}
