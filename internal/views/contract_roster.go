package views

import (
	"context"
	"sync"

	"emprecords/internal/domain/records"
)

type RosterState int

const (
	RosterLoading RosterState = iota
	RosterList
	RosterDetail
	RosterError
)

func (s RosterState) String() string {
	switch s {
	case RosterLoading:
		return "loading"
	case RosterList:
		return "list"
	case RosterDetail:
		return "detail"
	case RosterError:
		return "error"
	default:
		return "unknown"
	}
}

type ContractRosterView struct {
	State   RosterState
	Rows    []ContractRow
	Empty   bool
	Err     error
	Version uint64
}

// ContractRoster lists the contracts of one employee and hosts the contract
// panel. Mutations reported by the panel trigger a full re-fetch.
type ContractRoster struct {
	mu         sync.Mutex
	api        RecordAPI
	confirm    Confirmer
	employeeID int64

	state     RosterState
	contracts []records.Contract
	err       error
	panel     *ContractPanel
	form      *ContractForm
	version   uint64
	guard     requestGuard
}

func NewContractRoster(api RecordAPI, confirm Confirmer, employeeID int64) *ContractRoster {
	return &ContractRoster{
		api:        api,
		confirm:    confirmerOrDefault(confirm),
		employeeID: employeeID,
		state:      RosterLoading,
	}
}

func (r *ContractRoster) EmployeeID() int64 {
	return r.employeeID
}

// Load fetches the collection and keeps it in fetch order.
func (r *ContractRoster) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.guard.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	reqCtx, seq := r.guard.start(ctx)
	r.state = RosterLoading
	r.err = nil
	r.mu.Unlock()

	contracts, err := r.api.ListContracts(reqCtx, r.employeeID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.guard.settle(seq) {
		return ErrStale
	}
	if err != nil {
		r.state, r.err = RosterError, err
		return err
	}
	r.contracts = contracts
	r.state = RosterList
	return nil
}

// Reload invalidates the collection, discards any open panel or form and
// fetches again.
func (r *ContractRoster) Reload(ctx context.Context) error {
	r.mu.Lock()
	if r.guard.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.version++
	r.discardChildren()
	r.mu.Unlock()
	return r.Load(ctx)
}

func (r *ContractRoster) View() ContractRosterView {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := ContractRosterView{State: r.state, Err: r.err, Version: r.version}
	if r.state == RosterList || r.state == RosterDetail {
		view.Rows = contractRows(r.contracts)
		view.Empty = len(view.Rows) == 0
	}
	return view
}

// Contracts returns a copy of the last fetched collection in fetch order.
func (r *ContractRoster) Contracts() []records.Contract {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]records.Contract(nil), r.contracts...)
}

// Count is the size of the last fetched collection.
func (r *ContractRoster) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contracts)
}

// Open loads the panel for contractID and switches to detail. The panel is
// returned even when its load fails; the error is also visible in its view.
func (r *ContractRoster) Open(ctx context.Context, contractID int64) (*ContractPanel, error) {
	r.mu.Lock()
	if r.guard.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	if r.state != RosterList {
		r.mu.Unlock()
		return nil, ErrInvalidState
	}
	r.discardChildren()
	panel := NewContractPanel(r.api, r.confirm, r.employeeID, contractID, r.handle)
	r.panel = panel
	r.state = RosterDetail
	r.mu.Unlock()

	return panel, panel.Load(ctx)
}

func (r *ContractRoster) Panel() *ContractPanel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.panel
}

// OpenAddForm opens the add-contract form from the list, so an employee
// without contracts can get a first one.
func (r *ContractRoster) OpenAddForm() (*ContractForm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guard.closed {
		return nil, ErrClosed
	}
	if r.state != RosterList {
		return nil, ErrInvalidState
	}
	if r.form == nil {
		r.form = NewContractForm(r.api, r.employeeID, r.handle)
	}
	return r.form, nil
}

func (r *ContractRoster) CancelAddForm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.form != nil {
		r.form.Cancel()
		r.form = nil
	}
}

func (r *ContractRoster) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard.close()
	r.discardChildren()
}

func (r *ContractRoster) handle(ctx context.Context, ev Event) {
	switch ev.(type) {
	case ContractCreated, ContractDeleted:
		_ = r.Reload(ctx)
	case PanelClosed:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.guard.closed {
			return
		}
		r.discardChildren()
		if r.state == RosterDetail {
			r.state = RosterList
		}
	}
}

// discardChildren expects r.mu to be held.
func (r *ContractRoster) discardChildren() {
	if r.panel != nil {
		r.panel.Close()
		r.panel = nil
	}
	if r.form != nil {
		r.form.Cancel()
		r.form = nil
	}
}
