package views

import (
	"context"
	"sync"

	"emprecords/internal/domain/records"
)

type EditorState int

const (
	EditorLoading EditorState = iota
	EditorEditing
	EditorSaving
	EditorError
	EditorNotFound
	EditorDone
)

func (s EditorState) String() string {
	switch s {
	case EditorLoading:
		return "loading"
	case EditorEditing:
		return "editing"
	case EditorSaving:
		return "saving"
	case EditorError:
		return "error"
	case EditorNotFound:
		return "not-found"
	case EditorDone:
		return "closed"
	default:
		return "unknown"
	}
}

type EditorMode int

const (
	ModeNew EditorMode = iota
	ModeEdit
)

func (m EditorMode) String() string {
	if m == ModeNew {
		return "new"
	}
	return "edit"
}

type EditorView struct {
	State    EditorState
	Mode     EditorMode
	Employee records.Employee
	Message  string
	Alert    string
	Err      error
}

// EmployeeEditor creates or edits one employee and hosts the contract roster
// of a persisted employee.
type EmployeeEditor struct {
	mu       sync.Mutex
	api      RecordAPI
	confirm  Confirmer
	listener Listener
	mode     EditorMode

	state    EditorState
	employee records.Employee
	message  string
	alert    string
	err      error
	deleting bool
	roster   *ContractRoster
	guard    requestGuard
}

// NewEmployeeEditor opens an editor. An employeeID of zero starts a blank
// form in new mode; otherwise the editor waits in loading until Load.
func NewEmployeeEditor(api RecordAPI, confirm Confirmer, employeeID int64, listener Listener) *EmployeeEditor {
	e := &EmployeeEditor{
		api:      api,
		confirm:  confirmerOrDefault(confirm),
		listener: listener,
		mode:     ModeEdit,
		state:    EditorLoading,
		employee: records.Employee{ID: employeeID},
	}
	if employeeID == 0 {
		e.mode = ModeNew
		e.state = EditorEditing
	}
	return e
}

// Load fetches the employee in edit mode. It is a no-op in new mode.
func (e *EmployeeEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.mode == ModeNew {
		e.mu.Unlock()
		return nil
	}
	id := e.employee.ID
	reqCtx, seq := e.guard.start(ctx)
	e.state = EditorLoading
	e.err = nil
	e.mu.Unlock()

	employee, err := e.api.GetEmployee(reqCtx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.guard.settle(seq) {
		return ErrStale
	}
	switch {
	case isNotFound(err):
		e.state, e.err = EditorNotFound, err
	case err != nil:
		e.state, e.err = EditorError, err
	default:
		e.state, e.employee = EditorEditing, employee
	}
	return err
}

func (e *EmployeeEditor) View() EditorView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EditorView{
		State:    e.state,
		Mode:     e.mode,
		Employee: e.employee,
		Message:  e.message,
		Alert:    e.alert,
		Err:      e.err,
	}
}

// Update edits the form. The identifier cannot be changed.
func (e *EmployeeEditor) Update(edit func(*records.Employee)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.guard.closed {
		return ErrClosed
	}
	if e.state != EditorEditing {
		return ErrInvalidState
	}
	id := e.employee.ID
	edit(&e.employee)
	e.employee.ID = id
	e.message = ""
	return nil
}

// Save validates the form, then creates or updates the employee. A
// validation failure issues no request. A failed request returns the editor
// to editing with the form kept and the failure in Message.
func (e *EmployeeEditor) Save(ctx context.Context) (records.Employee, error) {
	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return records.Employee{}, ErrClosed
	}
	if e.state != EditorEditing {
		e.mu.Unlock()
		return records.Employee{}, ErrInvalidState
	}
	if err := records.CheckEmployee(e.employee); err != nil {
		e.message = err.Error()
		e.mu.Unlock()
		return records.Employee{}, err
	}
	payload := records.NewEmployeePayload(e.employee)
	id, mode := e.employee.ID, e.mode
	e.state = EditorSaving
	e.message = ""
	e.mu.Unlock()

	var (
		saved records.Employee
		err   error
	)
	if mode == ModeNew {
		saved, err = e.api.CreateEmployee(ctx, payload)
	} else {
		saved, err = e.api.UpdateEmployee(ctx, id, payload)
	}

	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return saved, ErrStale
	}
	if err != nil {
		e.state = EditorEditing
		e.message = failureMessage("Save failed", err)
		e.mu.Unlock()
		return records.Employee{}, err
	}
	e.state = EditorDone
	e.employee = saved
	e.mu.Unlock()

	e.listener.emit(ctx, EmployeeSaved{Employee: saved, Created: mode == ModeNew})
	return saved, nil
}

// Delete removes a persisted employee after confirmation. A failed request
// leaves the state untouched and records an alert.
func (e *EmployeeEditor) Delete(ctx context.Context) error {
	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if !e.employee.Persisted() {
		e.mu.Unlock()
		return ErrNotPersisted
	}
	if e.state != EditorEditing || e.deleting {
		e.mu.Unlock()
		return ErrInvalidState
	}
	id := e.employee.ID
	e.mu.Unlock()

	if !e.confirm.Confirm(ctx, PromptDeleteEmployee) {
		return ErrNotConfirmed
	}

	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.deleting = true
	e.mu.Unlock()

	err := e.api.DeleteEmployee(ctx, id)

	e.mu.Lock()
	e.deleting = false
	if e.guard.closed {
		e.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		e.alert = failureMessage("Failed to delete employee", err)
		e.mu.Unlock()
		return err
	}
	e.state = EditorDone
	e.discardRoster()
	e.mu.Unlock()

	e.listener.emit(ctx, EmployeeDeleted{EmployeeID: id})
	return nil
}

func (e *EmployeeEditor) DismissAlert() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alert = ""
}

// Contracts returns the contract roster of the employee, loading it on first
// use. It is only reachable once the employee has an identifier.
func (e *EmployeeEditor) Contracts(ctx context.Context) (*ContractRoster, error) {
	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if !e.employee.Persisted() {
		e.mu.Unlock()
		return nil, ErrNotPersisted
	}
	if e.roster != nil {
		roster := e.roster
		e.mu.Unlock()
		return roster, nil
	}
	roster := NewContractRoster(e.api, e.confirm, e.employee.ID)
	e.roster = roster
	e.mu.Unlock()

	return roster, roster.Load(ctx)
}

// Cancel leaves the editor without saving.
func (e *EmployeeEditor) Cancel(ctx context.Context) {
	e.mu.Lock()
	if e.guard.closed {
		e.mu.Unlock()
		return
	}
	id := e.employee.ID
	e.state = EditorDone
	e.discardRoster()
	e.mu.Unlock()

	e.listener.emit(ctx, EditorClosed{EmployeeID: id})
}

// Close discards the editor and its roster.
func (e *EmployeeEditor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.guard.close()
	e.discardRoster()
}

func (e *EmployeeEditor) discardRoster() {
	if e.roster != nil {
		e.roster.Close()
		e.roster = nil
	}
}
