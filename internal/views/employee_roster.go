package views

import (
	"context"
	"sync"

	"emprecords/internal/domain/records"
)

type EmployeeRosterView struct {
	State   RosterState
	Rows    []EmployeeRow
	Err     error
	Version uint64
}

// EmployeeRoster lists employees and hosts the employee editor. Saves and
// deletes reported by the editor trigger a full re-fetch.
type EmployeeRoster struct {
	mu      sync.Mutex
	api     RecordAPI
	confirm Confirmer

	state     RosterState
	employees []records.Employee
	err       error
	editor    *EmployeeEditor
	version   uint64
	guard     requestGuard
}

func NewEmployeeRoster(api RecordAPI, confirm Confirmer) *EmployeeRoster {
	return &EmployeeRoster{
		api:     api,
		confirm: confirmerOrDefault(confirm),
		state:   RosterLoading,
	}
}

func (r *EmployeeRoster) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.guard.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	reqCtx, seq := r.guard.start(ctx)
	r.state = RosterLoading
	r.err = nil
	r.mu.Unlock()

	employees, err := r.api.ListEmployees(reqCtx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.guard.settle(seq) {
		return ErrStale
	}
	if err != nil {
		r.state, r.err = RosterError, err
		return err
	}
	r.employees = employees
	r.state = RosterList
	return nil
}

// Reload invalidates the list, discards any open editor and fetches again.
func (r *EmployeeRoster) Reload(ctx context.Context) error {
	r.mu.Lock()
	if r.guard.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.version++
	r.discardEditor()
	r.mu.Unlock()
	return r.Load(ctx)
}

func (r *EmployeeRoster) View() EmployeeRosterView {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := EmployeeRosterView{State: r.state, Err: r.err, Version: r.version}
	if r.state == RosterList || r.state == RosterDetail {
		view.Rows = make([]EmployeeRow, 0, len(r.employees))
		for _, e := range r.employees {
			view.Rows = append(view.Rows, employeeRow(e))
		}
	}
	return view
}

// Open starts an edit-mode editor for employeeID and loads it. The editor is
// returned even when its load fails.
func (r *EmployeeRoster) Open(ctx context.Context, employeeID int64) (*EmployeeEditor, error) {
	editor, err := r.attach(employeeID)
	if err != nil {
		return nil, err
	}
	return editor, editor.Load(ctx)
}

// New starts a blank editor.
func (r *EmployeeRoster) New() (*EmployeeEditor, error) {
	return r.attach(0)
}

func (r *EmployeeRoster) Editor() *EmployeeEditor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editor
}

func (r *EmployeeRoster) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard.close()
	r.discardEditor()
}

func (r *EmployeeRoster) attach(employeeID int64) (*EmployeeEditor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guard.closed {
		return nil, ErrClosed
	}
	if r.state != RosterList {
		return nil, ErrInvalidState
	}
	editor := NewEmployeeEditor(r.api, r.confirm, employeeID, r.handle)
	r.editor = editor
	r.state = RosterDetail
	return editor, nil
}

func (r *EmployeeRoster) handle(ctx context.Context, ev Event) {
	switch ev.(type) {
	case EmployeeSaved, EmployeeDeleted:
		_ = r.Reload(ctx)
	case EditorClosed:
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.guard.closed {
			return
		}
		r.discardEditor()
		if r.state == RosterDetail {
			r.state = RosterList
		}
	}
}

func (r *EmployeeRoster) discardEditor() {
	if r.editor != nil {
		r.editor.Close()
		r.editor = nil
	}
}
