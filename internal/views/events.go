package views

import (
	"context"

	"emprecords/internal/domain/records"
)

// Event is a notification a child component sends to its owner after a
// mutation or navigation. Owners decide whether to re-fetch.
type Event interface {
	eventName() string
}

type ContractCreated struct {
	Contract records.Contract
}

type ContractDeleted struct {
	EmployeeID int64
	ContractID int64
}

type PanelClosed struct {
	EmployeeID int64
	ContractID int64
}

type EmployeeSaved struct {
	Employee records.Employee
	Created  bool
}

type EmployeeDeleted struct {
	EmployeeID int64
}

type EditorClosed struct {
	EmployeeID int64
}

func (ContractCreated) eventName() string { return "contract.created" }
func (ContractDeleted) eventName() string { return "contract.deleted" }
func (PanelClosed) eventName() string     { return "panel.closed" }
func (EmployeeSaved) eventName() string   { return "employee.saved" }
func (EmployeeDeleted) eventName() string { return "employee.deleted" }
func (EditorClosed) eventName() string    { return "editor.closed" }

// EventName returns the stable name of ev, used in logs.
func EventName(ev Event) string {
	if ev == nil {
		return ""
	}
	return ev.eventName()
}

// Listener receives events. It is always called without the emitting
// component's lock held.
type Listener func(ctx context.Context, ev Event)

func (l Listener) emit(ctx context.Context, ev Event) {
	if l != nil {
		l(ctx, ev)
	}
}
