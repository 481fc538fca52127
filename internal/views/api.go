// Package views holds the headless view-state components of the employee
// records editor. Each component owns its fetched data, talks to the record
// store through RecordAPI and reports mutations upward as typed events.
package views

import (
	"context"
	"errors"
	"fmt"

	"emprecords/internal/domain/records"
	"emprecords/internal/recordclient"
)

// RecordAPI is the record store surface the components depend on.
// *recordclient.Client satisfies it.
type RecordAPI interface {
	ListEmployees(ctx context.Context) ([]records.Employee, error)
	GetEmployee(ctx context.Context, employeeID int64) (records.Employee, error)
	CreateEmployee(ctx context.Context, payload records.EmployeePayload) (records.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID int64, payload records.EmployeePayload) (records.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID int64) error
	ListContracts(ctx context.Context, employeeID int64) ([]records.Contract, error)
	GetContract(ctx context.Context, employeeID, contractID int64) (records.Contract, error)
	CreateContract(ctx context.Context, employeeID int64, payload records.ContractPayload) (records.Contract, error)
	DeleteContract(ctx context.Context, employeeID, contractID int64) error
}

var (
	ErrNotConfirmed = errors.New("action not confirmed")
	ErrStale        = errors.New("result superseded or component closed")
	ErrClosed       = errors.New("component closed")
	ErrNotPersisted = errors.New("employee has not been saved yet")
	ErrInvalidState = errors.New("operation not available in current state")
)

const (
	PromptDeleteContract = "Are you sure you want to delete this contract?"
	PromptDeleteEmployee = "Are you sure you want to delete this employee?"
)

// Confirmer gates destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

func confirmerOrDefault(c Confirmer) Confirmer {
	if c == nil {
		return AlwaysConfirm
	}
	return c
}

// failureMessage composes the text surfaced after a failed write: the
// response status and resolved server message for a store rejection,
// otherwise the error text, which already carries any status.
func failureMessage(action string, err error) string {
	var terr *recordclient.TransportError
	if errors.As(err, &terr) {
		return fmt.Sprintf("%s (%d): %s", action, terr.Status, terr.ServerMessage)
	}
	return fmt.Sprintf("%s: %v", action, err)
}

func isNotFound(err error) bool {
	var nf *recordclient.NotFoundError
	return errors.As(err, &nf)
}
