package views

import (
	"context"
	"sync"

	"emprecords/internal/domain/records"
)

// ContractForm is the add-contract form. It validates locally before any
// request and emits ContractCreated once the store accepts the contract.
type ContractForm struct {
	mu         sync.Mutex
	api        RecordAPI
	listener   Listener
	employeeID int64
	draft      records.Contract
	message    string
	submitting bool
	done       bool
}

func NewContractForm(api RecordAPI, employeeID int64, listener Listener) *ContractForm {
	return &ContractForm{
		api:        api,
		listener:   listener,
		employeeID: employeeID,
		draft:      records.NewDraftContract(employeeID),
	}
}

func (f *ContractForm) Draft() records.Contract {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Update edits the draft in place. Editing clears the inline message.
func (f *ContractForm) Update(edit func(*records.Contract)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return ErrClosed
	}
	if f.submitting {
		return ErrInvalidState
	}
	edit(&f.draft)
	f.draft.EmployeeID = f.employeeID
	f.message = ""
	return nil
}

// Message is the inline validation or failure text, empty when none.
func (f *ContractForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *ContractForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *ContractForm) Submit(ctx context.Context) (records.Contract, error) {
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()
		return records.Contract{}, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return records.Contract{}, ErrInvalidState
	}
	draft := f.draft
	if err := records.CheckContract(draft); err != nil {
		f.message = err.Error()
		f.mu.Unlock()
		return records.Contract{}, err
	}
	f.submitting = true
	f.message = ""
	f.mu.Unlock()

	created, err := f.api.CreateContract(ctx, f.employeeID, records.NewContractPayload(draft))

	f.mu.Lock()
	f.submitting = false
	if f.done {
		f.mu.Unlock()
		return created, ErrStale
	}
	if err != nil {
		f.message = failureMessage("Failed to create contract", err)
		f.mu.Unlock()
		return records.Contract{}, err
	}
	f.done = true
	f.mu.Unlock()

	f.listener.emit(ctx, ContractCreated{Contract: created})
	return created, nil
}

// Cancel discards the form without a request.
func (f *ContractForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = true
}
