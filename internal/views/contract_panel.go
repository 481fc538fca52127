package views

import (
	"context"
	"sync"

	"emprecords/internal/domain/records"
)

type PanelState int

const (
	PanelLoading PanelState = iota
	PanelDetail
	PanelError
	PanelNotFound
)

func (s PanelState) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelDetail:
		return "detail"
	case PanelError:
		return "error"
	case PanelNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

type PanelView struct {
	State    PanelState
	Contract records.Contract
	Err      error
	Alert    string
	FormOpen bool
}

// ContractPanel shows a single contract. Contracts are immutable: the panel
// can delete the contract or open the add-contract form, nothing else.
type ContractPanel struct {
	mu         sync.Mutex
	api        RecordAPI
	confirm    Confirmer
	listener   Listener
	employeeID int64
	contractID int64

	state    PanelState
	contract records.Contract
	err      error
	alert    string
	form     *ContractForm
	deleting bool
	guard    requestGuard
}

func NewContractPanel(api RecordAPI, confirm Confirmer, employeeID, contractID int64, listener Listener) *ContractPanel {
	return &ContractPanel{
		api:        api,
		confirm:    confirmerOrDefault(confirm),
		listener:   listener,
		employeeID: employeeID,
		contractID: contractID,
		state:      PanelLoading,
	}
}

func (p *ContractPanel) ContractID() int64 {
	return p.contractID
}

// Load fetches the contract. Failures move the panel to a terminal error or
// not-found state.
func (p *ContractPanel) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.guard.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	reqCtx, seq := p.guard.start(ctx)
	p.state = PanelLoading
	p.err = nil
	p.mu.Unlock()

	contract, err := p.api.GetContract(reqCtx, p.employeeID, p.contractID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.guard.settle(seq) {
		return ErrStale
	}
	switch {
	case isNotFound(err):
		p.state, p.err = PanelNotFound, err
	case err != nil:
		p.state, p.err = PanelError, err
	default:
		p.state, p.contract = PanelDetail, contract
	}
	return err
}

func (p *ContractPanel) View() PanelView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PanelView{
		State:    p.state,
		Contract: p.contract,
		Err:      p.err,
		Alert:    p.alert,
		FormOpen: p.form != nil,
	}
}

// Delete removes the contract after confirmation. A declined confirmation
// issues no request. A failed request leaves the panel in detail with an
// alert.
func (p *ContractPanel) Delete(ctx context.Context) error {
	p.mu.Lock()
	if p.guard.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.state != PanelDetail || p.deleting {
		p.mu.Unlock()
		return ErrInvalidState
	}
	p.mu.Unlock()

	if !p.confirm.Confirm(ctx, PromptDeleteContract) {
		return ErrNotConfirmed
	}

	p.mu.Lock()
	if p.guard.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.deleting = true
	p.mu.Unlock()

	err := p.api.DeleteContract(ctx, p.employeeID, p.contractID)

	p.mu.Lock()
	p.deleting = false
	if p.guard.closed {
		p.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		p.alert = failureMessage("Failed to delete contract", err)
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	p.listener.emit(ctx, ContractDeleted{EmployeeID: p.employeeID, ContractID: p.contractID})
	return nil
}

func (p *ContractPanel) DismissAlert() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = ""
}

// OpenAddForm overlays the add-contract form on the detail view. Opening it
// twice returns the same form.
func (p *ContractPanel) OpenAddForm() (*ContractForm, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.guard.closed {
		return nil, ErrClosed
	}
	if p.state != PanelDetail {
		return nil, ErrInvalidState
	}
	if p.form == nil {
		p.form = NewContractForm(p.api, p.employeeID, p.forward)
	}
	return p.form, nil
}

func (p *ContractPanel) Form() *ContractForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

func (p *ContractPanel) CancelAddForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.form != nil {
		p.form.Cancel()
		p.form = nil
	}
}

// Back returns to the owner's list.
func (p *ContractPanel) Back(ctx context.Context) {
	p.listener.emit(ctx, PanelClosed{EmployeeID: p.employeeID, ContractID: p.contractID})
}

// Close discards the panel. Late results of in-flight requests are dropped.
func (p *ContractPanel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.guard.close()
	if p.form != nil {
		p.form.Cancel()
		p.form = nil
	}
}

// forward closes the form and passes its event to the panel's owner.
func (p *ContractPanel) forward(ctx context.Context, ev Event) {
	p.mu.Lock()
	p.form = nil
	closed := p.guard.closed
	p.mu.Unlock()
	if !closed {
		p.listener.emit(ctx, ev)
	}
}
