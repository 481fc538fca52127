package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"emprecords/internal/domain/records"
)

func awaitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("request did not return")
		return nil
	}
}

func TestEditorCloseDuringSaveDropsResult(t *testing.T) {
	api := newFakeAPI()
	var log eventLog
	editor := NewEmployeeEditor(api, nil, 0, log.listen)
	_ = editor.Update(fillEmployee)
	started, release := api.holdCall("CreateEmployee")

	done := make(chan error, 1)
	go func() {
		_, err := editor.Save(context.Background())
		done <- err
	}()
	<-started
	editor.Close()
	close(release)

	if err := awaitErr(t, done); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if names := log.names(); len(names) != 0 {
		t.Fatalf("expected no events, got %v", names)
	}
	if state := editor.View().State; state != EditorSaving {
		t.Fatalf("expected state left at saving, got %s", state)
	}
}

func TestEditorCloseDuringDeleteDropsResult(t *testing.T) {
	api := newFakeAPI()
	emp, _ := seedEmployees(api)
	var log eventLog
	editor := NewEmployeeEditor(api, nil, emp.ID, log.listen)
	if err := editor.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	started, release := api.holdCall("DeleteEmployee")

	done := make(chan error, 1)
	go func() { done <- editor.Delete(context.Background()) }()
	<-started
	editor.Close()
	close(release)

	if err := awaitErr(t, done); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if names := log.names(); len(names) != 0 {
		t.Fatalf("expected no events, got %v", names)
	}
	if view := editor.View(); view.State != EditorEditing || view.Alert != "" {
		t.Fatalf("expected untouched editor, got %+v", view)
	}
}

func TestPanelCloseDuringDeleteDropsResult(t *testing.T) {
	api := newFakeAPI()
	contract := seedContracts(api, 3, "2024-01-01")[0]
	var log eventLog
	panel := NewContractPanel(api, nil, 3, contract.ID, log.listen)
	if err := panel.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	started, release := api.holdCall("DeleteContract")

	done := make(chan error, 1)
	go func() { done <- panel.Delete(context.Background()) }()
	<-started
	panel.Close()
	close(release)

	if err := awaitErr(t, done); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if names := log.names(); len(names) != 0 {
		t.Fatalf("expected no events, got %v", names)
	}
	if view := panel.View(); view.State != PanelDetail || view.Alert != "" {
		t.Fatalf("expected untouched panel, got %+v", view)
	}
}

func TestPanelCloseDuringSubmitDropsCreatedContract(t *testing.T) {
	api := newFakeAPI()
	contract := seedContracts(api, 3, "2024-01-01")[0]
	var log eventLog
	panel := NewContractPanel(api, nil, 3, contract.ID, log.listen)
	if err := panel.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	form, err := panel.OpenAddForm()
	if err != nil {
		t.Fatalf("open form failed: %v", err)
	}
	_ = form.Update(func(c *records.Contract) { c.ContractStart = "2025-01-01" })
	started, release := api.holdCall("CreateContract")

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-started
	panel.Close()
	close(release)

	if err := awaitErr(t, done); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if names := log.names(); len(names) != 0 {
		t.Fatalf("expected no events, got %v", names)
	}
	if err := form.Update(func(*records.Contract) {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected form closed with panel, got %v", err)
	}
	if form.Submitting() {
		t.Fatal("expected submitting cleared")
	}
}

func TestContractRosterStaleLoadIsDropped(t *testing.T) {
	api := newFakeAPI()
	seedContracts(api, 5, "2024-01-01")
	roster := NewContractRoster(api, nil, 5)
	started, _ := api.holdCall("ListContracts")

	firstErr := make(chan error, 1)
	go func() { firstErr <- roster.Load(context.Background()) }()
	<-started
	seedContracts(api, 5, "2025-01-01")
	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if err := awaitErr(t, firstErr); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if view := roster.View(); view.State != RosterList || len(view.Rows) != 2 {
		t.Fatalf("expected latest result applied, got %+v", view)
	}
}

func TestPanelCloseDuringLoadDropsResult(t *testing.T) {
	api := newFakeAPI()
	contract := seedContracts(api, 3, "2024-01-01")[0]
	panel := NewContractPanel(api, nil, 3, contract.ID, nil)
	started, _ := api.holdCall("GetContract")

	done := make(chan error, 1)
	go func() { done <- panel.Load(context.Background()) }()
	<-started
	panel.Close()

	if err := awaitErr(t, done); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if view := panel.View(); view.State != PanelLoading || view.Err != nil {
		t.Fatalf("expected untouched state, got %+v", view)
	}
	if err := panel.Load(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestEditorStaleLoadIsDropped(t *testing.T) {
	api := newFakeAPI()
	emp, _ := seedEmployees(api)
	editor := NewEmployeeEditor(api, nil, emp.ID, nil)
	started, _ := api.holdCall("GetEmployee")

	firstErr := make(chan error, 1)
	go func() { firstErr <- editor.Load(context.Background()) }()
	<-started
	renamed := emp
	renamed.FirstName = "Amazing Grace"
	if _, err := api.UpdateEmployee(context.Background(), emp.ID, records.NewEmployeePayload(renamed)); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := editor.Load(context.Background()); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if err := awaitErr(t, firstErr); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if view := editor.View(); view.State != EditorEditing || view.Employee.FirstName != "Amazing Grace" {
		t.Fatalf("expected latest result applied, got %+v", view)
	}
}
