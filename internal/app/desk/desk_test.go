package desk

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"emprecords/internal/domain/records"
	"emprecords/internal/platform/config"
	recordshandler "emprecords/internal/transport/http/handlers/records"
)

type harness struct {
	cfg config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	router := chi.NewRouter()
	recordshandler.NewHandler(records.NewService(records.NewMemoryStore())).RegisterRoutes(router)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return &harness{cfg: config.Config{APIBaseURL: ts.URL, RequestTimeout: 5 * time.Second}}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	code := Run(context.Background(), h.cfg, args, strings.NewReader(stdin), &stdout, &stderr, logger)
	return code, stdout.String(), stderr.String()
}

func TestEmployeeCommands(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run(t, "", "employees", "list")
	if code != 0 || !strings.Contains(out, "No employees yet.") {
		t.Fatalf("unexpected empty list: %d %q", code, out)
	}

	code, out, errOut := h.run(t, "", "employees", "create", "--first=Ada", "--last=Lovelace", "--email=ada@example.com")
	if code != 0 || !strings.Contains(out, "Created employee 1.") {
		t.Fatalf("create failed: %d %q %q", code, out, errOut)
	}

	code, _, errOut = h.run(t, "", "employees", "create", "--first=Ada", "--last= ", "--email=ada2@example.com")
	if code != 1 || strings.TrimSpace(errOut) != "Last name is required." {
		t.Fatalf("expected validation failure, got %d %q", code, errOut)
	}

	code, _, errOut = h.run(t, "", "employees", "create", "--first=Ada", "--last=King", "--email=ADA@example.com")
	if code != 1 || !strings.Contains(errOut, "Save failed (409)") {
		t.Fatalf("expected conflict, got %d %q", code, errOut)
	}

	code, out, _ = h.run(t, "", "employees", "update", "1", "--last=King")
	if code != 0 || !strings.Contains(out, "Updated employee 1.") {
		t.Fatalf("update failed: %d %q", code, out)
	}

	code, out, _ = h.run(t, "", "employees", "show", "1")
	if code != 0 || !strings.Contains(out, "King") || !strings.Contains(out, "No contracts yet.") {
		t.Fatalf("unexpected show output: %q", out)
	}

	code, _, errOut = h.run(t, "", "employees", "show", "99")
	if code != 1 || !strings.Contains(errOut, "employee 99 not found") {
		t.Fatalf("expected not found, got %d %q", code, errOut)
	}

	code, _, errOut = h.run(t, "n\n", "employees", "delete", "1")
	if code != 1 || !strings.Contains(errOut, "Cancelled.") {
		t.Fatalf("expected declined delete, got %d %q", code, errOut)
	}

	code, out, _ = h.run(t, "y\n", "employees", "delete", "1")
	if code != 0 || !strings.Contains(out, "Deleted employee 1.") {
		t.Fatalf("delete failed: %d %q", code, out)
	}
}

func TestContractCommands(t *testing.T) {
	h := newHarness(t)
	if code, _, errOut := h.run(t, "", "employees", "create", "--first=Alan", "--last=Turing", "--email=alan@example.com"); code != 0 {
		t.Fatalf("seed failed: %q", errOut)
	}

	code, _, errOut := h.run(t, "", "contracts", "add", "1", "--type=contract", "--start=2024-01-01", "--end=2023-01-01")
	if code != 1 || strings.TrimSpace(errOut) != "End date must be after start date." {
		t.Fatalf("expected date validation, got %d %q", code, errOut)
	}

	code, out, errOut := h.run(t, "", "contracts", "add", "1", "--type=contract", "--start=2023-01-01", "--end=2024-01-01", "--salary=42500")
	if code != 0 || !strings.Contains(out, "now has 1 contract(s)") {
		t.Fatalf("add failed: %d %q %q", code, out, errOut)
	}

	code, out, _ = h.run(t, "", "contracts", "add", "1", "--start=2024-02-01", "--time=part-time", "--hours=20")
	if code != 0 || !strings.Contains(out, "now has 2 contract(s)") {
		t.Fatalf("second add failed: %d %q", code, out)
	}

	code, out, _ = h.run(t, "", "contracts", "list", "1")
	if code != 0 || strings.Index(out, "2024-02-01") > strings.Index(out, "2023-01-01") {
		t.Fatalf("expected newest first: %q", out)
	}

	code, out, _ = h.run(t, "", "contracts", "show", "1", "1")
	if code != 0 || !strings.Contains(out, "£42,500") || !strings.Contains(out, "2024-01-01") {
		t.Fatalf("unexpected contract detail: %q", out)
	}

	code, out, _ = h.run(t, "", "employees", "list")
	if code != 0 || !strings.Contains(out, "Permanent") {
		t.Fatalf("expected latest contract label: %q", out)
	}

	code, out, _ = h.run(t, "", "contracts", "delete", "1", "2", "--yes")
	if code != 0 || !strings.Contains(out, "1 contract(s) left") {
		t.Fatalf("delete failed: %d %q", code, out)
	}

	dir := t.TempDir()
	code, out, _ = h.run(t, "", "export", "1", "--out="+dir)
	if code != 0 {
		t.Fatalf("export failed: %d", code)
	}
	if _, err := os.Stat(strings.TrimSpace(out)); err != nil {
		t.Fatalf("expected exported file: %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	if code, _, _ := h.run(t, "", "employees", "show", "abc"); code != 1 {
		t.Fatalf("expected invalid id failure, got %d", code)
	}
	if code, _, _ := h.run(t, "", "bogus"); code != 2 {
		t.Fatalf("expected usage error, got %d", code)
	}
	if code, out, _ := h.run(t, "", "--version"); code != 0 || strings.TrimSpace(out) != Version {
		t.Fatalf("unexpected version output %d %q", code, out)
	}
}
