// Package desk is the terminal front end of the records editor. Every
// command drives the view components; nothing talks to the store directly.
package desk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/docopt/docopt-go"

	"emprecords/internal/domain/records"
	"emprecords/internal/export"
	"emprecords/internal/platform/config"
	"emprecords/internal/recordclient"
	"emprecords/internal/views"
)

const Version = "0.1.0"

const usage = `Employee records desk.

Usage:
    empdesk employees list [--api=<url>]
    empdesk employees show <id> [--api=<url>]
    empdesk employees create --first=<name> --last=<name> --email=<email>
        [--mobile=<mobile>] [--address=<address>] [--api=<url>]
    empdesk employees update <id> [--first=<name>] [--last=<name>] [--email=<email>]
        [--mobile=<mobile>] [--address=<address>] [--api=<url>]
    empdesk employees delete <id> [--yes] [--api=<url>]
    empdesk contracts list <employee_id> [--api=<url>]
    empdesk contracts show <employee_id> <contract_id> [--api=<url>]
    empdesk contracts add <employee_id> --start=<date> [--end=<date>]
        [--type=<type>] [--time=<time>] [--hours=<hours>] [--salary=<salary>] [--api=<url>]
    empdesk contracts delete <employee_id> <contract_id> [--yes] [--api=<url>]
    empdesk export <employee_id> [--out=<dir>] [--api=<url>]
    empdesk -h | --help
    empdesk --version

Options:
    -h --help            Show this screen.
    --version            Show version.
    --api=<url>          Record store base URL, overrides RECORDS_API_URL.
    --type=<type>        permanent or contract [default: permanent].
    --time=<time>        full-time or part-time [default: full-time].
    --hours=<hours>      Hours per week, 1 to 80.
    --salary=<salary>    Yearly salary.
    --out=<dir>          Output directory for the PDF [default: .].
    --yes                Skip the confirmation prompt.`

type desk struct {
	api     views.RecordAPI
	confirm views.Confirmer
	out     io.Writer
	logger  *slog.Logger
}

// Run executes one command and returns the process exit code.
func Run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	helped := false
	parser := &docopt.Parser{
		HelpHandler: func(err error, text string) {
			helped = true
			if err != nil {
				fmt.Fprintln(stderr, text)
				return
			}
			fmt.Fprintln(stdout, text)
		},
	}
	opts, err := parser.ParseArgs(usage, args, Version)
	if err != nil {
		return 2
	}
	if helped {
		return 0
	}

	if api, ok := optString(opts, "--api"); ok {
		cfg.APIBaseURL = api
	}
	if err := cfg.ValidateClient(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	d := &desk{
		api:     recordclient.New(cfg.APIBaseURL, recordclient.WithTimeout(cfg.RequestTimeout), recordclient.WithLogger(logger)),
		confirm: promptConfirmer(stdin, stdout),
		out:     stdout,
		logger:  logger,
	}
	if yes, _ := opts.Bool("--yes"); yes {
		d.confirm = views.AlwaysConfirm
	}

	if err := d.dispatch(ctx, opts); err != nil {
		logger.Debug("command failed", "err", err)
		fmt.Fprintln(stderr, errorText(err))
		return 1
	}
	return 0
}

func (d *desk) dispatch(ctx context.Context, opts docopt.Opts) error {
	employees, _ := opts.Bool("employees")
	contracts, _ := opts.Bool("contracts")
	exporting, _ := opts.Bool("export")
	command := func(name string) bool {
		v, _ := opts.Bool(name)
		return v
	}

	switch {
	case employees && command("list"):
		return d.listEmployees(ctx)
	case employees && command("show"):
		return withID(opts, "<id>", func(id int64) error { return d.showEmployee(ctx, id) })
	case employees && command("create"):
		return d.saveEmployee(ctx, 0, opts)
	case employees && command("update"):
		return withID(opts, "<id>", func(id int64) error { return d.saveEmployee(ctx, id, opts) })
	case employees && command("delete"):
		return withID(opts, "<id>", func(id int64) error { return d.deleteEmployee(ctx, id) })
	case contracts && command("list"):
		return withID(opts, "<employee_id>", func(id int64) error { return d.listContracts(ctx, id) })
	case contracts && command("show"):
		return withIDs(opts, func(employeeID, contractID int64) error { return d.showContract(ctx, employeeID, contractID) })
	case contracts && command("add"):
		return withID(opts, "<employee_id>", func(id int64) error { return d.addContract(ctx, id, opts) })
	case contracts && command("delete"):
		return withIDs(opts, func(employeeID, contractID int64) error { return d.deleteContract(ctx, employeeID, contractID) })
	case exporting:
		dir, _ := optString(opts, "--out")
		return withID(opts, "<employee_id>", func(id int64) error { return d.exportEmployee(ctx, id, dir) })
	}
	return errors.New("unknown command")
}

func (d *desk) listEmployees(ctx context.Context) error {
	roster := views.NewEmployeeRoster(d.api, d.confirm)
	defer roster.Close()
	if err := roster.Load(ctx); err != nil {
		return err
	}
	rows := roster.View().Rows
	if len(rows) == 0 {
		fmt.Fprintln(d.out, "No employees yet.")
		return nil
	}
	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCONTRACT")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.ID, row.Name, row.Email, row.Contract)
	}
	return tw.Flush()
}

func (d *desk) showEmployee(ctx context.Context, id int64) error {
	editor, err := d.openEditor(ctx, id)
	if err != nil {
		return err
	}
	defer editor.Close()

	d.printDetails(views.EmployeeDetails(editor.View().Employee))
	roster, err := editor.Contracts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out)
	return d.printContractRows(roster.View())
}

func (d *desk) saveEmployee(ctx context.Context, id int64, opts docopt.Opts) error {
	var editor *views.EmployeeEditor
	if id == 0 {
		editor = views.NewEmployeeEditor(d.api, d.confirm, 0, nil)
	} else {
		var err error
		if editor, err = d.openEditor(ctx, id); err != nil {
			return err
		}
	}
	defer editor.Close()

	err := editor.Update(func(e *records.Employee) {
		if v, ok := optString(opts, "--first"); ok {
			e.FirstName = v
		}
		if v, ok := optString(opts, "--last"); ok {
			e.LastName = v
		}
		if v, ok := optString(opts, "--email"); ok {
			e.Email = v
		}
		if v, ok := optString(opts, "--mobile"); ok {
			e.MobileNumber = records.StringPtr(v)
		}
		if v, ok := optString(opts, "--address"); ok {
			e.Address = records.StringPtr(v)
		}
	})
	if err != nil {
		return err
	}

	saved, err := editor.Save(ctx)
	if err != nil {
		return viewFailure(editor.View().Message, err)
	}
	verb := "Updated"
	if id == 0 {
		verb = "Created"
	}
	fmt.Fprintf(d.out, "%s employee %d.\n", verb, saved.ID)
	return nil
}

func (d *desk) deleteEmployee(ctx context.Context, id int64) error {
	editor, err := d.openEditor(ctx, id)
	if err != nil {
		return err
	}
	defer editor.Close()

	if err := editor.Delete(ctx); err != nil {
		return viewFailure(editor.View().Alert, err)
	}
	fmt.Fprintf(d.out, "Deleted employee %d.\n", id)
	return nil
}

func (d *desk) listContracts(ctx context.Context, employeeID int64) error {
	roster := views.NewContractRoster(d.api, d.confirm, employeeID)
	defer roster.Close()
	if err := roster.Load(ctx); err != nil {
		return err
	}
	return d.printContractRows(roster.View())
}

func (d *desk) showContract(ctx context.Context, employeeID, contractID int64) error {
	panel := views.NewContractPanel(d.api, d.confirm, employeeID, contractID, nil)
	defer panel.Close()
	if err := panel.Load(ctx); err != nil {
		return err
	}
	d.printDetails(views.ContractDetails(panel.View().Contract))
	return nil
}

func (d *desk) addContract(ctx context.Context, employeeID int64, opts docopt.Opts) error {
	editor, err := d.openEditor(ctx, employeeID)
	if err != nil {
		return err
	}
	defer editor.Close()
	roster, err := editor.Contracts(ctx)
	if err != nil {
		return err
	}
	form, err := roster.OpenAddForm()
	if err != nil {
		return err
	}

	var parseErr error
	err = form.Update(func(c *records.Contract) {
		c.ContractStart, _ = optString(opts, "--start")
		if v, ok := optString(opts, "--end"); ok {
			c.ContractEnd = records.StringPtr(v)
		}
		if v, ok := optString(opts, "--type"); ok {
			c.ContractType = v
		}
		if v, ok := optString(opts, "--time"); ok {
			c.ContractTime = v
		}
		if v, ok := optString(opts, "--hours"); ok {
			hours, err := strconv.Atoi(v)
			if err != nil {
				parseErr = errors.New("--hours must be a whole number")
				return
			}
			c.HoursPerWeek = &hours
		}
		if v, ok := optString(opts, "--salary"); ok {
			salary, err := strconv.ParseFloat(v, 64)
			if err != nil {
				parseErr = errors.New("--salary must be a number")
				return
			}
			c.Salary = &salary
		}
	})
	if err != nil {
		return err
	}
	if parseErr != nil {
		return parseErr
	}

	created, err := form.Submit(ctx)
	if err != nil {
		return viewFailure(form.Message(), err)
	}
	fmt.Fprintf(d.out, "Added contract %d; employee %d now has %d contract(s).\n", created.ID, employeeID, roster.Count())
	return nil
}

func (d *desk) deleteContract(ctx context.Context, employeeID, contractID int64) error {
	roster := views.NewContractRoster(d.api, d.confirm, employeeID)
	defer roster.Close()
	if err := roster.Load(ctx); err != nil {
		return err
	}
	panel, err := roster.Open(ctx, contractID)
	if err != nil {
		return err
	}
	if err := panel.Delete(ctx); err != nil {
		return viewFailure(panel.View().Alert, err)
	}
	fmt.Fprintf(d.out, "Deleted contract %d; %d contract(s) left.\n", contractID, roster.Count())
	return nil
}

func (d *desk) exportEmployee(ctx context.Context, employeeID int64, dir string) error {
	editor, err := d.openEditor(ctx, employeeID)
	if err != nil {
		return err
	}
	defer editor.Close()
	roster, err := editor.Contracts(ctx)
	if err != nil {
		return err
	}
	path, err := export.WriteEmployeeSheet(dir, editor.View().Employee, roster.Contracts())
	if err != nil {
		return err
	}
	d.logger.Debug("employee sheet exported", "employeeId", employeeID, "path", path)
	fmt.Fprintln(d.out, path)
	return nil
}

func (d *desk) openEditor(ctx context.Context, id int64) (*views.EmployeeEditor, error) {
	editor := views.NewEmployeeEditor(d.api, d.confirm, id, nil)
	if err := editor.Load(ctx); err != nil {
		editor.Close()
		return nil, err
	}
	return editor, nil
}

func (d *desk) printDetails(details []views.Detail) {
	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	for _, detail := range details {
		fmt.Fprintf(tw, "%s:\t%s\n", detail.Label, detail.Value)
	}
	_ = tw.Flush()
}

func (d *desk) printContractRows(view views.ContractRosterView) error {
	if view.Empty {
		fmt.Fprintln(d.out, views.NoContractsMessage)
		return nil
	}
	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tTYPE\tTIME")
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.ID, row.Start, row.Type, row.Time)
	}
	return tw.Flush()
}

func promptConfirmer(in io.Reader, out io.Writer) views.Confirmer {
	reader := bufio.NewReader(in)
	return views.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func optString(opts docopt.Opts, key string) (string, bool) {
	v, err := opts.String(key)
	if err != nil {
		return "", false
	}
	return v, true
}

func parseID(opts docopt.Opts, key string) (int64, error) {
	raw, _ := optString(opts, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", strings.Trim(key, "<>"))
	}
	return id, nil
}

func withID(opts docopt.Opts, key string, fn func(int64) error) error {
	id, err := parseID(opts, key)
	if err != nil {
		return err
	}
	return fn(id)
}

func withIDs(opts docopt.Opts, fn func(employeeID, contractID int64) error) error {
	employeeID, err := parseID(opts, "<employee_id>")
	if err != nil {
		return err
	}
	contractID, err := parseID(opts, "<contract_id>")
	if err != nil {
		return err
	}
	return fn(employeeID, contractID)
}

// surfacedError reports the text a component surfaced for a failure while
// keeping the underlying error reachable.
type surfacedError struct {
	text string
	err  error
}

func (e *surfacedError) Error() string { return e.text }
func (e *surfacedError) Unwrap() error { return e.err }

func viewFailure(surfaced string, err error) error {
	if surfaced == "" {
		return err
	}
	return &surfacedError{text: surfaced, err: err}
}

func errorText(err error) string {
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, views.ErrNotConfirmed):
		return "Cancelled."
	}
	return err.Error()
}
