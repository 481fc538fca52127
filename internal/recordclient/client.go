package recordclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"emprecords/internal/domain/records"
	"emprecords/internal/requestctx"
)

const maxResponseBytes = 4 << 20

// Client is a thin façade over the record store API. Every call is a single
// request: no retries and no caching.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) ListEmployees(ctx context.Context) ([]records.Employee, error) {
	var out []records.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, employeeID int64) (records.Employee, error) {
	var out *records.Employee
	err := c.do(ctx, http.MethodGet, employeePath(employeeID), nil, &out)
	if err = notFound(err, "employee", employeeID, out == nil); err != nil {
		return records.Employee{}, err
	}
	return *out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, payload records.EmployeePayload) (records.Employee, error) {
	var out records.Employee
	err := c.do(ctx, http.MethodPost, "/employees", payload, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, employeeID int64, payload records.EmployeePayload) (records.Employee, error) {
	var out records.Employee
	err := c.do(ctx, http.MethodPatch, employeePath(employeeID), payload, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID int64) error {
	return c.do(ctx, http.MethodDelete, employeePath(employeeID), nil, nil)
}

func (c *Client) ListContracts(ctx context.Context, employeeID int64) ([]records.Contract, error) {
	var out []records.Contract
	if err := c.do(ctx, http.MethodGet, contractsPath(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetContract(ctx context.Context, employeeID, contractID int64) (records.Contract, error) {
	var out *records.Contract
	err := c.do(ctx, http.MethodGet, contractPath(employeeID, contractID), nil, &out)
	if err = notFound(err, "contract", contractID, out == nil); err != nil {
		return records.Contract{}, err
	}
	return *out, nil
}

func (c *Client) CreateContract(ctx context.Context, employeeID int64, payload records.ContractPayload) (records.Contract, error) {
	var out records.Contract
	err := c.do(ctx, http.MethodPost, contractsPath(employeeID), payload, &out)
	return out, err
}

func (c *Client) DeleteContract(ctx context.Context, employeeID, contractID int64) error {
	return c.do(ctx, http.MethodDelete, contractPath(employeeID, contractID), nil, nil)
}

func employeePath(employeeID int64) string {
	return fmt.Sprintf("/employees/%d", employeeID)
}

func contractsPath(employeeID int64) string {
	return fmt.Sprintf("/employees/%d/contracts", employeeID)
}

func contractPath(employeeID, contractID int64) string {
	return fmt.Sprintf("/employees/%d/contracts/%d", employeeID, contractID)
}

// notFound turns a 404 or an empty (null) single-record body into a
// NotFoundError.
func notFound(err error, resource string, id int64, empty bool) error {
	var terr *TransportError
	if errors.As(err, &terr) && terr.Status == http.StatusNotFound {
		return &NotFoundError{Resource: resource, ID: id, Err: err}
	}
	if err != nil {
		return err
	}
	if empty {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := requestctx.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestctx.Header, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("record store unreachable", "method", method, "path", path, "requestId", requestID, "err", err)
		return &NetworkError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &NetworkError{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	c.logger.Debug("record store request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
		"requestId", requestID,
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeFailure(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &NetworkError{Status: resp.StatusCode, Message: fmt.Sprintf("empty response body from %s %s", method, path)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Status: resp.StatusCode, Message: fmt.Sprintf("undecodable response from %s %s: %v", method, path, err), Err: err}
	}
	return nil
}

func decodeFailure(status int, raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	var body any
	if len(trimmed) == 0 || json.Unmarshal(trimmed, &body) != nil {
		text := string(trimmed)
		if text == "" {
			text = http.StatusText(status)
		}
		return &NetworkError{Status: status, Message: fmt.Sprintf("request failed with status %d: %s", status, text)}
	}
	return &TransportError{Status: status, ServerMessage: ResolveMessage(body)}
}
