package recordshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"emprecords/internal/domain/records"
	"emprecords/internal/transport/http/api"
	"emprecords/internal/transport/http/middleware"
)

type Handler struct {
	Service *records.Service
}

func NewHandler(service *records.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Patch("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", h.handleListContracts)
				r.Post("/", h.handleCreateContract)
				r.Get("/{contractID}", h.handleGetContract)
				r.Delete("/{contractID}", h.handleDeleteContract)
			})
		})
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, err, "employee_list_failed", "failed to list employees")
		return
	}
	api.Success(w, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, r, err, "employee_get_failed", "employee not found")
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload records.EmployeePayload
	if !decode(w, r, &payload) {
		return
	}
	emp, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		writeError(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}
	slog.Info("employee created", "employeeId", emp.ID, "requestId", middleware.GetRequestID(r.Context()))
	api.Created(w, emp)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload records.EmployeePayload
	if !decode(w, r, &payload) {
		return
	}
	emp, err := h.Service.UpdateEmployee(r.Context(), employeeID, payload)
	if err != nil {
		writeError(w, r, err, "employee_update_failed", "employee not found")
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), employeeID); err != nil {
		writeError(w, r, err, "employee_delete_failed", "employee not found")
		return
	}
	slog.Info("employee deleted", "employeeId", employeeID, "requestId", middleware.GetRequestID(r.Context()))
	api.NoContent(w)
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	contracts, err := h.Service.ListContracts(r.Context(), employeeID)
	if err != nil {
		writeError(w, r, err, "contract_list_failed", "employee not found")
		return
	}
	api.Success(w, contracts)
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	contractID, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}
	contract, err := h.Service.GetContract(r.Context(), employeeID, contractID)
	if err != nil {
		writeError(w, r, err, "contract_get_failed", "contract not found")
		return
	}
	api.Success(w, contract)
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	var payload records.ContractPayload
	if !decode(w, r, &payload) {
		return
	}
	contract, err := h.Service.CreateContract(r.Context(), employeeID, payload)
	if err != nil {
		writeError(w, r, err, "contract_create_failed", "employee not found")
		return
	}
	slog.Info("contract created", "employeeId", employeeID, "contractId", contract.ID, "requestId", middleware.GetRequestID(r.Context()))
	api.Created(w, contract)
}

func (h *Handler) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	contractID, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}
	if err := h.Service.DeleteContract(r.Context(), employeeID, contractID); err != nil {
		writeError(w, r, err, "contract_delete_failed", "contract not found")
		return
	}
	api.NoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// writeError maps domain errors to status codes. notFound is the message
// used for records.ErrNotFound; failCode names the 500 case.
func writeError(w http.ResponseWriter, r *http.Request, err error, failCode, notFound string) {
	requestID := middleware.GetRequestID(r.Context())
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		api.Fail(w, http.StatusBadRequest, "validation_error", verr.Message, requestID)
	case errors.Is(err, records.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", notFound, requestID)
	case errors.Is(err, records.ErrDuplicateEmail):
		api.Fail(w, http.StatusConflict, "employee_exists", "employee email already exists", requestID)
	default:
		slog.Error("record store request failed", "code", failCode, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, failCode, "internal error", requestID)
	}
}
