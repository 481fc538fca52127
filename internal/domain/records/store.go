package records

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.first_name, e.last_name, e.email, e.mobile_number, e.address,
           COALESCE(c.contract_type, ''), c.contract_end
    FROM employees e
    LEFT JOIN LATERAL (
      SELECT contract_type, contract_end
      FROM contracts
      WHERE employee_id = e.id
      ORDER BY contract_start DESC, id DESC
      LIMIT 1
    ) c ON true
    ORDER BY e.id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		var emp Employee
		var end *time.Time
		if err := rows.Scan(
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.MobileNumber, &emp.Address,
			&emp.ContractType, &end,
		); err != nil {
			return nil, err
		}
		emp.ContractEnd = formatDatePtr(end)
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, mobile_number, address
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.MobileNumber, &emp.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, payload EmployeePayload) (*Employee, error) {
	emp := Employee{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		MobileNumber: payload.MobileNumber,
		Address:      payload.Address,
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, mobile_number, address)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, payload.FirstName, payload.LastName, payload.Email, payload.MobileNumber, payload.Address).Scan(&emp.ID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &emp, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID int64, payload EmployeePayload) (*Employee, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        mobile_number = $4,
        address = $5,
        updated_at = now()
    WHERE id = $6
  `, payload.FirstName, payload.LastName, payload.Email, payload.MobileNumber, payload.Address, employeeID)
	if err != nil {
		return nil, mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetEmployee(ctx, employeeID)
}

// DeleteEmployee relies on ON DELETE CASCADE to drop the contracts.
func (s *Store) DeleteEmployee(ctx context.Context, employeeID int64) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListContracts(ctx context.Context, employeeID int64) ([]Contract, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, contract_type, contract_time, contract_start, contract_end, hours_per_week, salary
    FROM contracts
    WHERE employee_id = $1
    ORDER BY id
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *contract)
	}
	return out, rows.Err()
}

func (s *Store) GetContract(ctx context.Context, employeeID, contractID int64) (*Contract, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, contract_type, contract_time, contract_start, contract_end, hours_per_week, salary
    FROM contracts
    WHERE employee_id = $1 AND id = $2
  `, employeeID, contractID)
	contract, err := scanContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return contract, err
}

func (s *Store) CreateContract(ctx context.Context, employeeID int64, payload ContractPayload) (*Contract, error) {
	start, err := time.Parse(DateLayout, payload.ContractStart)
	if err != nil {
		return nil, &ValidationError{Message: MsgStartInvalid}
	}
	var end *time.Time
	if payload.ContractEnd != nil {
		parsed, err := time.Parse(DateLayout, *payload.ContractEnd)
		if err != nil {
			return nil, &ValidationError{Message: MsgEndInvalid}
		}
		end = &parsed
	}

	var id int64
	err = s.DB.QueryRow(ctx, `
    INSERT INTO contracts (employee_id, contract_type, contract_time, contract_start, contract_end, hours_per_week, salary)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, employeeID, payload.ContractType, payload.ContractTime, start, end, payload.HoursPerWeek, payload.Salary).Scan(&id)
	if err != nil {
		return nil, mapPgError(err)
	}
	return s.GetContract(ctx, employeeID, id)
}

func (s *Store) DeleteContract(ctx context.Context, employeeID, contractID int64) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM contracts WHERE employee_id = $1 AND id = $2`, employeeID, contractID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanContract(row pgx.Row) (*Contract, error) {
	var contract Contract
	var start time.Time
	var end *time.Time
	if err := row.Scan(
		&contract.ID, &contract.EmployeeID, &contract.ContractType, &contract.ContractTime,
		&start, &end, &contract.HoursPerWeek, &contract.Salary,
	); err != nil {
		return nil, err
	}
	contract.ContractStart = start.Format(DateLayout)
	contract.ContractEnd = formatDatePtr(end)
	return &contract, nil
}

func formatDatePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(DateLayout)
	return &formatted
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateEmail
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
