package db

import (
	"context"
	"log/slog"

	"emprecords/internal/domain/records"
)

type seedEmployee struct {
	employee  records.EmployeePayload
	contracts []records.ContractPayload
}

var demoEmployees = []seedEmployee{
	{
		employee: records.EmployeePayload{FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@example.com", MobileNumber: records.StringPtr("+44 7700 900001")},
		contracts: []records.ContractPayload{
			{ContractType: records.ContractTypePermanent, ContractTime: records.ContractTimeFull, ContractStart: "2019-04-01", HoursPerWeek: intPtr(38)},
		},
	},
	{
		employee: records.EmployeePayload{FirstName: "Alan", LastName: "Turing", Email: "alan.turing@example.com", Address: records.StringPtr("Bletchley Park")},
		contracts: []records.ContractPayload{
			{ContractType: records.ContractTypeContract, ContractTime: records.ContractTimePart, ContractStart: "2023-01-01", ContractEnd: records.StringPtr("2024-01-01"), HoursPerWeek: intPtr(20)},
		},
	},
}

// Seed inserts demo employees when the store is empty. It goes through the
// service so seeded rows obey the same rules as API writes.
func Seed(ctx context.Context, svc *records.Service) error {
	existing, err := svc.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, seed := range demoEmployees {
		emp, err := svc.CreateEmployee(ctx, seed.employee)
		if err != nil {
			return err
		}
		for _, contract := range seed.contracts {
			if _, err := svc.CreateContract(ctx, emp.ID, contract); err != nil {
				return err
			}
		}
		slog.Info("seeded employee", "employeeId", emp.ID, "email", emp.Email)
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
