package repositories

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// EmployeeRepositoryFacade persists payroll records.
type EmployeeRepositoryFacade interface {
	FindEmployeeByID(ctx context.Context, businessID, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error)
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	DeleteEmployee(ctx context.Context, businessID, employeeID string) error
}

// PartRepositoryFacade persists stock parts.
type PartRepositoryFacade interface {
	FindPartByID(ctx context.Context, businessID, partID string) (*domain.Part, error)
	ListParts(ctx context.Context, businessID string) ([]domain.Part, error)
	SavePart(ctx context.Context, part domain.Part) error
	UpdatePart(ctx context.Context, part domain.Part) error
	DeletePart(ctx context.Context, businessID, partID string) error
}
