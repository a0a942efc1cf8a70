package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
)

// EmployeeSvcFacade manages payroll records.
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, sess domain.Session, req dto.EmployeeRequest) (*domain.Employee, error)
	GetEmployee(ctx context.Context, sess domain.Session, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, sess domain.Session) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, sess domain.Session, employeeID string, req dto.EmployeeRequest) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, sess domain.Session, employeeID string) error
}

// PartSvcFacade manages stock parts.
type PartSvcFacade interface {
	CreatePart(ctx context.Context, sess domain.Session, req dto.PartRequest) (*domain.Part, error)
	GetPart(ctx context.Context, sess domain.Session, partID string) (*domain.Part, error)
	ListParts(ctx context.Context, sess domain.Session) ([]domain.Part, error)
	UpdatePart(ctx context.Context, sess domain.Session, partID string, req dto.PartRequest) (*domain.Part, error)
	DeletePart(ctx context.Context, sess domain.Session, partID string) error
}
