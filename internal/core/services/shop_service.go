package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// newRequestValidator reads the same binding tags gin uses, so requests coming
// from outside HTTP are held to the same rules.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func validateRequest(v *validator.Validate, req any) error {
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

type employeeService struct {
	BaseService
	store    portsrepo.Store
	validate *validator.Validate
}

// NewEmployeeService creates the payroll record service.
func NewEmployeeService(store portsrepo.Store) portssvc.EmployeeSvcFacade {
	return &employeeService{store: store, validate: newRequestValidator()}
}

func (s *employeeService) check(req dto.EmployeeRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	if req.Salary.IsNegative() {
		return validationError("salary cannot be negative")
	}
	if !domain.FitsAmountScale(req.Salary) {
		return validationError("salary has more than %d decimal places", domain.AmountScale)
	}
	return nil
}

func applyEmployee(e *domain.Employee, req dto.EmployeeRequest, now time.Time) {
	e.Name = strings.TrimSpace(req.Name)
	e.Phone = strings.TrimSpace(req.Phone)
	e.Salary = req.Salary
	e.Designation = strings.TrimSpace(req.Designation)
	e.Email = strings.TrimSpace(req.Email)
	e.NationalID = strings.TrimSpace(req.NationalID)
	e.VisaExpiry = nil
	if req.VisaExpiry != nil {
		v := req.VisaExpiry.UTC().Truncate(time.Microsecond)
		e.VisaExpiry = &v
	}
	e.JoinDate = req.JoinDate.UTC().Truncate(time.Microsecond)
	if req.JoinDate.IsZero() {
		e.JoinDate = now
	}
}

func (s *employeeService) CreateEmployee(ctx context.Context, sess domain.Session, req dto.EmployeeRequest) (*domain.Employee, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	now := s.Now()
	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		BusinessID:  sess.BusinessID,
		AuditFields: newAudit(sess.Username, now),
	}
	applyEmployee(&employee, req, now)

	if err := uow.Employees().SaveEmployee(ctx, employee); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, sess domain.Session, employeeID string) (*domain.Employee, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Employees().FindEmployeeByID(ctx, sess.BusinessID, employeeID)
}

func (s *employeeService) ListEmployees(ctx context.Context, sess domain.Session) ([]domain.Employee, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Employees().ListEmployees(ctx, sess.BusinessID)
}

func (s *employeeService) UpdateEmployee(ctx context.Context, sess domain.Session, employeeID string, req dto.EmployeeRequest) (*domain.Employee, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	employee, err := uow.Employees().FindEmployeeByID(ctx, sess.BusinessID, employeeID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	applyEmployee(employee, req, now)
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = sess.Username

	if err := uow.Employees().UpdateEmployee(ctx, *employee); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, sess domain.Session, employeeID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	if err := uow.Employees().DeleteEmployee(ctx, sess.BusinessID, employeeID); err != nil {
		return err
	}
	return commit(ctx, uow)
}

type partService struct {
	BaseService
	store    portsrepo.Store
	validate *validator.Validate
}

// NewPartService creates the stock parts service.
func NewPartService(store portsrepo.Store) portssvc.PartSvcFacade {
	return &partService{store: store, validate: newRequestValidator()}
}

func (s *partService) check(req dto.PartRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return validationError("price cannot be negative")
	}
	if !domain.FitsAmountScale(req.Price) {
		return validationError("price has more than %d decimal places", domain.AmountScale)
	}
	return nil
}

func applyPart(p *domain.Part, req dto.PartRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.PartNumber = strings.TrimSpace(req.PartNumber)
	p.Price = req.Price
	p.Quantity = req.Quantity
	p.Customer = strings.TrimSpace(req.Customer)
	p.Vehicle = strings.TrimSpace(req.Vehicle)
	p.Supplier = strings.TrimSpace(req.Supplier)
}

func (s *partService) CreatePart(ctx context.Context, sess domain.Session, req dto.PartRequest) (*domain.Part, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	part := domain.Part{
		PartID:      uuid.NewString(),
		BusinessID:  sess.BusinessID,
		AuditFields: newAudit(sess.Username, s.Now()),
	}
	applyPart(&part, req)

	if err := uow.Parts().SavePart(ctx, part); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Part created", slog.String("part_id", part.PartID))
	return &part, nil
}

func (s *partService) GetPart(ctx context.Context, sess domain.Session, partID string) (*domain.Part, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Parts().FindPartByID(ctx, sess.BusinessID, partID)
}

func (s *partService) ListParts(ctx context.Context, sess domain.Session) ([]domain.Part, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Parts().ListParts(ctx, sess.BusinessID)
}

func (s *partService) UpdatePart(ctx context.Context, sess domain.Session, partID string, req dto.PartRequest) (*domain.Part, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	part, err := uow.Parts().FindPartByID(ctx, sess.BusinessID, partID)
	if err != nil {
		return nil, err
	}
	applyPart(part, req)
	part.LastUpdatedAt = s.Now()
	part.LastUpdatedBy = sess.Username

	if err := uow.Parts().UpdatePart(ctx, *part); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *partService) DeletePart(ctx context.Context, sess domain.Session, partID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	if err := uow.Parts().DeletePart(ctx, sess.BusinessID, partID); err != nil {
		return err
	}
	return commit(ctx, uow)
}
