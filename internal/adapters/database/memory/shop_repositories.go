package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
)

type employeeRepository struct{ d *data }

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, businessID, employeeID string) (*domain.Employee, error) {
	e, ok := r.d.employees.get(employeeID)
	if !ok || e.BusinessID != businessID {
		return nil, notFound("employee", employeeID)
	}
	return &e, nil
}

func (r *employeeRepository) ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error) {
	out := r.d.employees.values(func(e domain.Employee) bool { return e.BusinessID == businessID })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *employeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	return insert(r.d, r.d.employees, employee.EmployeeID, employee)
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return replace(r.d.employees, employee.EmployeeID, employee)
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	if _, err := r.FindEmployeeByID(ctx, businessID, employeeID); err != nil {
		return err
	}
	delete(r.d.employees, employeeID)
	return nil
}

type partRepository struct{ d *data }

func (r *partRepository) FindPartByID(ctx context.Context, businessID, partID string) (*domain.Part, error) {
	p, ok := r.d.parts.get(partID)
	if !ok || p.BusinessID != businessID {
		return nil, notFound("part", partID)
	}
	return &p, nil
}

func (r *partRepository) ListParts(ctx context.Context, businessID string) ([]domain.Part, error) {
	out := r.d.parts.values(func(p domain.Part) bool { return p.BusinessID == businessID })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *partRepository) SavePart(ctx context.Context, part domain.Part) error {
	return insert(r.d, r.d.parts, part.PartID, part)
}

func (r *partRepository) UpdatePart(ctx context.Context, part domain.Part) error {
	return replace(r.d.parts, part.PartID, part)
}

func (r *partRepository) DeletePart(ctx context.Context, businessID, partID string) error {
	if _, err := r.FindPartByID(ctx, businessID, partID); err != nil {
		return err
	}
	delete(r.d.parts, partID)
	return nil
}

type userRepository struct{ d *data }

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := r.d.users.get(userID)
	if !ok {
		return nil, notFound("user", userID)
	}
	return &u, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	matches := r.d.users.values(func(u domain.User) bool { return u.Username == username })
	if len(matches) == 0 {
		return nil, notFound("user", username)
	}
	return &matches[0], nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	out := r.d.users.values(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	return len(r.d.users), nil
}

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	if _, err := r.FindUserByUsername(ctx, user.Username); err == nil {
		return fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, user.Username)
	}
	return insert(r.d, r.d.users, user.UserID, user)
}

func (r *userRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return replace(r.d.users, user.UserID, user)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := r.d.users[userID]; !ok {
		return notFound("user", userID)
	}
	delete(r.d.users, userID)
	return nil
}

type activityLogRepository struct{ d *data }

func (r *activityLogRepository) SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error {
	return insert(r.d, r.d.activity, entry.ActivityLogID, entry)
}

func (r *activityLogRepository) ListActivityLogs(ctx context.Context, businessID string, limit int, after *portsrepo.ActivityCursor) ([]domain.ActivityLog, error) {
	out := r.d.activity.values(func(a domain.ActivityLog) bool {
		if a.BusinessID != businessID {
			return false
		}
		if after == nil {
			return true
		}
		if a.Timestamp.Equal(after.Timestamp) {
			return a.ActivityLogID < after.ActivityLogID
		}
		return a.Timestamp.Before(after.Timestamp)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ActivityLogID > out[j].ActivityLogID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
