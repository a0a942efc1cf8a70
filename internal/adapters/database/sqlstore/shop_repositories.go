package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
)

const employeeColumns = `employee_id, business_id, name, phone, salary, designation, email, national_id, visa_expiry, join_date, created_at, created_by, last_updated_at, last_updated_by`

type employeeRepository struct{ q querier }

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	var visa sql.NullTime
	err := s.Scan(&e.EmployeeID, &e.BusinessID, &e.Name, &e.Phone, &e.Salary, &e.Designation, &e.Email, &e.NationalID,
		&visa, &e.JoinDate, &e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy)
	if visa.Valid {
		t := visa.Time.UTC()
		e.VisaExpiry = &t
	}
	e.JoinDate, e.CreatedAt, e.LastUpdatedAt = utc(e.JoinDate), utc(e.CreatedAt), utc(e.LastUpdatedAt)
	return e, err
}

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, businessID, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE business_id = ? AND employee_id = ?`
	e, err := scanEmployee(r.q.queryRow(ctx, query, businessID, employeeID))
	if err != nil {
		return nil, translateError(err, "failed to find employee %s", employeeID)
	}
	return &e, nil
}

func (r *employeeRepository) ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE business_id = ? ORDER BY LOWER(name), created_at`
	rows, err := r.q.query(ctx, query, businessID)
	if err != nil {
		return nil, translateError(err, "failed to list employees")
	}
	out, err := collect(rows, scanEmployee)
	if err != nil {
		return nil, translateError(err, "failed to scan employees")
	}
	return out, nil
}

func (r *employeeRepository) SaveEmployee(ctx context.Context, e domain.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, e.EmployeeID, e.BusinessID, e.Name, e.Phone, e.Salary, e.Designation, e.Email,
		e.NationalID, nullTime(e.VisaExpiry), e.JoinDate.UTC(), e.CreatedAt.UTC(), e.CreatedBy, e.LastUpdatedAt.UTC(), e.LastUpdatedBy)
	return translateError(err, "failed to save employee %s", e.EmployeeID)
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, e domain.Employee) error {
	query := `
		UPDATE employees SET name = ?, phone = ?, salary = ?, designation = ?, email = ?, national_id = ?,
			visa_expiry = ?, join_date = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND employee_id = ?`
	return r.q.execOne(ctx, "employee", e.EmployeeID, query,
		e.Name, e.Phone, e.Salary, e.Designation, e.Email, e.NationalID,
		nullTime(e.VisaExpiry), e.JoinDate.UTC(), e.LastUpdatedAt.UTC(), e.LastUpdatedBy,
		e.BusinessID, e.EmployeeID)
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	return r.q.execOne(ctx, "employee", employeeID,
		`DELETE FROM employees WHERE business_id = ? AND employee_id = ?`, businessID, employeeID)
}

const partColumns = `part_id, business_id, name, part_number, price, quantity, customer, vehicle, supplier, created_at, created_by, last_updated_at, last_updated_by`

type partRepository struct{ q querier }

func scanPart(s scanner) (domain.Part, error) {
	var p domain.Part
	err := s.Scan(&p.PartID, &p.BusinessID, &p.Name, &p.PartNumber, &p.Price, &p.Quantity, &p.Customer, &p.Vehicle,
		&p.Supplier, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy)
	p.CreatedAt, p.LastUpdatedAt = utc(p.CreatedAt), utc(p.LastUpdatedAt)
	return p, err
}

func (r *partRepository) FindPartByID(ctx context.Context, businessID, partID string) (*domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE business_id = ? AND part_id = ?`
	p, err := scanPart(r.q.queryRow(ctx, query, businessID, partID))
	if err != nil {
		return nil, translateError(err, "failed to find part %s", partID)
	}
	return &p, nil
}

func (r *partRepository) ListParts(ctx context.Context, businessID string) ([]domain.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE business_id = ? ORDER BY LOWER(name), created_at`
	rows, err := r.q.query(ctx, query, businessID)
	if err != nil {
		return nil, translateError(err, "failed to list parts")
	}
	out, err := collect(rows, scanPart)
	if err != nil {
		return nil, translateError(err, "failed to scan parts")
	}
	return out, nil
}

func (r *partRepository) SavePart(ctx context.Context, p domain.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, p.PartID, p.BusinessID, p.Name, p.PartNumber, p.Price, p.Quantity, p.Customer,
		p.Vehicle, p.Supplier, p.CreatedAt.UTC(), p.CreatedBy, p.LastUpdatedAt.UTC(), p.LastUpdatedBy)
	return translateError(err, "failed to save part %s", p.PartID)
}

func (r *partRepository) UpdatePart(ctx context.Context, p domain.Part) error {
	query := `
		UPDATE parts SET name = ?, part_number = ?, price = ?, quantity = ?, customer = ?, vehicle = ?,
			supplier = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND part_id = ?`
	return r.q.execOne(ctx, "part", p.PartID, query,
		p.Name, p.PartNumber, p.Price, p.Quantity, p.Customer, p.Vehicle,
		p.Supplier, p.LastUpdatedAt.UTC(), p.LastUpdatedBy, p.BusinessID, p.PartID)
}

func (r *partRepository) DeletePart(ctx context.Context, businessID, partID string) error {
	return r.q.execOne(ctx, "part", partID, `DELETE FROM parts WHERE business_id = ? AND part_id = ?`, businessID, partID)
}

// --- users ---

const userColumns = `user_id, username, password_hash, role, created_at, created_by, last_updated_at, last_updated_by`

type userRepository struct{ q querier }

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy)
	u.CreatedAt, u.LastUpdatedAt = utc(u.CreatedAt), utc(u.LastUpdatedAt)
	return u, err
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID))
	if err != nil {
		return nil, translateError(err, "failed to find user %s", userID)
	}
	return &u, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return nil, translateError(err, "failed to find user %q", username)
	}
	return &u, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, translateError(err, "failed to list users")
	}
	out, err := collect(rows, scanUser)
	if err != nil {
		return nil, translateError(err, "failed to scan users")
	}
	return out, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, translateError(err, "failed to count users")
	}
	return n, nil
}

func (r *userRepository) SaveUser(ctx context.Context, u domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, u.UserID, u.Username, u.PasswordHash, string(u.Role),
		u.CreatedAt.UTC(), u.CreatedBy, u.LastUpdatedAt.UTC(), u.LastUpdatedBy)
	return translateError(err, "failed to save user %q", u.Username)
}

func (r *userRepository) UpdateUser(ctx context.Context, u domain.User) error {
	query := `
		UPDATE users SET username = ?, password_hash = ?, role = ?, last_updated_at = ?, last_updated_by = ?
		WHERE user_id = ?`
	return r.q.execOne(ctx, "user", u.UserID, query,
		u.Username, u.PasswordHash, string(u.Role), u.LastUpdatedAt.UTC(), u.LastUpdatedBy, u.UserID)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.q.execOne(ctx, "user", userID, `DELETE FROM users WHERE user_id = ?`, userID)
}

// --- activity ---

type activityLogRepository struct{ q querier }

func scanActivityLog(s scanner) (domain.ActivityLog, error) {
	var a domain.ActivityLog
	err := s.Scan(&a.ActivityLogID, &a.BusinessID, &a.Action, &a.Details, &a.Timestamp)
	a.Timestamp = utc(a.Timestamp)
	return a, err
}

func (r *activityLogRepository) SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error {
	query := `INSERT INTO activity_logs (activity_log_id, business_id, action, details, logged_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, entry.ActivityLogID, entry.BusinessID, entry.Action, entry.Details, entry.Timestamp.UTC())
	return translateError(err, "failed to save activity log %s", entry.ActivityLogID)
}

func (r *activityLogRepository) ListActivityLogs(ctx context.Context, businessID string, limit int, after *portsrepo.ActivityCursor) ([]domain.ActivityLog, error) {
	var b strings.Builder
	b.WriteString(`SELECT activity_log_id, business_id, action, details, logged_at FROM activity_logs WHERE business_id = ?`)
	args := []any{businessID}
	if after != nil {
		b.WriteString(` AND (logged_at < ? OR (logged_at = ? AND activity_log_id < ?))`)
		ts := after.Timestamp.UTC()
		args = append(args, ts, ts, after.ActivityLogID)
	}
	b.WriteString(` ORDER BY logged_at DESC, activity_log_id DESC`)
	if limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := r.q.query(ctx, b.String(), args...)
	if err != nil {
		return nil, translateError(err, "failed to list activity logs")
	}
	out, err := collect(rows, scanActivityLog)
	if err != nil {
		return nil, translateError(err, "failed to scan activity logs")
	}
	return out, nil
}
