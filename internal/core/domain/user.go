package domain

// Role is the coarse permission level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a local login account.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
}

// HasPassword reports whether a credential has been set.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Permission names an admin-gated capability.
type Permission string

const (
	PermManageEmployees Permission = "manage_employees"
	PermManageUsers     Permission = "manage_users"
	PermExportData      Permission = "export_data"
	PermBackupRestore   Permission = "backup_restore"
)

// Allows reports whether role r holds permission p.
func (r Role) Allows(p Permission) bool {
	switch p {
	case PermManageEmployees, PermManageUsers, PermExportData, PermBackupRestore:
		return r == RoleAdmin
	}
	return false
}
