package domain

// Session is the explicit caller context passed into every engine call.
type Session struct {
	BusinessID string
	UserID     string
	Username   string
	Role       Role
}

// HasBusiness reports whether a business context is present.
func (s Session) HasBusiness() bool {
	return s.BusinessID != ""
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// WithBusiness returns a copy of s scoped to businessID.
func (s Session) WithBusiness(businessID string) Session {
	s.BusinessID = businessID
	return s
}
