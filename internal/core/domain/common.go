package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy hold usernames, which is what the edit window compares against.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// DateRange is a half-open interval [From, To). A zero bound is open on that side.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// Now returns the current instant in UTC at microsecond precision, which is
// what both SQL backends can store without truncation.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
