package domain

import "time"

// ActivityLog is an append-only audit line owned by a business.
type ActivityLog struct {
	ActivityLogID string    `json:"activityLogID"`
	BusinessID    string    `json:"businessID"`
	Action        string    `json:"action"`
	Details       string    `json:"details"`
	Timestamp     time.Time `json:"timestamp"`
}

// Activity action labels.
const (
	ActionBusinessCreated      = "Business Created"
	ActionBusinessUpdated      = "Business Updated"
	ActionAccountCreated       = "Account Created"
	ActionAccountUpdated       = "Account Updated"
	ActionAccountDeleted       = "Account Deleted"
	ActionTransactionCreated   = "Transaction Created"
	ActionTransactionUpdated   = "Transaction Updated"
	ActionTransactionDeleted   = "Transaction Deleted"
	ActionFundTransfer         = "Fund Transfer"
	ActionDataRestored         = "Data Restored"
	ActionTransactionsImported = "Transactions Imported"
)
