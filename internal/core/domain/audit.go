package domain

import "time"

// Auth event actions.
const (
	AuditActionLogin      = "login"
	AuditActionRegister   = "register"
	AuditActionDeactivate = "deactivate"
)

// Auth event results.
const (
	AuditResultSuccess = "success"
	AuditResultFailure = "failure"
)

// AuthEvent records the outcome of an identity operation for the audit
// trail. Events are persisted asynchronously; losing one on shutdown is
// acceptable, reordering events for the same username is not.
type AuthEvent struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Result    string    `json:"result"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
