package domain

import "time"

// AuthEvent records the outcome of one authentication or authorization
// decision for the audit trail. It never carries secret material.
type AuthEvent struct {
	Username string    `json:"username"`
	Path     string    `json:"path"`
	Provider string    `json:"provider,omitempty"`
	Outcome  string    `json:"outcome"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

// Audit outcomes.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
	AuditDenied  = "denied"
)
