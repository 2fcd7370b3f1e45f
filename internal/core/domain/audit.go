package domain

import "time"

// AuditAction identifies what an audit event records.
type AuditAction string

const (
	AuditLogin          AuditAction = "login"
	AuditLogout         AuditAction = "logout"
	AuditTokenRefresh   AuditAction = "token_refresh"
	AuditEmployeeCreate AuditAction = "employee_create"
	AuditEmployeeUpdate AuditAction = "employee_update"
	AuditEmployeeDelete AuditAction = "employee_delete"
	AuditUserDelete     AuditAction = "user_delete"
)

// AuditEvent is an append-only record of a sensitive operation. ActorID is
// the authenticated caller, SubjectID the account acted upon (they coincide
// for self-service operations like login).
type AuditEvent struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	Action    AuditAction `json:"action" bson:"action"`
	ActorID   int         `json:"actor_id" bson:"actor_id"`
	SubjectID int         `json:"subject_id" bson:"subject_id"`
	Detail    string      `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
