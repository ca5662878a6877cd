package services

import "context"

// AccountDirectorySvc resolves account identifiers for line-item validation.
// The engine only consults it at creation time; line items are immutable
// afterwards.
type AccountDirectorySvc interface {
	// AccountExists reports whether the account ID resolves to a known account.
	AccountExists(ctx context.Context, accountID string) (bool, error)
}

// NotifierSvc fans a message out to a set of users. Delivery is best-effort
// and fire-and-forget: a failure must never roll back the state transition
// that triggered it, and duplicates are tolerable.
type NotifierSvc interface {
	Notify(ctx context.Context, userIDs []string, title, message, link string) error
}

// AuditLogSvc records durable, immutable audit events. There is no update or
// delete operation for any caller, administrators included.
type AuditLogSvc interface {
	Record(ctx context.Context, eventType, description, actorID, subjectType, subjectID string, properties map[string]any) error
}

// UserDirectorySvc resolves users for notification fan-out and for annotating
// step flows with display names at read time.
type UserDirectorySvc interface {
	// FindUserIDsByRole returns the IDs of every user holding the given role.
	FindUserIDsByRole(ctx context.Context, role string) ([]string, error)

	// FindUserNamesByIDs returns display names keyed by user ID. Unknown IDs
	// are simply absent from the result.
	FindUserNamesByIDs(ctx context.Context, userIDs []string) (map[string]string, error)
}
