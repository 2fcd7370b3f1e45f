package ports

import (
	"context"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

// AuditRepository persists audit events. Writes are best effort; callers
// must never fail a request because an audit insert failed.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListBySubject(ctx context.Context, subjectID int, limit int) ([]domain.AuditEvent, error)
}
