package ports

import (
	"context"
	"time"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

// AuthEventInput is one identity operation outcome headed for the audit
// trail.
type AuthEventInput struct {
	Username string
	Action   string
	Result   string
	Detail   string
	At       time.Time
}

// AuthEventRecorder accepts events without blocking the request path.
// The queue dispatcher implements it; services treat a nil recorder as a
// no-op.
type AuthEventRecorder interface {
	Record(event AuthEventInput)
}

// AuditService persists and queries auth events.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
	Recent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}

// AuditRepository stores the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	FindRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}
