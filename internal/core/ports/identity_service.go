package ports

import (
	"context"
	"time"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

// RegisterInput carries a registration request. Role is only honoured by
// RegisterPrivileged; plain Register always assigns the user role.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// LoginResult is a successful authentication: the signed token plus the
// user record and token expiry for the response payload.
type LoginResult struct {
	Token     string
	User      *domain.User
	ExpiresAt time.Time
}

// IdentityService validates credentials, issues tokens and manages
// registration. Admin preconditions on RegisterPrivileged and Deactivate
// are enforced by the gatekeeper at the route, never inside the service.
type IdentityService interface {
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	RegisterPrivileged(ctx context.Context, in RegisterInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
}
