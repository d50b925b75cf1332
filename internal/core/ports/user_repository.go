package ports

import (
	"context"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

// UserRepository is the credential store. Create must be an atomic
// insert-if-absent keyed on username/email uniqueness: concurrent
// registrations for the same username are serialized by the store's unique
// constraint, and the user record with its role assignments is persisted in
// one operation or not at all.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
}
