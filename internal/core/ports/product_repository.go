package ports

import (
	"context"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

// ProductRepository is the plain record store behind the catalog service.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page, limit int) ([]domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductCache is a short-TTL read cache for product lookups. A miss is
// (nil, nil); cache failures must never fail the read path.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}
