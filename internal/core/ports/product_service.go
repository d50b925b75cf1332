package ports

import (
	"context"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       float64
	Currency    string
	Stock       int
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Stock       int
}

type ListProductsInput struct {
	Page  int
	Limit int
}

type ProductList struct {
	Data       []domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService implements catalog operations. Authorization is decided
// before these methods run; the service itself never inspects tokens.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, in ListProductsInput) (*ProductList, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
