package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProductService implements catalog CRUD over a plain record store with an
// optional read-through cache for single-product lookups.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("product created")
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache set failed")
		}
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, in ports.ListProductsInput) (*ports.ProductList, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	data, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ProductList{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Currency = in.Currency
	product.Stock = in.Stock
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}
