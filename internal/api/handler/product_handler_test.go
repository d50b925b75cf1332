package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
)

type stubProductService struct {
	createFn func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, id string) (*domain.Product, error)
	listFn   func(ctx context.Context, in ports.ListProductsInput) (*ports.ProductList, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, in ports.ListProductsInput) (*ports.ProductList, error) {
	return s.listFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_Create(t *testing.T) {
	stub := &stubProductService{
		createFn: func(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			if in.SKU != "SKU-1" || in.Currency != "USD" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Product{ID: "p1", SKU: in.SKU, Name: in.Name, Price: in.Price, Currency: in.Currency}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/products",
		`{"sku":"SKU-1","name":"Widget","price":9.99,"currency":"USD","stock":5}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "p1" || resp.SKU != "SKU-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	stub := &stubProductService{
		createFn: func(_ context.Context, _ ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	// Currency must be a 3-letter code.
	c, _ := newTestContext(t, http.MethodPost, "/v1/products",
		`{"sku":"SKU-1","name":"Widget","price":9.99,"currency":"US","stock":5}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Get_NotFoundBubblesUp(t *testing.T) {
	stub := &stubProductService{
		getFn: func(_ context.Context, _ string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/v1/products/missing", "")
	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_List(t *testing.T) {
	stub := &stubProductService{
		listFn: func(_ context.Context, in ports.ListProductsInput) (*ports.ProductList, error) {
			if in.Page != 2 || in.Limit != 10 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ProductList{
				Data:       []domain.Product{{ID: "p1"}, {ID: "p2"}},
				Total:      12,
				Page:       2,
				Limit:      10,
				TotalPages: 2,
			}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/products?page=2&limit=10", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []domain.Product `json:"data"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Total != 12 || resp.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProductHandler_Update(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
			if id != "p1" || in.Name != "Widget v2" {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return &domain.Product{ID: id, Name: in.Name, Price: in.Price, Currency: in.Currency}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/v1/products/p1",
		`{"name":"Widget v2","price":12.50,"currency":"USD","stock":3}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	called := false
	stub := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			called = true
			if id != "p1" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/v1/products/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
