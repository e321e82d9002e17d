package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogsvc "github.com/agrimartlabs/agrimart-backend/internal/catalog"
	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
	pkgerrors "github.com/agrimartlabs/agrimart-backend/pkg/errors"
	"github.com/agrimartlabs/agrimart-backend/pkg/pagination"
)

type stubCatalogService struct {
	product *models.Product
	list    *catalogsvc.ProductList
	filters catalogsvc.ProductFilters
	err     error
}

func (s *stubCatalogService) GetAvailability(context.Context, uuid.UUID) (*catalogsvc.Availability, error) {
	return nil, s.err
}

func (s *stubCatalogService) Reserve(context.Context, *gorm.DB, uuid.UUID, int) error {
	return s.err
}

func (s *stubCatalogService) Release(context.Context, *gorm.DB, uuid.UUID, int) error {
	return s.err
}

func (s *stubCatalogService) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ListProducts(_ context.Context, _ pagination.Params, filters catalogsvc.ProductFilters) (*catalogsvc.ProductList, error) {
	s.filters = filters
	return s.list, s.err
}

func (s *stubCatalogService) CreateProduct(context.Context, catalogsvc.CreateProductInput) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) UpdateProduct(context.Context, uuid.UUID, catalogsvc.UpdateProductInput) (*models.Product, error) {
	return s.product, s.err
}

func testProduct() *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      "Organic Compost 5kg",
		Category:  enums.ProductCategoryFertilizers,
		UnitPrice: decimal.RequireFromString("299.00"),
		IsActive:  true,
		Inventory: &models.InventoryItem{AvailableQty: 40},
	}
}

func TestListProductsAppliesCategoryFilter(t *testing.T) {
	svc := &stubCatalogService{list: &catalogsvc.ProductList{Products: []catalogsvc.ProductSummary{}}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=fertilizers&q=compost", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.filters.Category == nil || *svc.filters.Category != enums.ProductCategoryFertilizers {
		t.Fatalf("expected fertilizers filter got %+v", svc.filters)
	}
	if svc.filters.Query != "compost" {
		t.Fatalf("expected query filter got %q", svc.filters.Query)
	}
	if !svc.filters.ActiveOnly {
		t.Fatal("public listing must be active-only")
	}
}

func TestListProductsRejectsBadCategory(t *testing.T) {
	handler := ListProducts(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=gadgets", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductSuccess(t *testing.T) {
	product := testProduct()
	handler := GetProduct(&stubCatalogService{product: product}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	req = withChiParam(req, "productID", product.ID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data productResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != product.ID {
		t.Fatalf("unexpected product id %s", envelope.Data.ID)
	}
	if envelope.Data.Stock != 40 {
		t.Fatalf("expected stock 40 got %d", envelope.Data.Stock)
	}
}

func TestGetProductNotFound(t *testing.T) {
	handler := GetProduct(&stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil)
	req = withChiParam(req, "productID", id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminCreateProductSuccess(t *testing.T) {
	product := testProduct()
	handler := AdminCreateProduct(&stubCatalogService{product: product}, nil)

	body := strings.NewReader(`{"name":"Organic Compost 5kg","category":"fertilizers","unit_price":"299.00","stock":40}`)
	req := authedRequest(http.MethodPost, "/api/admin/v1/products", body, uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAdminCreateProductRejectsBadPrice(t *testing.T) {
	handler := AdminCreateProduct(&stubCatalogService{}, nil)

	body := strings.NewReader(`{"name":"Organic Compost 5kg","category":"fertilizers","unit_price":"free","stock":40}`)
	req := authedRequest(http.MethodPost, "/api/admin/v1/products", body, uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUpdateProductRejectsUnknownField(t *testing.T) {
	handler := AdminUpdateProduct(&stubCatalogService{product: testProduct()}, nil)

	id := uuid.NewString()
	body := strings.NewReader(`{"price":"100.00"}`)
	req := authedRequest(http.MethodPatch, "/api/admin/v1/products/"+id, body, uuid.New())
	req = withChiParam(req, "productID", id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
