package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/teran1416/InventarioApp/internal/client"
	"github.com/teran1416/InventarioApp/internal/models"
)

type ProductAPI interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	ListLowStock(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, in client.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, token, id string, patch client.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
	AdjustStock(ctx context.Context, token, id string, quantity int, isAddition bool) (client.StockResult, error)
}

// TokenSource supplies the bearer credential for each request. *AuthStore implements it.
type TokenSource interface {
	Token() string
}

type ProductResult struct {
	Success bool
	Message string
	Product models.Product
}

type StockResult struct {
	Success    bool
	Message    string
	Product    models.Product
	IsLowStock bool
}

// ProductStore caches the caller's products. A failed action leaves the cache
// as it was and records the failure in Error.
type ProductStore struct {
	api     ProductAPI
	session TokenSource

	mu       sync.RWMutex
	products []models.Product
	lowStock []models.Product
	inflight int
	err      string
}

func NewProductStore(api ProductAPI, session TokenSource) *ProductStore {
	return &ProductStore{api: api, session: session}
}

// begin marks an action in flight; the returned func ends it.
func (s *ProductStore) begin() func() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}
}

func (s *ProductStore) fail(err error, def string) string {
	msg := messageFrom(err, def)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	return msg
}

func (s *ProductStore) FetchProducts(ctx context.Context) Result {
	defer s.begin()()

	products, err := s.api.ListProducts(ctx, s.session.Token())
	if err != nil {
		return Result{Message: s.fail(err, "Error loading products")}
	}

	s.mu.Lock()
	s.products = products
	s.err = ""
	s.mu.Unlock()
	return Result{Success: true}
}

func (s *ProductStore) FetchLowStockProducts(ctx context.Context) Result {
	defer s.begin()()

	products, err := s.api.ListLowStock(ctx, s.session.Token())
	if err != nil {
		return Result{Message: s.fail(err, "Error loading low-stock products")}
	}

	s.mu.Lock()
	s.lowStock = products
	s.err = ""
	s.mu.Unlock()
	return Result{Success: true}
}

func (s *ProductStore) CreateProduct(ctx context.Context, in client.ProductInput) ProductResult {
	defer s.begin()()

	created, err := s.api.CreateProduct(ctx, s.session.Token(), in)
	if err != nil {
		return ProductResult{Message: s.fail(err, "Error creating product")}
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.err = ""
	s.mu.Unlock()
	return ProductResult{Success: true, Product: created}
}

func (s *ProductStore) UpdateProduct(ctx context.Context, id string, patch client.ProductPatch) ProductResult {
	defer s.begin()()

	updated, err := s.api.UpdateProduct(ctx, s.session.Token(), id, patch)
	if err != nil {
		return ProductResult{Message: s.fail(err, "Error updating product")}
	}

	s.mu.Lock()
	s.replace(id, updated)
	s.err = ""
	s.mu.Unlock()
	return ProductResult{Success: true, Product: updated}
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id string) Result {
	defer s.begin()()

	if err := s.api.DeleteProduct(ctx, s.session.Token(), id); err != nil {
		return Result{Message: s.fail(err, "Error deleting product")}
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(s.products, func(p models.Product) bool { return p.ID == id })
	s.err = ""
	s.mu.Unlock()
	return Result{Success: true}
}

// UpdateStock adds or removes quantity units. On success Message carries the
// server's low-stock warning, if any.
func (s *ProductStore) UpdateStock(ctx context.Context, id string, quantity int, isAddition bool) StockResult {
	defer s.begin()()

	res, err := s.api.AdjustStock(ctx, s.session.Token(), id, quantity, isAddition)
	if err != nil {
		return StockResult{Message: s.fail(err, "Error updating stock")}
	}

	s.mu.Lock()
	s.replace(id, res.Product)
	s.err = ""
	s.mu.Unlock()
	return StockResult{
		Success:    true,
		Message:    res.Message,
		Product:    res.Product,
		IsLowStock: res.IsLowStock,
	}
}

// replace swaps the cached product with the given id. s.mu must be held.
func (s *ProductStore) replace(id string, p models.Product) {
	if i := slices.IndexFunc(s.products, func(c models.Product) bool { return c.ID == id }); i >= 0 {
		s.products[i] = p
	}
}

func (s *ProductStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *ProductStore) LowStockProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lowStock)
}

func (s *ProductStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func (s *ProductStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProductStore) TotalProducts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *ProductStore) TotalInventoryValue() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.TotalValue(s.products)
}
