package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teran1416/InventarioApp/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Insertion order is kept so listings are stable.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products owned by owner.
func (r *InMemoryProductRepository) GetAll(_ context.Context, owner string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.Owner == owner }), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, owner, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id && p.Owner == owner {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID && p.Owner == product.Owner {
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = time.Now().UTC()
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, owner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.Owner == owner {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// GetLowStock returns the owner's products whose quantity is at or below their threshold.
func (r *InMemoryProductRepository) GetLowStock(_ context.Context, owner string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return p.Owner == owner && p.IsLowStock()
	}), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

// Len reports how many products are stored across all owners.
func (r *InMemoryProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func (r *InMemoryProductRepository) filter(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
