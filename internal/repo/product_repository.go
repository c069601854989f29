package repo

import (
	"context"
	"errors"

	"github.com/teran1416/InventarioApp/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Every method is scoped by owner: a product owned by someone else is reported
// exactly like a missing one.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context, owner string) ([]models.Product, error)
	GetByID(ctx context.Context, owner, id string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, owner, id string) error
	GetLowStock(ctx context.Context, owner string) ([]models.Product, error)
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicatedValueUnique is returned when a unique constraint is violated.
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")
