package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/teran1416/InventarioApp/internal/alerts"
	"github.com/teran1416/InventarioApp/internal/models"
	"github.com/teran1416/InventarioApp/internal/repo"
)

// LowStockMessage accompanies a stock adjustment that leaves the product low.
const LowStockMessage = "Warning: Stock is below threshold"

var (
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrInvalidQuantity   = errors.New("quantity is out of range")
)

type CreateProductInput struct {
	Name              string
	Description       string
	Quantity          int
	Price             float64
	MinStockThreshold *int
}

// UpdateProductInput carries a partial update. Name, Description, Price and
// MinStockThreshold are applied only when set to a non-zero value; Quantity is
// applied whenever set, so it is the one field that can be cleared to 0.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	Quantity          *int
	Price             *float64
	MinStockThreshold *int
}

type StockAdjustment struct {
	Quantity   int
	IsAddition bool
}

type StockResult struct {
	Product    models.Product
	IsLowStock bool
	Message    string
}

type Summary struct {
	TotalProducts       int
	TotalInventoryValue decimal.Decimal
	LowStockCount       int
}

// ProductService runs every product operation on behalf of one owner.
type ProductService struct {
	repo     repo.ProductRepository
	notifier alerts.Notifier
	log      *logrus.Logger
}

func NewProductService(r repo.ProductRepository, notifier alerts.Notifier, log *logrus.Logger) *ProductService {
	if notifier == nil {
		notifier = alerts.NopNotifier{}
	}
	return &ProductService{repo: r, notifier: notifier, log: log}
}

func (s *ProductService) List(ctx context.Context, owner string) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, owner, id string) (models.Product, error) {
	return s.repo.GetByID(ctx, owner, id)
}

func (s *ProductService) Create(ctx context.Context, owner string, in CreateProductInput) (models.Product, error) {
	threshold := models.DefaultMinStockThreshold
	if in.MinStockThreshold != nil && *in.MinStockThreshold != 0 {
		threshold = *in.MinStockThreshold
	}

	created, err := s.repo.Create(ctx, models.Product{
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Price:             in.Price,
		MinStockThreshold: threshold,
		Owner:             owner,
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, owner, id string, in UpdateProductInput) (models.Product, error) {
	p, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return models.Product{}, err
	}

	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Description != nil && *in.Description != "" {
		p.Description = *in.Description
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil && *in.Price != 0 {
		p.Price = *in.Price
	}
	if in.MinStockThreshold != nil && *in.MinStockThreshold != 0 {
		p.MinStockThreshold = *in.MinStockThreshold
	}

	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// AdjustStock adds or removes adj.Quantity units. A removal larger than the
// current stock fails with ErrInsufficientStock and an addition past
// models.MaxQuantity with ErrInvalidQuantity; neither writes anything.
func (s *ProductService) AdjustStock(ctx context.Context, owner, id string, adj StockAdjustment) (StockResult, error) {
	if adj.Quantity < 0 || adj.Quantity > models.MaxQuantity {
		return StockResult{}, ErrInvalidQuantity
	}

	p, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return StockResult{}, err
	}

	if adj.IsAddition {
		if p.Quantity > models.MaxQuantity-adj.Quantity {
			return StockResult{}, ErrInvalidQuantity
		}
		p.Quantity += adj.Quantity
	} else {
		if p.Quantity < adj.Quantity {
			return StockResult{}, ErrInsufficientStock
		}
		p.Quantity -= adj.Quantity
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return StockResult{}, err
	}

	result := StockResult{Product: updated, IsLowStock: updated.IsLowStock()}
	if result.IsLowStock {
		result.Message = LowStockMessage
		if err := s.notifier.NotifyLowStock(ctx, updated); err != nil {
			s.log.WithError(err).WithField("product_id", updated.ID).Warn("could not record low-stock alert")
		}
	}
	return result, nil
}

func (s *ProductService) ListLowStock(ctx context.Context, owner string) ([]models.Product, error) {
	products, err := s.repo.GetLowStock(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Summary(ctx context.Context, owner string) (Summary, error) {
	products, err := s.List(ctx, owner)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalProducts:       len(products),
		TotalInventoryValue: models.TotalValue(products).Round(2),
	}
	for _, p := range products {
		if p.IsLowStock() {
			summary.LowStockCount++
		}
	}
	return summary, nil
}
