package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teran1416/InventarioApp/internal/models"
)

const productColumns = `id, owner_id, name, description, quantity, price, min_stock_threshold, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Owner, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.MinStockThreshold, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Owner, p.Name, p.Description, p.Quantity, p.Price, p.MinStockThreshold, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context, owner string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at`
	return r.query(ctx, query, owner)
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, owner, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, owner))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, quantity = $3, price = $4, min_stock_threshold = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Quantity, p.Price, p.MinStockThreshold, time.Now().UTC(), p.ID, p.Owner))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, owner, id string) error {
	query := `DELETE FROM products WHERE id = $1 AND owner_id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) GetLowStock(ctx context.Context, owner string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND quantity <= min_stock_threshold ORDER BY created_at`
	return r.query(ctx, query, owner)
}

func (r *PostgresProductRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
