package repository

import (
	"context"

	"inventory/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// Create persists a single product.
	Create(ctx context.Context, product *entity.Product) error

	// CreateBatch persists products in chunks of batchSize. Callers needing
	// all-or-nothing behaviour run it inside a transaction.
	CreateBatch(ctx context.Context, products []*entity.Product, batchSize int) error

	// FindByID retrieves a product in any state.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Search returns active products ordered by handle descending. An empty
	// query returns every active product; otherwise only exact matches on
	// title, description, handle, barcode or id.
	Search(ctx context.Context, query string) ([]*entity.Product, error)

	// Update overwrites all mutable fields, including state.
	Update(ctx context.Context, product *entity.Product) error
}
