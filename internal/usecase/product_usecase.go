package usecase

import (
	"context"

	"inventory/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput holds every client-settable product field.
type ProductInput struct {
	Handle       string
	Title        string
	Description  string
	SKU          string
	Grams        decimal.Decimal
	Stock        int
	Price        decimal.Decimal
	ComparePrice decimal.Decimal
	Barcode      string
}

// ProductView is a product as returned from a mutation, tagged with the
// username of the user who made the change.
type ProductView struct {
	*entity.Product
	User string `json:"user"`
}

// ProductUsecase defines the catalog operations.
type ProductUsecase interface {
	Create(ctx context.Context, actor *entity.User, input *ProductInput) (*ProductView, error)
	CreateBulk(ctx context.Context, actor *entity.User, inputs []*ProductInput) ([]*ProductView, error)

	// Search lists active products. An empty query matches all of them.
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, id uuid.UUID, actor *entity.User, input *ProductInput) (*ProductView, error)
	SoftDelete(ctx context.Context, id uuid.UUID, actor *entity.User) (*ProductView, error)

	// Label renders a PNG QR code for the product.
	Label(ctx context.Context, id uuid.UUID) ([]byte, error)
}
