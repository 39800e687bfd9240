package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductState is the lifecycle state of a product.
type ProductState string

const (
	ProductStateActive   ProductState = "active"
	ProductStateInactive ProductState = "inactive"
)

// IsValid reports whether s is a known state.
func (s ProductState) IsValid() bool {
	return s == ProductStateActive || s == ProductStateInactive
}

// Product is a catalog item owned by the user who created it.
// Products are never removed; deactivation flips State to inactive.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Handle       string          `json:"handle"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Grams        decimal.Decimal `json:"grams"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ComparePrice decimal.Decimal `json:"comparePrice"`
	Barcode      string          `json:"barcode"`
	State        ProductState    `json:"state"`
	UserID       uuid.UUID       `json:"userId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsActive reports whether the product is visible in searches.
func (p *Product) IsActive() bool {
	return p.State == ProductStateActive
}

// Deactivate moves the product to the inactive state. There is no way back.
func (p *Product) Deactivate(now time.Time) {
	p.State = ProductStateInactive
	p.UpdatedAt = now
}

// IsOwnedBy reports whether userID created the product.
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
