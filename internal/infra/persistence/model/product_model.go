package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the GORM-specific struct for the 'products' table.
// Rows are never deleted; State carries the soft-delete flag.
type ProductModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Handle       string          `gorm:"type:varchar(255);not null;index:idx_products_handle"`
	Title        string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text;not null"`
	SKU          string          `gorm:"column:sku;type:varchar(100);not null"`
	Grams        decimal.Decimal `gorm:"type:numeric;not null"`
	Stock        int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric;not null"`
	ComparePrice decimal.Decimal `gorm:"column:compare_price;type:numeric;not null"`
	Barcode      string          `gorm:"type:varchar(100);not null;index:idx_products_barcode"`
	State        string          `gorm:"type:varchar(16);not null;default:active;index:idx_products_state"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_user_id"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
