package service

import "inventory/internal/domain/entity"

// QRCodeService renders scannable product labels.
type QRCodeService interface {
	// GenerateProductLabel returns a PNG QR code identifying the product.
	GenerateProductLabel(product *entity.Product) ([]byte, error)
}
