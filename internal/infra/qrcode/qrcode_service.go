// Package qrcode renders product labels as QR code PNGs.
package qrcode

import (
	"encoding/json"
	"strings"

	"inventory/config"
	"inventory/internal/domain/entity"
	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"github.com/skip2/go-qrcode"
)

const labelType = "product_label"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// LabelData is the JSON payload encoded in a product label.
type LabelData struct {
	ProductID string `json:"product_id"`
	Handle    string `json:"handle"`
	SKU       string `json:"sku,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	Type      string `json:"type"`
}

// NewQRCodeService creates a label renderer from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return newQRCodeService(256, "M")
	}

	return newQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func newQRCodeService(size int, errorCorrectionLevel string) *qrcodeService {
	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(errorCorrectionLevel),
	}
}

// parseRecoveryLevel maps L, M, Q and H to go-qrcode levels. Unknown values fall back to M.
func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

func (s *qrcodeService) GenerateProductLabel(product *entity.Product) ([]byte, error) {
	if product == nil {
		return nil, errors.New("product is required")
	}

	payload, err := labelPayload(product)
	if err != nil {
		return nil, err
	}

	qrCode, err := qrcode.New(payload, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func labelPayload(product *entity.Product) (string, error) {
	data, err := json.Marshal(LabelData{
		ProductID: product.ID.String(),
		Handle:    product.Handle,
		SKU:       product.SKU,
		Barcode:   product.Barcode,
		Type:      labelType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal label data")
	}

	return string(data), nil
}
