package qrcode

import (
	"encoding/json"
	"testing"

	"inventory/config"
	"inventory/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:      uuid.New(),
		Handle:  "blue-mug",
		SKU:     "MUG-001",
		Barcode: "4006381333931",
		State:   entity.ProductStateActive,
	}
}

func TestParseRecoveryLevel(t *testing.T) {
	tests := []struct {
		in   string
		want qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
		{"", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRecoveryLevel(tt.in))
		})
	}
}

func TestNewQRCodeService_FromConfig(t *testing.T) {
	svc := NewQRCodeService(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}})

	impl, ok := svc.(*qrcodeService)
	require.True(t, ok)
	assert.Equal(t, 128, impl.size)
	assert.Equal(t, qrcode.Highest, impl.errorCorrectionLevel)

	fallback := NewQRCodeService(&config.Config{}).(*qrcodeService)
	assert.Equal(t, 256, fallback.size)
}

func TestGenerateProductLabel(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := newQRCodeService(size, "M")

		png, err := svc.GenerateProductLabel(testProduct())
		require.NoError(t, err)
		require.Greater(t, len(png), len(pngMagic))
		assert.Equal(t, pngMagic, png[:4])
	}
}

func TestGenerateProductLabel_NilProduct(t *testing.T) {
	_, err := newQRCodeService(256, "M").GenerateProductLabel(nil)
	require.Error(t, err)
}

func TestLabelPayload(t *testing.T) {
	product := testProduct()

	payload, err := labelPayload(product)
	require.NoError(t, err)

	var data LabelData
	require.NoError(t, json.Unmarshal([]byte(payload), &data))
	assert.Equal(t, product.ID.String(), data.ProductID)
	assert.Equal(t, "blue-mug", data.Handle)
	assert.Equal(t, "MUG-001", data.SKU)
	assert.Equal(t, labelType, data.Type)
}
