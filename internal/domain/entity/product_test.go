package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductState_IsValid(t *testing.T) {
	assert.True(t, ProductStateActive.IsValid())
	assert.True(t, ProductStateInactive.IsValid())
	assert.False(t, ProductState("archived").IsValid())
	assert.False(t, ProductState("").IsValid())
}

func TestProduct_Deactivate(t *testing.T) {
	product := &Product{State: ProductStateActive}
	now := time.Now()

	product.Deactivate(now)

	assert.False(t, product.IsActive())
	assert.Equal(t, ProductStateInactive, product.State)
	assert.Equal(t, now, product.UpdatedAt)

	// deactivating twice keeps it inactive
	product.Deactivate(now.Add(time.Minute))
	assert.Equal(t, ProductStateInactive, product.State)
}

func TestProduct_IsOwnedBy(t *testing.T) {
	owner := uuid.New()
	product := &Product{UserID: owner}

	assert.True(t, product.IsOwnedBy(owner))
	assert.False(t, product.IsOwnedBy(uuid.New()))
}

func TestProduct_JSONKeys(t *testing.T) {
	product := &Product{
		ID:           uuid.New(),
		Handle:       "blue-mug",
		SKU:          "MUG-001",
		Grams:        decimal.RequireFromString("350.5"),
		Price:        decimal.RequireFromString("12.90"),
		ComparePrice: decimal.RequireFromString("15"),
		State:        ProductStateActive,
	}

	raw, err := json.Marshal(product)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{"id", "handle", "title", "description", "sku", "grams", "stock", "price", "comparePrice", "barcode", "state", "userId"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "12.9", fields["price"])
}

func TestUser_PasswordHashNotSerialized(t *testing.T) {
	user := &User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "$2a$10$secret"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}
