package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatusFor(t *testing.T) {
	assert.Equal(t, StockOut, StockStatusFor(0))
	assert.Equal(t, StockOut, StockStatusFor(-3))
	assert.Equal(t, StockLow, StockStatusFor(1))
	assert.Equal(t, StockLow, StockStatusFor(5))
	assert.Equal(t, StockIn, StockStatusFor(6))
	assert.Equal(t, StockIn, StockStatusFor(200))
}

func TestEntityJSONIsSnakeCase(t *testing.T) {
	jsonKeys := func(v interface{}) map[string]interface{} {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	for name, m := range map[string]map[string]interface{}{
		"user":    jsonKeys(User{Model: Model{ID: 7}, Email: "a@b.test"}),
		"product": jsonKeys(Product{Model: Model{ID: 7}, Title: "Mug"}),
		"review":  jsonKeys(Review{Model: Model{ID: 7}, Rating: 4}),
	} {
		assert.Contains(t, m, "id", name)
		assert.Contains(t, m, "created_at", name)
		assert.Contains(t, m, "updated_at", name)
		assert.NotContains(t, m, "ID", name)
		assert.NotContains(t, m, "CreatedAt", name)
		assert.NotContains(t, m, "DeletedAt", name)
		assert.NotContains(t, m, "deleted_at", name)
	}

	user := jsonKeys(User{Model: Model{ID: 1}, Password: "hash"})
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")
}
