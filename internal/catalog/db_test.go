package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  image_url TEXT,
  keywords TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	inventory := `
CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT PRIMARY KEY,
  available_qty INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(inventory).Error)
	return conn
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  enums.ProductCategorySeeds,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  true,
	}
	require.NoError(t, tx.Create(product).Error, fmt.Sprintf("create product %s", name))
	require.NoError(t, tx.Create(&models.InventoryItem{
		ProductID:    product.ID,
		AvailableQty: stock,
	}).Error)
	return product
}
