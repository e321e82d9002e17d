package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrimartlabs/agrimart-backend/internal/cart"
	"github.com/agrimartlabs/agrimart-backend/internal/catalog"
	"github.com/agrimartlabs/agrimart-backend/internal/orders"
	"github.com/agrimartlabs/agrimart-backend/pkg/db"
	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
	"github.com/agrimartlabs/agrimart-backend/pkg/metrics"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS products (
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
);`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT PRIMARY KEY,
  available_qty INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  shipping_address TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  payment_result TEXT,
  total_amount TEXT NOT NULL,
  is_paid INTEGER NOT NULL DEFAULT 0,
  paid_at DATETIME,
  is_delivered INTEGER NOT NULL DEFAULT 0,
  delivered_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  line_total TEXT NOT NULL
);`,
	}
	for _, schema := range schemas {
		require.NoError(t, conn.Exec(schema).Error)
	}
	return conn
}

type testEnv struct {
	conn     *gorm.DB
	client   *db.Client
	checkout Service
	carts    cart.Service
	catalog  catalog.Service
	orders   orders.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)

	catalogRepo := catalog.NewRepository(conn)
	catalogSvc, err := catalog.NewService(catalogRepo, client)
	require.NoError(t, err)

	cartSvc, err := cart.NewService(cart.NewRepository(conn), catalogRepo, client)
	require.NoError(t, err)

	ordersRepo := orders.NewRepository(conn)

	checkoutSvc, err := NewService(client, cartSvc, ordersRepo, catalogSvc, metrics.NewCheckoutMetrics(nil))
	require.NoError(t, err)

	return &testEnv{
		conn:     conn,
		client:   client,
		checkout: checkoutSvc,
		carts:    cartSvc,
		catalog:  catalogSvc,
		orders:   ordersRepo,
	}
}

func (e *testEnv) mustCreateProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  enums.ProductCategoryPesticides,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  true,
	}
	require.NoError(t, e.conn.Create(product).Error)
	require.NoError(t, e.conn.Create(&models.InventoryItem{ProductID: product.ID, AvailableQty: stock}).Error)
	return product
}

func (e *testEnv) stockOf(t *testing.T, productID uuid.UUID) int {
	t.Helper()

	availability, err := e.catalog.GetAvailability(context.Background(), productID)
	require.NoError(t, err)
	return availability.Stock
}
