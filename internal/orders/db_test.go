package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrimartlabs/agrimart-backend/internal/catalog"
	"github.com/agrimartlabs/agrimart-backend/pkg/db"
	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
	"github.com/agrimartlabs/agrimart-backend/pkg/metrics"
	"github.com/agrimartlabs/agrimart-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
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

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), client)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), client, catalogSvc, metrics.NewCheckoutMetrics(nil))
	require.NoError(t, err)
	return svc, conn
}

func mustCreateTestOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.OrderStatus, method enums.PaymentMethod) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: status,
		ShippingAddress: types.ShippingAddress{
			FullName: "Meena Patil",
			Phone:    "9123456780",
			Address1: "Plot 7, APMC Yard",
			City:     "Hubli",
			State:    "Karnataka",
			Pincode:  "580020",
		},
		PaymentMethod: method,
		TotalAmount:   decimal.RequireFromString("500.00"),
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}

func mustCreateOrderLine(t *testing.T, conn *gorm.DB, orderID uuid.UUID, stock, qty int) *models.OrderItem {
	t.Helper()

	product := &models.Product{
		ID:        uuid.New(),
		Name:      "Seedling Tray",
		Category:  enums.ProductCategoryTools,
		UnitPrice: decimal.RequireFromString("50.00"),
		IsActive:  true,
	}
	require.NoError(t, conn.Create(product).Error)
	require.NoError(t, conn.Create(&models.InventoryItem{ProductID: product.ID, AvailableQty: stock}).Error)

	item := &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
		UnitPrice:   product.UnitPrice,
		LineTotal:   product.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
	require.NoError(t, conn.Create(item).Error)
	return item
}

func availableQty(t *testing.T, conn *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var item models.InventoryItem
	require.NoError(t, conn.Where("product_id = ?", productID).First(&item).Error)
	return item.AvailableQty
}

func backdateOrder(t *testing.T, conn *gorm.DB, orderID uuid.UUID, createdAt time.Time) {
	t.Helper()

	require.NoError(t, conn.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("created_at", createdAt).Error)
}
