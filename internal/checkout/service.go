package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrimartlabs/agrimart-backend/internal/cart"
	"github.com/agrimartlabs/agrimart-backend/internal/orders"
	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
	pkgerrors "github.com/agrimartlabs/agrimart-backend/pkg/errors"
	"github.com/agrimartlabs/agrimart-backend/pkg/metrics"
	"github.com/agrimartlabs/agrimart-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartGateway interface {
	Lines(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]cart.LineRow, error)
	ClearWithTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type inventoryReserver interface {
	Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

// Input captures the buyer-provided data for order placement.
type Input struct {
	ShippingAddress types.ShippingAddress
	PaymentMethod   enums.PaymentMethod
	PaymentResult   *types.PaymentResult
}

// Service turns a cart into an order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	tx        txRunner
	cart      cartGateway
	orders    orders.Repository
	inventory inventoryReserver
	metrics   *metrics.CheckoutMetrics
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartSvc cartGateway,
	ordersRepo orders.Repository,
	inventory inventoryReserver,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart gateway required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory reserver required")
	}
	return &service{
		tx:        tx,
		cart:      cartSvc,
		orders:    ordersRepo,
		inventory: inventory,
		metrics:   checkoutMetrics,
	}, nil
}

// PlaceOrder runs the whole checkout in one transaction: the cart lines are
// read, prices and names are frozen onto the order, stock is reserved per
// line and the cart is emptied. Any failure rolls everything back, so stock
// is never partially reserved and the cart survives a failed checkout.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	started := time.Now()

	order, err := s.placeOrder(ctx, userID, input)
	s.metrics.ObserveDuration(time.Since(started))
	if err != nil {
		s.metrics.IncPlaced(outcomeLabel(err))
		return nil, err
	}

	s.metrics.IncPlaced("success")
	return order, nil
}

func (s *service) placeOrder(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if missing := input.ShippingAddress.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}

	orderID := uuid.New()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lines, err := s.cart.Lines(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			if !line.IsActive {
				return pkgerrors.New(pkgerrors.CodeConflict, "product no longer available").
					WithDetails(map[string]any{"product_id": line.ProductID.String()})
			}
			lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, models.OrderItem{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				LineTotal:   lineTotal,
			})
			total = total.Add(lineTotal)
		}

		repo := s.orders.WithTx(tx)
		order := &models.Order{
			ID:              orderID,
			UserID:          userID,
			Status:          enums.OrderStatusPending,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   input.PaymentMethod,
			PaymentResult:   input.PaymentResult,
			TotalAmount:     total,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		for _, item := range items {
			if err := s.inventory.Reserve(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return s.cart.ClearWithTx(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

func outcomeLabel(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeConflict:
		return "insufficient_stock"
	case pkgerrors.CodeValidation:
		return "invalid_input"
	default:
		return "error"
	}
}
