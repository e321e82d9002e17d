package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrimartlabs/agrimart-backend/pkg/db/models"
	pkgerrors "github.com/agrimartlabs/agrimart-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productReader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the single-cart-per-user operations.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Lines(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]LineRow, error)
	ClearWithTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	products productReader
	tx       txRunner
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository, products productReader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, products: products, tx: tx}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	rows, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart lines")
	}
	return buildView(rows), nil
}

// AddItem merges the quantity into an existing line or inserts a new one. The
// cart itself is created on first use. Stock is deliberately not checked here;
// availability is enforced at checkout.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindCartByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
			}
			record, err = repo.CreateCart(ctx, &models.Cart{ID: uuid.New(), UserID: userID})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}

		item, err := repo.FindItem(ctx, record.ID, productID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
			}
			createErr := repo.CreateItem(ctx, &models.CartItem{
				ID:        uuid.New(),
				CartID:    record.ID,
				ProductID: productID,
				Quantity:  quantity,
			})
			if createErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "insert cart item")
			}
			return nil
		}

		if err := repo.UpdateItemQuantity(ctx, item.ID, item.Quantity+quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		item, err := repo.FindItem(ctx, record.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}

		if err := repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes the line if present. Removing an absent line is not an
// error.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	record, err := s.repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return buildView(nil), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if err := s.repo.DeleteItem(ctx, record.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}

	return s.GetCart(ctx, userID)
}

// Clear empties the cart. Clearing a missing or already-empty cart succeeds.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.clear(ctx, s.repo, userID)
}

// ClearWithTx empties the cart inside the caller's transaction. Checkout uses
// this so an aborted order leaves the cart intact.
func (s *service) ClearWithTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return s.clear(ctx, s.repo.WithTx(tx), userID)
}

func (s *service) clear(ctx context.Context, repo Repository, userID uuid.UUID) error {
	record, err := repo.FindCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := repo.DeleteItems(ctx, record.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// Lines returns the raw joined cart rows for checkout. A nil tx reads from
// the base connection.
func (s *service) Lines(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]LineRow, error) {
	rows, err := s.repo.WithTx(tx).ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart lines")
	}
	return rows, nil
}

func buildView(rows []LineRow) *View {
	view := &View{
		Items:    make([]Line, 0, len(rows)),
		Subtotal: decimal.Zero,
	}
	for _, row := range rows {
		lineSubtotal := row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
		view.Items = append(view.Items, Line{
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			UnitPrice:    row.UnitPrice,
			Quantity:     row.Quantity,
			LineSubtotal: lineSubtotal,
		})
		view.Subtotal = view.Subtotal.Add(lineSubtotal)
	}
	return view
}
