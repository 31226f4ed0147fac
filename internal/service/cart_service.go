package service

import (
	"context"
	"errors"
	"fmt"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// CartService maintains the cart aggregate invariant: at most one line per
// product, with quantity >= 1, and totals derived from the live lines on
// every read.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (domain.CartView, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartView, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (domain.CartView, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (domain.CartView, bool, error)
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	carts   repository.CartStore
	catalog repository.CatalogStore
	tx      repository.TxManager
}

// NewCartService creates a new instance of CartService
func NewCartService(carts repository.CartStore, catalog repository.CatalogStore, tx repository.TxManager) CartService {
	return &cartService{carts: carts, catalog: catalog, tx: tx}
}

// GetCart returns the user's cart, creating it lazily on first access.
func (s *cartService) GetCart(ctx context.Context, userID int64) (domain.CartView, error) {
	var view domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.getOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		view, err = s.buildView(ctx, cart)
		return err
	})
	return view, err
}

// AddItem adds quantity of a product to the user's cart. An existing line for
// the same product is merged by summing quantities rather than duplicated.
// The product must exist; the check happens here so the store never holds a
// dangling cart line.
func (s *cartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartView, error) {
	if quantity < 1 {
		return domain.CartView{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	var view domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: product %d does not exist", repository.ErrIntegrity, productID)
			}
			return err
		}

		cart, err := s.getOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		existing, err := s.carts.FindCartItem(ctx, cart.ID, productID)
		switch {
		case err == nil:
			if _, err := s.carts.UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
				return err
			}
		case errors.Is(err, repository.ErrNotFound):
			if _, err := s.carts.CreateCartItem(ctx, domain.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			}); err != nil {
				return err
			}
		default:
			return err
		}

		view, err = s.buildView(ctx, cart)
		return err
	})
	return view, err
}

// UpdateQuantity replaces a line's quantity. Zero or negative removes the
// line entirely.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (domain.CartView, error) {
	var view domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.carts.UpdateCartItemQuantity(ctx, itemID, quantity); err != nil {
			return err
		}
		cart, err := s.getOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		view, err = s.buildView(ctx, cart)
		return err
	})
	return view, err
}

// RemoveItem deletes a line unconditionally. Removing a missing id is a
// no-op; the returned bool reports whether a line was actually removed.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) (domain.CartView, bool, error) {
	var (
		view    domain.CartView
		removed bool
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.carts.RemoveCartItem(ctx, itemID)
		if err != nil {
			return err
		}
		cart, err := s.getOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		view, err = s.buildView(ctx, cart)
		return err
	})
	return view, removed, err
}

// Clear removes every line from the user's cart. Clearing an empty or
// not-yet-created cart is a no-op.
func (s *cartService) Clear(ctx context.Context, userID int64) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.clearCart(ctx, userID)
	})
}

// clearCart must run inside a transaction scope.
func (s *cartService) clearCart(ctx context.Context, userID int64) error {
	return clearUserCart(ctx, s.carts, userID)
}

// clearUserCart removes every line from the user's cart. Checkout shares it
// with CartService so both empty the cart the same way. A missing cart is a
// no-op. Must run inside a transaction scope.
func clearUserCart(ctx context.Context, carts repository.CartStore, userID int64) error {
	cart, err := carts.GetCartByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	lines, err := carts.GetCartItems(ctx, cart.ID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := carts.RemoveCartItem(ctx, line.CartItem.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *cartService) getOrCreateCart(ctx context.Context, userID int64) (domain.Cart, error) {
	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.carts.CreateCart(ctx, domain.Cart{UserID: userID})
	}
	return cart, err
}

// buildView recomputes the derived totals from the current lines. There is
// no cached total field to keep in sync.
func (s *cartService) buildView(ctx context.Context, cart domain.Cart) (domain.CartView, error) {
	lines, err := s.carts.GetCartItems(ctx, cart.ID)
	if err != nil {
		return domain.CartView{}, err
	}
	view := domain.CartView{ID: cart.ID, Items: lines}
	for _, line := range lines {
		view.TotalItems += line.Quantity
		view.TotalPrice += int64(line.Quantity) * line.Product.Price
	}
	return view, nil
}
