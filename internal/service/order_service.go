package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// OrderLineInput is one submitted checkout line. Price is the price at time
// of purchase as captured by the client from the cart; it is never re-read
// from the live product.
type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// OrderInput carries the checkout header fields and lines.
type OrderInput struct {
	TotalAmount   int64
	Status        domain.OrderStatus
	PaymentMethod string
	Details       map[string]any
	Items         []OrderLineInput
}

// OrderService converts priced line lists into permanent orders and reads
// them back.
type OrderService interface {
	Checkout(ctx context.Context, userID int64, in OrderInput) (domain.OrderWithItems, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrderWithItems(ctx context.Context, id int64) (domain.OrderWithItems, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
}

type orderService struct {
	orders  repository.OrderStore
	carts   repository.CartStore
	catalog repository.CatalogStore
	tx      repository.TxManager
	now     func() time.Time
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orders repository.OrderStore, carts repository.CartStore, catalog repository.CatalogStore, tx repository.TxManager) OrderService {
	return &orderService{
		orders:  orders,
		carts:   carts,
		catalog: catalog,
		tx:      tx,
		now:     time.Now,
	}
}

// Checkout validates the header and every line up front, then commits the
// order, its items and the full cart clear inside one transaction scope.
// Either the whole order materializes or nothing does; a malformed line can
// never leave a partially-populated order behind.
func (s *orderService) Checkout(ctx context.Context, userID int64, in OrderInput) (domain.OrderWithItems, error) {
	if err := validateOrderInput(in); err != nil {
		return domain.OrderWithItems{}, err
	}

	status := in.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	var out domain.OrderWithItems
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, line := range in.Items {
			if _, err := s.catalog.GetProduct(ctx, line.ProductID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: product %d does not exist", repository.ErrIntegrity, line.ProductID)
				}
				return err
			}
		}

		order, err := s.orders.CreateOrder(ctx, domain.Order{
			UserID:        userID,
			TotalAmount:   in.TotalAmount,
			Status:        status,
			OrderDate:     s.now().UTC(),
			PaymentMethod: in.PaymentMethod,
			Details:       in.Details,
		})
		if err != nil {
			return err
		}

		for _, line := range in.Items {
			if _, err := s.orders.CreateOrderItem(ctx, domain.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}); err != nil {
				return err
			}
		}

		out, err = s.orders.GetOrderWithItems(ctx, order.ID)
		if err != nil {
			return err
		}

		// Checkout always empties the whole cart, regardless of whether its
		// lines match what was ordered.
		return clearUserCart(ctx, s.carts, userID)
	})
	return out, err
}

func validateOrderInput(in OrderInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order requires at least one item", ErrValidation)
	}
	if in.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must not be negative", ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, in.Status)
	}
	for i, line := range in.Items {
		if line.ProductID < 1 {
			return fmt.Errorf("%w: item %d has no product", ErrValidation, i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, i)
		}
		if line.Price < 0 {
			return fmt.Errorf("%w: item %d price must not be negative", ErrValidation, i)
		}
	}
	return nil
}

func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}

func (s *orderService) GetOrderWithItems(ctx context.Context, id int64) (domain.OrderWithItems, error) {
	return s.orders.GetOrderWithItems(ctx, id)
}

// UpdateStatus sets the order status. It rejects unknown statuses and
// transitions out of a terminal state; the finer-grained lifecycle order is
// left to the caller.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	var out domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if current.Status.Terminal() && status != current.Status {
			return fmt.Errorf("%w: order %d is already %s", ErrValidation, id, current.Status)
		}
		out, err = s.orders.SetOrderStatus(ctx, id, status)
		return err
	})
	return out, err
}
