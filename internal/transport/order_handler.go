package transport

import (
	"net/http"

	"parakeet/internal/domain"
	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderItemRequest is one submitted checkout line. Price is the price at
// purchase time, copied from the cart by the client.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
	Price     int64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	TotalAmount   int64              `json:"totalAmount" validate:"gte=0"`
	Status        string             `json:"status" validate:"omitempty,oneof=pending processing in_progress completed cancelled"`
	PaymentMethod string             `json:"paymentMethod" validate:"required"`
	Details       map[string]any     `json:"details"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest sets a new order status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing in_progress completed cancelled"`
}

// OrderHandler handles HTTP requests for orders and checkout
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.Checkout)
		r.Get("/{id}", h.GetOrder)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Patch("/{id}/status", h.UpdateStatus)
		})
	})
}

// ListOrders returns the current user's order history
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// GetOrder returns one order with its joined line items
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderWithItems(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Checkout converts the submitted lines into a permanent order and empties
// the current user's cart
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateOrderRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	items := make([]service.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.Checkout(r.Context(), userID, service.OrderInput{
		TotalAmount:   req.TotalAmount,
		Status:        domain.OrderStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Details:       req.Details,
		Items:         items,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("total_amount", order.TotalAmount),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// UpdateStatus sets an order's status; gated by RequireAdmin
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}
