package transport

import (
	"net/http"

	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest adds a product to the current user's cart
type AddCartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartItemRequest replaces a line's quantity; zero removes the line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartHandler handles HTTP requests for the cart aggregate
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// GetCart returns the current user's cart with recomputed totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// AddItem adds a product to the cart, merging with an existing line
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req AddCartItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Cart item added",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, cart)
}

// UpdateItem replaces a line's quantity
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), userID, itemID, *req.Quantity)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// RemoveItem deletes a line; removing a missing line still returns the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	itemID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cart, _, err := h.cartService.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}
