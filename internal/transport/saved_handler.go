package transport

import (
	"net/http"

	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SaveProductRequest adds a product to the current user's wishlist
type SaveProductRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// SavedProductHandler handles HTTP requests for the wishlist
type SavedProductHandler struct {
	savedService service.SavedProductService
	logger       *zap.Logger
}

// NewSavedProductHandler creates a new SavedProductHandler
func NewSavedProductHandler(savedService service.SavedProductService, logger *zap.Logger) *SavedProductHandler {
	return &SavedProductHandler{savedService: savedService, logger: logger}
}

// RegisterRoutes registers the saved products routes
func (h *SavedProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/saved-products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Delete("/{productId}", h.Remove)
	})
}

// List returns the current user's saved products
func (h *SavedProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	saved, err := h.savedService.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, saved)
}

// Save adds a product to the wishlist; saving twice is a no-op
func (h *SavedProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req SaveProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	saved, err := h.savedService.Save(r.Context(), userID, req.ProductID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, saved)
}

// Remove deletes a product from the wishlist
func (h *SavedProductHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	saved, _, err := h.savedService.Remove(r.Context(), userID, productID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, saved)
}
