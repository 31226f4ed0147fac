package transport

import (
	"net/http"

	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the user-editable profile fields
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Language *string `json:"language" validate:"omitempty,min=2,max=8"`
}

// UserHandler handles HTTP requests for the user profile and dashboards
type UserHandler struct {
	userService  service.UserService
	statsService service.StatsService
	logger       *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, statsService service.StatsService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		statsService: statsService,
		logger:       logger,
	}
}

// RegisterRoutes registers the user, auth and dashboard routes
func (h *UserHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Post("/api/auth/login", h.Login)
	r.Get("/api/user", h.CurrentUser)
	r.Patch("/api/user", h.UpdateProfile)
	r.Get("/api/user/dashboard-stats", h.UserStats)

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/api/admin/dashboard-stats", h.AdminStats)
	})
}

// CurrentUser returns the user resolved by the identity middleware
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// Login handles the demo credential check
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile applies a partial update to the current user's profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateProfileRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Language: req.Language,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// UserStats returns the current user's dashboard summary
func (h *UserHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	stats, err := h.statsService.UserStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// AdminStats returns storefront-wide figures; gated by RequireAdmin
func (h *UserHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.AdminStats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}
