package server

import (
	"fmt"
	"net/http"
	"time"

	"parakeet/internal/config"
	custommiddleware "parakeet/internal/middleware"
	"parakeet/internal/repository"
	"parakeet/internal/service"
	"parakeet/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, store *repository.MemoryStore) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Rate limiting only runs when Redis is configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Initialize services
	tx := repository.NewMemoryTx(store)
	userService := service.NewUserService(store)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store, store, tx)
	orderService := service.NewOrderService(store, store, store, tx)
	savedService := service.NewSavedProductService(store, store, tx)
	statsService := service.NewStatsService(store, store)

	var completer service.ChatCompleter
	if cfg.OpenAI.APIKey != "" {
		completer = openai.NewClient(cfg.OpenAI.APIKey)
	}
	assistantService := service.NewAssistantService(store, completer, cfg.OpenAI.Model)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, statsService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	savedHandler := transport.NewSavedProductHandler(savedService, logger)
	assistantHandler := transport.NewAssistantHandler(assistantService, logger)

	adminOnly := custommiddleware.RequireAdmin(logger)

	// All storefront routes resolve the current user first. The rate
	// limiter runs after Identity so budgets are per user, not per IP,
	// and the health endpoint is never limited.
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.Identity(userService, cfg.Demo.UserID, logger))
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
				Window:            time.Minute,
				KeyPrefix:         "ratelimit",
			}, logger))
		}

		userHandler.RegisterRoutes(r, adminOnly)
		catalogHandler.RegisterRoutes(r, adminOnly)
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r, adminOnly)
		savedHandler.RegisterRoutes(r)
		assistantHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
