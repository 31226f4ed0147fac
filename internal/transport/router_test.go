package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"parakeet/internal/middleware"
	"parakeet/internal/repository"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	demoUserID  = 2
	adminHeader = "1"
)

// newTestRouter wires the seeded store through the identity middleware and
// every handler, mirroring the production router without transport-level
// middleware like CORS or rate limiting.
func newTestRouter(t *testing.T) (chi.Router, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	require.NoError(t, repository.Seed(context.Background(), store))

	logger := zap.NewNop()
	tx := repository.NewMemoryTx(store)

	userService := service.NewUserService(store)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store, store, tx)
	orderService := service.NewOrderService(store, store, store, tx)
	savedService := service.NewSavedProductService(store, store, tx)
	statsService := service.NewStatsService(store, store)
	assistantService := service.NewAssistantService(store, nil, "")

	adminOnly := middleware.RequireAdmin(logger)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.Identity(userService, demoUserID, logger))

		NewUserHandler(userService, statsService, logger).RegisterRoutes(r, adminOnly)
		NewCatalogHandler(catalogService, logger).RegisterRoutes(r, adminOnly)
		NewCartHandler(cartService, logger).RegisterRoutes(r)
		NewOrderHandler(orderService, logger).RegisterRoutes(r, adminOnly)
		NewSavedProductHandler(savedService, logger).RegisterRoutes(r)
		NewAssistantHandler(assistantService, logger).RegisterRoutes(r)
	})
	return router, store
}

type reqOpt func(*http.Request)

func asAdmin(r *http.Request) { r.Header.Set("X-User-ID", adminHeader) }

func doRequest(t *testing.T, router chi.Router, method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}
