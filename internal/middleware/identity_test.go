package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parakeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	users map[int64]domain.User
}

func (s stubResolver) GetUser(ctx context.Context, id int64) (domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, errors.New("no such user")
	}
	return user, nil
}

func newIdentityHandler(resolver stubResolver, demoUserID int64) (http.Handler, *domain.User) {
	var resolved domain.User
	handler := Identity(resolver, demoUserID, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserID(r.Context())
		role, _ := GetUserRole(r.Context())
		resolved = domain.User{ID: id, Role: role, IsAdmin: IsAdmin(r.Context())}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &resolved
}

func testUsers() stubResolver {
	return stubResolver{users: map[int64]domain.User{
		1: {ID: 1, Role: "admin", IsAdmin: true},
		2: {ID: 2, Role: "user"},
	}}
}

func TestIdentityDefaultsToDemoUser(t *testing.T) {
	handler, resolved := newIdentityHandler(testUsers(), 2)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), resolved.ID)
	assert.Equal(t, "user", resolved.Role)
	assert.False(t, resolved.IsAdmin)
}

func TestIdentityHeaderOverride(t *testing.T) {
	handler, resolved := newIdentityHandler(testUsers(), 2)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("X-User-ID", "1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), resolved.ID)
	assert.True(t, resolved.IsAdmin)
}

func TestIdentityRejectsMalformedHeader(t *testing.T) {
	handler, _ := newIdentityHandler(testUsers(), 2)

	for _, header := range []string{"abc", "-3", "0"} {
		req := httptest.NewRequest("GET", "/api/cart", nil)
		req.Header.Set("X-User-ID", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "header %q", header)
	}
}

func TestIdentityUnknownUser(t *testing.T) {
	handler, _ := newIdentityHandler(testUsers(), 2)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("X-User-ID", "99")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(zap.NewNop())(next)

	req := httptest.NewRequest("GET", "/api/admin/dashboard-stats", nil)
	ctx := context.WithValue(req.Context(), IsAdminKey, true)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, w.Code)

	// No admin flag in context
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/dashboard-stats", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
