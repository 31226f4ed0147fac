package transport

import (
	"net/http"
	"testing"

	"parakeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSavedProductsSeeded(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/saved-products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved []domain.SavedProductWithProduct
	decodeJSON(t, w, &saved)
	require.Len(t, saved, 2)
	for _, s := range saved {
		assert.NotEmpty(t, s.Product.Name)
	}
}

func TestSaveProductIsIdempotent(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/saved-products", SaveProductRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	var saved []domain.SavedProductWithProduct
	decodeJSON(t, w, &saved)
	require.Len(t, saved, 3)

	// Saving again does not grow the list
	w = doRequest(t, router, http.MethodPost, "/api/saved-products", SaveProductRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeJSON(t, w, &saved)
	assert.Len(t, saved, 3)
}

func TestSaveUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/saved-products", SaveProductRequest{ProductID: 404})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRemoveSavedProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	// Product 6 is seeded as saved for the demo user
	w := doRequest(t, router, http.MethodDelete, "/api/saved-products/6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var saved []domain.SavedProductWithProduct
	decodeJSON(t, w, &saved)
	assert.Len(t, saved, 1)

	// Removing an absent record still returns the list
	w = doRequest(t, router, http.MethodDelete, "/api/saved-products/6", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
