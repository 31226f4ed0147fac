package transport

import (
	"net/http"
	"testing"

	"parakeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	decodeJSON(t, w, &products)
	assert.Len(t, products, 9)
}

func TestListCategories(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []domain.Category
	decodeJSON(t, w, &categories)
	assert.Len(t, categories, 5)
}

func TestProductsByCategory(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/categories/4/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	decodeJSON(t, w, &products)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, int64(4), p.CategoryID)
	}
}

func TestFeaturedProducts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/products/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	decodeJSON(t, w, &products)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.True(t, p.Featured)
	}
}

func TestPopularServices(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/services/popular", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	decodeJSON(t, w, &products)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.True(t, p.Popular)
		assert.Equal(t, domain.ProductTypeService, p.Type)
	}
}

func TestSearchProducts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/products/search?q=seo", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	decodeJSON(t, w, &products)
	assert.NotEmpty(t, products)

	// Blank query is rejected, not treated as match-all
	w = doRequest(t, router, http.MethodGet, "/api/products/search?q=", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductByIDJoinsCourse(t *testing.T) {
	router, _ := newTestRouter(t)

	// Product 7 is the AI Strategy Masterclass course
	w := doRequest(t, router, http.MethodGet, "/api/products/7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var product domain.ProductWithCourse
	decodeJSON(t, w, &product)
	assert.Equal(t, domain.ProductTypeCourse, product.Type)
	require.NotNil(t, product.Course)
	assert.Equal(t, 10, product.Course.Modules)
}

func TestProductByIDErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingCourses(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/courses/trending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var courses []domain.ProductWithCourse
	decodeJSON(t, w, &courses)
	require.Len(t, courses, 2)
	assert.GreaterOrEqual(t, courses[0].Sales, courses[1].Sales)
	for _, c := range courses {
		require.NotNil(t, c.Course)
	}
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	router, _ := newTestRouter(t)

	body := CreateCategoryRequest{Name: "Consulting", Slug: "consulting", Icon: "ri-user-line"}

	w := doRequest(t, router, http.MethodPost, "/api/categories", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/categories", body, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)

	var category domain.Category
	decodeJSON(t, w, &category)
	assert.Equal(t, "consulting", category.Slug)
	assert.NotZero(t, category.ID)
}

func TestCreateProductValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	// Missing required fields
	w := doRequest(t, router, http.MethodPost, "/api/products", map[string]any{"name": "X"}, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown category
	w = doRequest(t, router, http.MethodPost, "/api/products", CreateProductRequest{
		Name:        "Data Integration",
		Description: "Connect your data sources",
		Price:       19900,
		Type:        "service",
		CategoryID:  42,
	}, asAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/products", CreateProductRequest{
		Name:        "Data Integration",
		Description: "Connect your data sources",
		Price:       19900,
		Type:        "service",
		CategoryID:  1,
		Available:   true,
	}, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)

	var product domain.Product
	decodeJSON(t, w, &product)
	assert.Equal(t, int64(10), product.ID)
}

func TestCreateCourse(t *testing.T) {
	router, _ := newTestRouter(t)

	// Product 1 is a service, not a course
	w := doRequest(t, router, http.MethodPost, "/api/courses", CreateCourseRequest{
		ProductID: 1, Modules: 4, Duration: 120,
	}, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Product 7 already has course details
	w = doRequest(t, router, http.MethodPost, "/api/courses", CreateCourseRequest{
		ProductID: 7, Modules: 4, Duration: 120,
	}, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
