package transport

import (
	"net/http"
	"strconv"

	"parakeet/internal/domain"
	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest is the admin payload for adding a category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" validate:"required"`
	Icon  string `json:"icon" validate:"required"`
	Color string `json:"color"`
}

// CreateProductRequest is the admin payload for adding a product
type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Price       int64          `json:"price" validate:"gte=0"`
	ImageURL    string         `json:"imageUrl"`
	Type        string         `json:"type" validate:"required,oneof=service course tool"`
	CategoryID  int64          `json:"categoryId" validate:"required,gt=0"`
	Rating      int            `json:"rating" validate:"gte=0,lte=50"`
	Sales       int            `json:"sales" validate:"gte=0"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
	Available   bool           `json:"available"`
	Details     map[string]any `json:"details"`
}

// CreateCourseRequest is the admin payload for attaching course details
type CreateCourseRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Modules   int   `json:"modules" validate:"required,gt=0"`
	Duration  int   `json:"duration" validate:"required,gt=0"`
}

// CatalogHandler handles HTTP requests for categories, products and courses
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

// RegisterRoutes registers the catalog routes. The static product routes
// must be registered alongside /api/products/{id}; chi prefers the literal
// match so /featured and /search never shadow an id.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/categories/{categoryID}/products", h.ProductsByCategory)

	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/featured", h.FeaturedProducts)
	r.Get("/api/products/search", h.SearchProducts)
	r.Get("/api/products/{id}", h.ProductByID)

	r.Get("/api/services/popular", h.PopularServices)
	r.Get("/api/courses/trending", h.TrendingCourses)

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/api/categories", h.CreateCategory)
		r.Post("/api/products", h.CreateProduct)
		r.Post("/api/courses", h.CreateCourse)
	})
}

// ListCategories returns every category
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListProducts returns the whole catalog
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.Products(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ProductsByCategory filters the catalog by category id
func (h *CatalogHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	products, err := h.catalogService.ProductsByCategory(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// FeaturedProducts returns products flagged as featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.FeaturedProducts(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// PopularServices returns popular products of type service
func (h *CatalogHandler) PopularServices(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.PopularServices(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// SearchProducts serves /api/products/search?q=term
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ProductByID returns one product, with course details joined for courses
func (h *CatalogHandler) ProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := h.catalogService.ProductByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// TrendingCourses returns the top courses by sales
func (h *CatalogHandler) TrendingCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.TrendingCourses(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, courses)
}

// CreateCategory adds a category; gated by RequireAdmin
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), domain.Category{
		Name:  req.Name,
		Slug:  req.Slug,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// CreateProduct adds a product; gated by RequireAdmin
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Type:        domain.ProductType(req.Type),
		CategoryID:  req.CategoryID,
		Rating:      req.Rating,
		Sales:       req.Sales,
		Featured:    req.Featured,
		Popular:     req.Popular,
		Available:   req.Available,
		Details:     req.Details,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// CreateCourse attaches course details to a product; gated by RequireAdmin
func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	course, err := h.catalogService.CreateCourse(r.Context(), domain.Course{
		ProductID: req.ProductID,
		Modules:   req.Modules,
		Duration:  req.Duration,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, course)
}

// pathID parses a positive integer URL parameter, writing the 400 itself.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
