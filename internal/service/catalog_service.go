package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// TrendingCoursesLimit caps the trending courses view.
const TrendingCoursesLimit = 5

// CatalogService serves the read-only catalog views and the administrative
// create operations.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int64) (domain.ProductWithCourse, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	FeaturedProducts(ctx context.Context) ([]domain.Product, error)
	PopularServices(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	TrendingCourses(ctx context.Context) ([]domain.ProductWithCourse, error)

	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error)
}

type catalogService struct {
	catalog repository.CatalogStore
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(catalog repository.CatalogStore) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *catalogService) CategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	return s.catalog.GetCategoryBySlug(ctx, slug)
}

func (s *catalogService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

// ProductByID returns the product, with its course satellite joined when the
// product is of type course. A course product lacking its satellite is
// served without it rather than failing the read.
func (s *catalogService) ProductByID(ctx context.Context, id int64) (domain.ProductWithCourse, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return domain.ProductWithCourse{}, err
	}
	out := domain.ProductWithCourse{Product: product}
	if product.Type == domain.ProductTypeCourse {
		course, err := s.catalog.GetCourseByProductID(ctx, id)
		if err == nil {
			out.Course = &course
		} else if !errors.Is(err, repository.ErrNotFound) {
			return domain.ProductWithCourse{}, err
		}
	}
	return out, nil
}

func (s *catalogService) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.catalog.ListProductsByCategory(ctx, categoryID)
}

func (s *catalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListFeaturedProducts(ctx)
}

func (s *catalogService) PopularServices(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListPopularServices(ctx)
}

// SearchProducts rejects an empty query; otherwise it is a case-insensitive
// substring match over name and description.
func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", ErrValidation)
	}
	return s.catalog.SearchProducts(ctx, query)
}

func (s *catalogService) TrendingCourses(ctx context.Context) ([]domain.ProductWithCourse, error) {
	return s.catalog.ListTrendingCourses(ctx, TrendingCoursesLimit)
}

func (s *catalogService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.Name == "" || category.Slug == "" {
		return domain.Category{}, fmt.Errorf("%w: category requires a name and slug", ErrValidation)
	}
	if _, err := s.catalog.GetCategoryBySlug(ctx, category.Slug); err == nil {
		return domain.Category{}, fmt.Errorf("%w: category slug %q is taken", ErrValidation, category.Slug)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Category{}, err
	}
	return s.catalog.CreateCategory(ctx, category)
}

// CreateProduct checks the category reference before persisting so the
// catalog never holds a product pointing at a missing category.
func (s *catalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" || product.Description == "" {
		return domain.Product{}, fmt.Errorf("%w: product requires a name and description", ErrValidation)
	}
	if product.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: product price must not be negative", ErrValidation)
	}
	if _, err := s.catalog.GetCategory(ctx, product.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("%w: category %d does not exist", repository.ErrIntegrity, product.CategoryID)
		}
		return domain.Product{}, err
	}
	return s.catalog.CreateProduct(ctx, product)
}

// CreateCourse attaches a satellite record to an existing course-type
// product.
func (s *catalogService) CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error) {
	if course.Modules < 1 || course.Duration < 1 {
		return domain.Course{}, fmt.Errorf("%w: course requires modules and duration", ErrValidation)
	}
	product, err := s.catalog.GetProduct(ctx, course.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Course{}, fmt.Errorf("%w: product %d does not exist", repository.ErrIntegrity, course.ProductID)
		}
		return domain.Course{}, err
	}
	if product.Type != domain.ProductTypeCourse {
		return domain.Course{}, fmt.Errorf("%w: product %d is not a course", ErrValidation, course.ProductID)
	}
	if _, err := s.catalog.GetCourseByProductID(ctx, course.ProductID); err == nil {
		return domain.Course{}, fmt.Errorf("%w: product %d already has course details", ErrValidation, course.ProductID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Course{}, err
	}
	return s.catalog.CreateCourse(ctx, course)
}
