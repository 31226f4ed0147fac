package repository

import (
	"context"
	"errors"

	"parakeet/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	// Callers decide whether absence is a 404-class condition.
	ErrNotFound = errors.New("record not found")

	// ErrIntegrity is returned when a foreign key resolves to a missing
	// record, e.g. a cart item whose product has vanished. The store accepts
	// unvalidated foreign keys at write time, so joins surface this instead
	// of panicking.
	ErrIntegrity = errors.New("referential integrity violation")
)

// UserUpdate carries the fields a profile update may change. Nil pointers
// leave the current value untouched (shallow merge).
type UserUpdate struct {
	FullName  *string
	Email     *string
	Language  *string
	AvatarURL *string
}

// UserStore provides access to user records.
type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (domain.User, error)
}

// CatalogStore provides access to categories, products and course satellite
// records, including the read-only derived views over the product collection.
type CatalogStore interface {
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)

	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	ListPopularServices(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)

	CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error)
	GetCourseByProductID(ctx context.Context, productID int64) (domain.Course, error)
	ListTrendingCourses(ctx context.Context, limit int) ([]domain.ProductWithCourse, error)
}

// CartStore provides the cart and cart-item primitives the aggregate logic
// builds on. Merge and total computation live in the service layer.
type CartStore interface {
	CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error)
	GetCartItems(ctx context.Context, cartID int64) ([]domain.CartLine, error)
	FindCartItem(ctx context.Context, cartID, productID int64) (domain.CartItem, error)
	CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) (domain.CartItem, error)
	RemoveCartItem(ctx context.Context, id int64) (bool, error)
}

// OrderStore provides access to orders and their line items.
type OrderStore interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	CreateOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	GetOrderWithItems(ctx context.Context, id int64) (domain.OrderWithItems, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
}

// SavedProductStore provides access to wishlist records.
type SavedProductStore interface {
	ListSavedProducts(ctx context.Context, userID int64) ([]domain.SavedProductWithProduct, error)
	FindSavedProduct(ctx context.Context, userID, productID int64) (domain.SavedProduct, error)
	CreateSavedProduct(ctx context.Context, saved domain.SavedProduct) (domain.SavedProduct, error)
	DeleteSavedProduct(ctx context.Context, userID, productID int64) (bool, error)
}

// TxManager runs fn under a single mutual-exclusion scope so multi-step
// aggregate mutations (cart merge, order + item batch, cart clear) are atomic
// with respect to concurrent requests.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
