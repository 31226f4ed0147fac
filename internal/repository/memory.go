package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"parakeet/internal/domain"
)

// MemoryStore is the in-memory entity store: one map per entity type keyed by
// id, with a monotonically increasing counter per type starting at 1. All
// access goes through the RWMutex; multi-step aggregate mutations take the
// write lock once via MemoryTx and mark the context so nested calls skip
// their own locking.
type MemoryStore struct {
	mu sync.RWMutex

	nextUserID         int64
	nextCategoryID     int64
	nextProductID      int64
	nextCourseID       int64
	nextOrderID        int64
	nextOrderItemID    int64
	nextCartID         int64
	nextCartItemID     int64
	nextSavedProductID int64

	users         map[int64]domain.User
	categories    map[int64]domain.Category
	products      map[int64]domain.Product
	courses       map[int64]domain.Course
	orders        map[int64]domain.Order
	orderItems    map[int64]domain.OrderItem
	carts         map[int64]domain.Cart
	cartItems     map[int64]domain.CartItem
	savedProducts map[int64]domain.SavedProduct
}

// NewMemoryStore creates an empty store. Callers seed it explicitly; tests
// get isolated stores per case.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:         1,
		nextCategoryID:     1,
		nextProductID:      1,
		nextCourseID:       1,
		nextOrderID:        1,
		nextOrderItemID:    1,
		nextCartID:         1,
		nextCartItemID:     1,
		nextSavedProductID: 1,
		users:              make(map[int64]domain.User),
		categories:         make(map[int64]domain.Category),
		products:           make(map[int64]domain.Product),
		courses:            make(map[int64]domain.Course),
		orders:             make(map[int64]domain.Order),
		orderItems:         make(map[int64]domain.OrderItem),
		carts:              make(map[int64]domain.Cart),
		cartItems:          make(map[int64]domain.CartItem),
		savedProducts:      make(map[int64]domain.SavedProduct),
	}
}

var (
	_ UserStore         = (*MemoryStore)(nil)
	_ CatalogStore      = (*MemoryStore)(nil)
	_ CartStore         = (*MemoryStore)(nil)
	_ OrderStore        = (*MemoryStore)(nil)
	_ SavedProductStore = (*MemoryStore)(nil)
)

// transaction-aware locking helpers

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.RLock()
	}
}

func (m *MemoryStore) runlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.RUnlock()
	}
}

func (m *MemoryStore) wlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.Lock()
	}
}

func (m *MemoryStore) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.Unlock()
	}
}

// MemoryTx serializes aggregate mutations by holding the store's write lock
// for the duration of fn. Carts of different users still contend on the one
// lock, which is acceptable at this store's scale; reads outside transactions
// proceed concurrently.
type MemoryTx struct {
	store *MemoryStore
}

func NewMemoryTx(store *MemoryStore) *MemoryTx {
	return &MemoryTx{store: store}
}

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// User methods

func (m *MemoryStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (m *MemoryStore) UpdateUser(ctx context.Context, id int64, update UserUpdate) (domain.User, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Language != nil {
		user.Language = *update.Language
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	m.users[id] = user
	return user, nil
}

// Category methods

func (m *MemoryStore) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	category.ID = m.nextCategoryID
	m.nextCategoryID++
	m.categories[category.ID] = category
	return category, nil
}

func (m *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	category, ok := m.categories[id]
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return category, nil
}

func (m *MemoryStore) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return domain.Category{}, ErrNotFound
}

// Product methods

func (m *MemoryStore) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	product.ID = m.nextProductID
	m.nextProductID++
	m.products[product.ID] = product
	return product, nil
}

func (m *MemoryStore) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return product, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.filterProducts(func(domain.Product) bool { return true }), nil
}

func (m *MemoryStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.filterProducts(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (m *MemoryStore) ListFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.filterProducts(func(p domain.Product) bool { return p.Featured }), nil
}

func (m *MemoryStore) ListPopularServices(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.filterProducts(func(p domain.Product) bool {
		return p.Popular && p.Type == domain.ProductTypeService
	}), nil
}

// SearchProducts matches the query as a case-insensitive substring of the
// product name or description. A single term only; no ranking.
func (m *MemoryStore) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(query)
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.filterProducts(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}), nil
}

// filterProducts must be called with at least the read lock held.
func (m *MemoryStore) filterProducts(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, product := range m.products {
		if keep(product) {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Course methods

func (m *MemoryStore) CreateCourse(ctx context.Context, course domain.Course) (domain.Course, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	course.ID = m.nextCourseID
	m.nextCourseID++
	m.courses[course.ID] = course
	return course, nil
}

func (m *MemoryStore) GetCourseByProductID(ctx context.Context, productID int64) (domain.Course, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, course := range m.courses {
		if course.ProductID == productID {
			return course, nil
		}
	}
	return domain.Course{}, ErrNotFound
}

// ListTrendingCourses joins course-type products with their satellite
// records, orders by sales descending and truncates to limit. A course
// product without a satellite record is skipped rather than treated as
// fatal, since the store accepts unvalidated foreign keys at write time.
func (m *MemoryStore) ListTrendingCourses(ctx context.Context, limit int) ([]domain.ProductWithCourse, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.ProductWithCourse, 0)
	for _, product := range m.products {
		if product.Type != domain.ProductTypeCourse {
			continue
		}
		course, ok := m.findCourseByProduct(product.ID)
		if !ok {
			continue
		}
		out = append(out, domain.ProductWithCourse{Product: product, Course: &course})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// findCourseByProduct must be called with at least the read lock held.
func (m *MemoryStore) findCourseByProduct(productID int64) (domain.Course, bool) {
	for _, course := range m.courses {
		if course.ProductID == productID {
			return course, true
		}
	}
	return domain.Course{}, false
}

// Cart methods

func (m *MemoryStore) CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	cart.ID = m.nextCartID
	m.nextCartID++
	m.carts[cart.ID] = cart
	return cart, nil
}

func (m *MemoryStore) GetCartByUserID(ctx context.Context, userID int64) (domain.Cart, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, cart := range m.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}
	return domain.Cart{}, ErrNotFound
}

// GetCartItems returns the cart's lines joined with their products. A line
// whose product is missing surfaces ErrIntegrity instead of panicking.
func (m *MemoryStore) GetCartItems(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.CartLine, 0)
	for _, item := range m.cartItems {
		if item.CartID != cartID {
			continue
		}
		product, ok := m.products[item.ProductID]
		if !ok {
			return nil, ErrIntegrity
		}
		out = append(out, domain.CartLine{CartItem: item, Product: product})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CartItem.ID < out[j].CartItem.ID })
	return out, nil
}

func (m *MemoryStore) FindCartItem(ctx context.Context, cartID, productID int64) (domain.CartItem, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, item := range m.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item, nil
		}
	}
	return domain.CartItem{}, ErrNotFound
}

func (m *MemoryStore) CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	item.ID = m.nextCartItemID
	m.nextCartItemID++
	m.cartItems[item.ID] = item
	return item, nil
}

// UpdateCartItemQuantity replaces the line's quantity. A quantity of zero or
// less deletes the line; the returned record then carries quantity 0 as a
// removal signal and is no longer persisted.
func (m *MemoryStore) UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) (domain.CartItem, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	item, ok := m.cartItems[id]
	if !ok {
		return domain.CartItem{}, ErrNotFound
	}
	if quantity <= 0 {
		delete(m.cartItems, id)
		item.Quantity = 0
		return item, nil
	}
	item.Quantity = quantity
	m.cartItems[id] = item
	return item, nil
}

func (m *MemoryStore) RemoveCartItem(ctx context.Context, id int64) (bool, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.cartItems[id]; !ok {
		return false, nil
	}
	delete(m.cartItems, id)
	return true, nil
}

// Order methods

func (m *MemoryStore) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	order.ID = m.nextOrderID
	m.nextOrderID++
	m.orders[order.ID] = order
	return order, nil
}

func (m *MemoryStore) CreateOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	item.ID = m.nextOrderItemID
	m.nextOrderItemID++
	m.orderItems[item.ID] = item
	return item, nil
}

func (m *MemoryStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return order, nil
}

func (m *MemoryStore) GetOrderWithItems(ctx context.Context, id int64) (domain.OrderWithItems, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	order, ok := m.orders[id]
	if !ok {
		return domain.OrderWithItems{}, ErrNotFound
	}
	items := make([]domain.OrderLine, 0)
	for _, item := range m.orderItems {
		if item.OrderID != id {
			continue
		}
		product, ok := m.products[item.ProductID]
		if !ok {
			return domain.OrderWithItems{}, ErrIntegrity
		}
		items = append(items, domain.OrderLine{OrderItem: item, Product: product})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].OrderItem.ID < items[j].OrderItem.ID })
	return domain.OrderWithItems{Order: order, Items: items}, nil
}

func (m *MemoryStore) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetOrderStatus replaces the order status unconditionally. Transition
// legality is enforced by the caller, not here.
func (m *MemoryStore) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	order.Status = status
	m.orders[id] = order
	return order, nil
}

// Saved product methods

func (m *MemoryStore) ListSavedProducts(ctx context.Context, userID int64) ([]domain.SavedProductWithProduct, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.SavedProductWithProduct, 0)
	for _, saved := range m.savedProducts {
		if saved.UserID != userID {
			continue
		}
		product, ok := m.products[saved.ProductID]
		if !ok {
			return nil, ErrIntegrity
		}
		out = append(out, domain.SavedProductWithProduct{SavedProduct: saved, Product: product})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedProduct.ID < out[j].SavedProduct.ID })
	return out, nil
}

func (m *MemoryStore) FindSavedProduct(ctx context.Context, userID, productID int64) (domain.SavedProduct, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, saved := range m.savedProducts {
		if saved.UserID == userID && saved.ProductID == productID {
			return saved, nil
		}
	}
	return domain.SavedProduct{}, ErrNotFound
}

func (m *MemoryStore) CreateSavedProduct(ctx context.Context, saved domain.SavedProduct) (domain.SavedProduct, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	saved.ID = m.nextSavedProductID
	m.nextSavedProductID++
	m.savedProducts[saved.ID] = saved
	return saved, nil
}

func (m *MemoryStore) DeleteSavedProduct(ctx context.Context, userID, productID int64) (bool, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for id, saved := range m.savedProducts {
		if saved.UserID == userID && saved.ProductID == productID {
			delete(m.savedProducts, id)
			return true, nil
		}
	}
	return false, nil
}
