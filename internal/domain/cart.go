package domain

// Cart holds pending purchase lines. Exactly one cart exists per user,
// created lazily on first access.
type Cart struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
}

// CartItem is one (product, quantity) line within a cart. At most one line
// exists per product within a cart; duplicate additions merge by summing
// quantity. Quantity is always >= 1 while the line is persisted.
type CartItem struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cartId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartLine is a cart item joined with its resolved product.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

// CartView is the cart aggregate as served to clients. Totals are derived
// from the current lines on every read, never stored.
type CartView struct {
	ID         int64      `json:"id"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
}
