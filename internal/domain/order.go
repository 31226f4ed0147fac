package domain

import "time"

// OrderStatus is the order lifecycle state. Legal transitions are
// pending -> processing -> in_progress -> completed, with cancelled
// reachable from any non-terminal state. The store exposes an unconditional
// status set; enforcing legality is the caller's responsibility.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is an immutable (except status) record of a purchase.
// TotalAmount is in minor currency units.
type Order struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId"`
	TotalAmount   int64          `json:"totalAmount"`
	Status        OrderStatus    `json:"status"`
	OrderDate     time.Time      `json:"orderDate"`
	PaymentMethod string         `json:"paymentMethod"`
	Details       map[string]any `json:"details,omitempty"`
}

// OrderItem is one line of an order. Price is captured at order-creation
// time so historical orders stay accurate when catalog prices change.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// OrderLine is an order item joined with its resolved product.
type OrderLine struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderWithItems is the full order aggregate served to clients.
type OrderWithItems struct {
	Order
	Items []OrderLine `json:"items"`
}
