package domain

// UserDashboardStats summarizes a user's activity for the dashboard.
type UserDashboardStats struct {
	Orders    int `json:"orders"`
	Saved     int `json:"saved"`
	Completed int `json:"completed"`
}

// AdminDashboardStats summarizes storefront-wide sales figures. Sales and
// AOV are preformatted display strings; growth numbers are simulated.
type AdminDashboardStats struct {
	Sales           string  `json:"sales"`
	Orders          int     `json:"orders"`
	Customers       int     `json:"customers"`
	AOV             string  `json:"aov"`
	SalesGrowth     float64 `json:"salesGrowth"`
	OrdersGrowth    float64 `json:"ordersGrowth"`
	CustomersGrowth float64 `json:"customersGrowth"`
	AOVGrowth       float64 `json:"aovGrowth"`
}
