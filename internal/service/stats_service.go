package service

import (
	"context"
	"fmt"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// StatsService computes the dashboard summaries from live order and
// wishlist data.
type StatsService interface {
	UserStats(ctx context.Context, userID int64) (domain.UserDashboardStats, error)
	AdminStats(ctx context.Context) (domain.AdminDashboardStats, error)
}

type statsService struct {
	orders repository.OrderStore
	saved  repository.SavedProductStore
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(orders repository.OrderStore, saved repository.SavedProductStore) StatsService {
	return &statsService{orders: orders, saved: saved}
}

func (s *statsService) UserStats(ctx context.Context, userID int64) (domain.UserDashboardStats, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return domain.UserDashboardStats{}, err
	}
	saved, err := s.saved.ListSavedProducts(ctx, userID)
	if err != nil {
		return domain.UserDashboardStats{}, err
	}

	stats := domain.UserDashboardStats{
		Orders: len(orders),
		Saved:  len(saved),
	}
	for _, order := range orders {
		if order.Status == domain.OrderStatusCompleted {
			stats.Completed++
		}
	}
	return stats, nil
}

// AdminStats aggregates storefront-wide figures. The growth percentages are
// simulated; there is no historical data to derive them from.
func (s *statsService) AdminStats(ctx context.Context) (domain.AdminDashboardStats, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return domain.AdminDashboardStats{}, err
	}

	var totalSales int64
	customers := make(map[int64]struct{})
	for _, order := range orders {
		totalSales += order.TotalAmount
		customers[order.UserID] = struct{}{}
	}

	var aov int64
	if len(orders) > 0 {
		aov = totalSales / int64(len(orders))
	}

	return domain.AdminDashboardStats{
		Sales:           fmt.Sprintf("$%d", totalSales),
		Orders:          len(orders),
		Customers:       len(customers),
		AOV:             fmt.Sprintf("$%d", aov),
		SalesGrowth:     12.5,
		OrdersGrowth:    8.3,
		CustomersGrowth: 5.2,
		AOVGrowth:       -3.1,
	}, nil
}
