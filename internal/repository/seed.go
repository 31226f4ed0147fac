package repository

import (
	"context"
	"fmt"
	"time"

	"parakeet/internal/domain"
)

// Seed loads the demo storefront data: two users, five categories, the
// product catalog with two course satellites, one cart, two historical
// orders and a couple of saved products.
func Seed(ctx context.Context, store *MemoryStore) error {
	if _, err := store.CreateUser(ctx, domain.User{
		Username: "admin",
		Password: "admin123",
		Email:    "admin@apexbart.com",
		FullName: "Admin User",
		Role:     "admin",
		Language: "en",
		IsAdmin:  true,
	}); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	demoUser, err := store.CreateUser(ctx, domain.User{
		Username: "user",
		Password: "user123",
		Email:    "user@example.com",
		FullName: "John Doe",
		Role:     "user",
		Language: "en",
	})
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	categories := []domain.Category{
		{Name: "AI Services", Slug: "ai-services", Icon: "ri-robot-line", Color: "#2B5AEC"},
		{Name: "Copywriting", Slug: "copywriting", Icon: "ri-file-text-line", Color: "#6C63FF"},
		{Name: "Tools", Slug: "tools", Icon: "ri-tools-line", Color: "#10B981"},
		{Name: "Courses", Slug: "courses", Icon: "ri-book-open-line", Color: "#F59E0B"},
		{Name: "Analytics", Slug: "analytics", Icon: "ri-pie-chart-line", Color: "#3B82F6"},
	}
	for _, c := range categories {
		if _, err := store.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
	}

	products := []domain.Product{
		{
			Name:        "AI Chatbot Development",
			Description: "Custom AI chatbot development for your business with seamless integration",
			Price:       29900,
			ImageURL:    "https://images.unsplash.com/photo-1677442136019-21780ecad0b3",
			Type:        domain.ProductTypeService,
			CategoryID:  1,
			Rating:      49,
			Sales:       120,
			Featured:    true,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Custom training on your business data",
					"Seamless website integration",
					"24/7 customer support automation",
					"Multi-platform deployment",
				},
				"duration": "2-3 weeks",
				"support":  "12 months included",
			},
		},
		{
			Name:        "Predictive Analytics System",
			Description: "AI-powered analytics to predict customer behavior and business trends",
			Price:       39900,
			ImageURL:    "https://images.unsplash.com/photo-1551288049-bebda4e38f71",
			Type:        domain.ProductTypeService,
			CategoryID:  1,
			Rating:      47,
			Sales:       85,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Data collection and cleansing",
					"Custom ML model development",
					"Interactive dashboard",
					"Quarterly model retraining",
				},
				"duration": "4-6 weeks",
				"support":  "12 months included",
			},
		},
		{
			Name:        "AI Content Generator",
			Description: "Generate high-quality content for your website, blog, and social media",
			Price:       19900,
			ImageURL:    "https://images.unsplash.com/photo-1526628953301-3e589a6a8b74",
			Type:        domain.ProductTypeService,
			CategoryID:  1,
			Rating:      46,
			Sales:       210,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Blog post generation",
					"Social media content",
					"Product descriptions",
					"Email newsletters",
				},
				"duration": "Ongoing subscription",
				"support":  "Unlimited during subscription",
			},
		},
		{
			Name:        "AI Customer Segmentation",
			Description: "Advanced customer segmentation using machine learning algorithms",
			Price:       24900,
			ImageURL:    "https://images.unsplash.com/photo-1543286386-713bdd548da4",
			Type:        domain.ProductTypeService,
			CategoryID:  1,
			Rating:      48,
			Sales:       65,
			Featured:    true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Customer behavior analysis",
					"Segmentation model development",
					"Marketing strategy recommendations",
					"Quarterly reports",
				},
				"duration": "2-3 weeks initial setup",
				"support":  "6 months included",
			},
		},
		{
			Name:        "SEO & Content Strategy",
			Description: "Comprehensive SEO analysis and content strategy development",
			Price:       34900,
			ImageURL:    "https://images.unsplash.com/photo-1432888498266-38ffec3eaf0a",
			Type:        domain.ProductTypeService,
			CategoryID:  2,
			Rating:      46,
			Sales:       95,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Keyword research",
					"Competitor analysis",
					"Content calendar",
					"On-page SEO optimization",
				},
				"duration": "2 weeks",
				"support":  "30 days revisions",
			},
		},
		{
			Name:        "SEO Automation Tool",
			Description: "Automated SEO analysis and optimization tool for websites",
			Price:       14900,
			ImageURL:    "https://images.unsplash.com/photo-1560472355-536de3962603",
			Type:        domain.ProductTypeTool,
			CategoryID:  3,
			Rating:      47,
			Sales:       85,
			Featured:    true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Keyword rank tracking",
					"Competitor analysis",
					"Content optimization suggestions",
					"Backlink monitoring",
				},
				"duration": "Lifetime access",
				"support":  "12 months included",
			},
		},
		{
			Name:        "AI Strategy Masterclass",
			Description: "Comprehensive course on implementing AI strategy in your business",
			Price:       19900,
			ImageURL:    "https://images.unsplash.com/photo-1581472723648-909f4851d4ae",
			Type:        domain.ProductTypeCourse,
			CategoryID:  4,
			Rating:      48,
			Sales:       150,
			Featured:    true,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"AI business use cases",
					"Implementation roadmap",
					"ROI calculation",
					"Case studies",
				},
				"level":         "Intermediate to Advanced",
				"certification": true,
			},
		},
		{
			Name:        "Python for Automation",
			Description: "Learn to automate business processes using Python",
			Price:       14900,
			ImageURL:    "https://images.unsplash.com/photo-1552664730-d307ca884978",
			Type:        domain.ProductTypeCourse,
			CategoryID:  4,
			Rating:      47,
			Sales:       180,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Python fundamentals",
					"Web scraping",
					"Data processing",
					"Scheduling and automation",
				},
				"level":         "Beginner to Intermediate",
				"certification": true,
			},
		},
		{
			Name:        "Website Modernization",
			Description: "Transform your outdated website into a modern, responsive design",
			Price:       49900,
			ImageURL:    "https://images.unsplash.com/photo-1544256718-3bcf237f3974",
			Type:        domain.ProductTypeService,
			CategoryID:  3,
			Rating:      48,
			Sales:       150,
			Popular:     true,
			Available:   true,
			Details: map[string]any{
				"features": []string{
					"Responsive design",
					"Performance optimization",
					"SEO improvements",
					"Content migration",
				},
				"duration": "4-6 weeks",
				"support":  "30 days post-launch",
			},
		},
	}

	created := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out, err := store.CreateProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		created = append(created, out)
	}

	courses := []domain.Course{
		{ProductID: created[6].ID, Modules: 10, Duration: 360},
		{ProductID: created[7].ID, Modules: 12, Duration: 480},
	}
	for _, c := range courses {
		if _, err := store.CreateCourse(ctx, c); err != nil {
			return fmt.Errorf("seed course for product %d: %w", c.ProductID, err)
		}
	}

	completedOrder, err := store.CreateOrder(ctx, domain.Order{
		UserID:        demoUser.ID,
		TotalAmount:   29900,
		Status:        domain.OrderStatusCompleted,
		OrderDate:     time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "telegram",
	})
	if err != nil {
		return fmt.Errorf("seed completed order: %w", err)
	}
	if _, err := store.CreateOrderItem(ctx, domain.OrderItem{
		OrderID:   completedOrder.ID,
		ProductID: created[0].ID,
		Quantity:  1,
		Price:     29900,
	}); err != nil {
		return fmt.Errorf("seed completed order item: %w", err)
	}

	inProgressOrder, err := store.CreateOrder(ctx, domain.Order{
		UserID:        demoUser.ID,
		TotalAmount:   19900,
		Status:        domain.OrderStatusInProgress,
		OrderDate:     time.Date(2023, time.April, 28, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "telegram",
	})
	if err != nil {
		return fmt.Errorf("seed in-progress order: %w", err)
	}
	if _, err := store.CreateOrderItem(ctx, domain.OrderItem{
		OrderID:   inProgressOrder.ID,
		ProductID: created[6].ID,
		Quantity:  1,
		Price:     19900,
	}); err != nil {
		return fmt.Errorf("seed in-progress order item: %w", err)
	}

	if _, err := store.CreateCart(ctx, domain.Cart{UserID: demoUser.ID}); err != nil {
		return fmt.Errorf("seed cart: %w", err)
	}

	for _, productID := range []int64{created[5].ID, created[4].ID} {
		if _, err := store.CreateSavedProduct(ctx, domain.SavedProduct{
			UserID:    demoUser.ID,
			ProductID: productID,
		}); err != nil {
			return fmt.Errorf("seed saved product %d: %w", productID, err)
		}
	}

	return nil
}
