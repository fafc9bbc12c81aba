package store

import (
	"time"

	"catalog-service/internal/models"
)

// Seed inserts the demo catalog if the store is empty.
func (s *Store) Seed() error {
	if s.Len() > 0 {
		return nil
	}

	now := time.Now()
	for _, p := range demoCatalog(now) {
		if err := s.Insert(p); err != nil {
			return err
		}
	}
	return nil
}

func demoCatalog(now time.Time) []*models.Product {
	return []*models.Product{
		{
			ID:            "1",
			Name:          "iPhone 15 Pro",
			Description:   "Latest iPhone with advanced camera system and A17 Pro chip",
			Category:      "smartphones",
			Price:         999.99,
			Currency:      "USD",
			StockQuantity: 50,
			SKU:           "IPHONE-15-PRO-128",
			ImageURLs:     []string{"https://example.com/iphone15pro1.jpg", "https://example.com/iphone15pro2.jpg"},
			Status:        models.StatusActive,
			Attributes:    map[string]string{"color": "Natural Titanium", "storage": "128GB"},
			Tags:          []string{"premium", "flagship", "apple", "smartphone"},
			Metrics: &models.ProductMetrics{
				ViewsCount:    1250,
				SalesCount:    45,
				AverageRating: 4.8,
				ReviewsCount:  32,
				WishlistCount: 89,
			},
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now,
		},
		{
			ID:            "2",
			Name:          "MacBook Pro 16\"",
			Description:   "Professional laptop with M3 Pro chip for developers and creators",
			Category:      "laptops",
			Price:         2399.99,
			Currency:      "USD",
			StockQuantity: 25,
			SKU:           "MBP-16-M3PRO-512",
			ImageURLs:     []string{"https://example.com/macbook16pro1.jpg"},
			Status:        models.StatusActive,
			Attributes:    map[string]string{"processor": "M3 Pro", "memory": "18GB", "storage": "512GB"},
			Tags:          []string{"professional", "laptop", "apple", "developer"},
			Metrics: &models.ProductMetrics{
				ViewsCount:    890,
				SalesCount:    23,
				AverageRating: 4.9,
				ReviewsCount:  18,
				WishlistCount: 156,
			},
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-time.Hour),
		},
		{
			ID:            "3",
			Name:          "Sony WH-1000XM5",
			Description:   "Premium noise-canceling wireless headphones",
			Category:      "headphones",
			Price:         399.99,
			Currency:      "USD",
			StockQuantity: 100,
			SKU:           "SONY-WH1000XM5-BLACK",
			ImageURLs:     []string{"https://example.com/sony-headphones1.jpg"},
			Status:        models.StatusActive,
			Attributes:    map[string]string{"color": "Black", "connectivity": "Bluetooth 5.2"},
			Tags:          []string{"audio", "wireless", "noise-canceling", "sony"},
			Metrics: &models.ProductMetrics{
				ViewsCount:    2100,
				SalesCount:    156,
				AverageRating: 4.7,
				ReviewsCount:  89,
				WishlistCount: 234,
			},
			CreatedAt: now.Add(-72 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:            "4",
			Name:          "iPad Air",
			Description:   "Powerful and versatile tablet with M1 chip",
			Category:      "tablets",
			Price:         599.99,
			Currency:      "USD",
			StockQuantity: 5, // low stock on purpose, exercises the alert path
			SKU:           "IPAD-AIR-M1-64",
			ImageURLs:     []string{"https://example.com/ipadair1.jpg"},
			Status:        models.StatusActive,
			Attributes:    map[string]string{"processor": "M1", "storage": "64GB", "color": "Space Gray"},
			Tags:          []string{"tablet", "apple", "productivity", "creative"},
			Metrics: &models.ProductMetrics{
				ViewsCount:    1560,
				SalesCount:    78,
				AverageRating: 4.6,
				ReviewsCount:  45,
				WishlistCount: 123,
			},
			CreatedAt: now.Add(-96 * time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
	}
}
