package models

import "time"

// Product statuses
const (
	StatusActive       = "ACTIVE"
	StatusInactive     = "INACTIVE"
	StatusOutOfStock   = "OUT_OF_STOCK"
	StatusDiscontinued = "DISCONTINUED"
	StatusDraft        = "DRAFT"
	StatusArchived     = "ARCHIVED"
)

// Stock operations
const (
	StockOpAdd      = "ADD"
	StockOpSubtract = "SUBTRACT"
	StockOpSet      = "SET"
)

// ValidStatus reports whether s is one of the known product statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOutOfStock,
		StatusDiscontinued, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// ProductMetrics holds per-product engagement counters.
// Present on a product only when the caller asks for metrics.
type ProductMetrics struct {
	ViewsCount    int64   `json:"viewsCount"`
	SalesCount    int64   `json:"salesCount"`
	AverageRating float64 `json:"averageRating"`
	ReviewsCount  int64   `json:"reviewsCount"`
	WishlistCount int64   `json:"wishlistCount"`
}

// Product represents a catalog item
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	Currency      string            `json:"currency"`
	StockQuantity int               `json:"stockQuantity"`
	SKU           string            `json:"sku"`
	ImageURLs     []string          `json:"imageUrls"`
	Status        string            `json:"status"`
	Attributes    map[string]string `json:"attributes"`
	Tags          []string          `json:"tags"`
	Metrics       *ProductMetrics   `json:"metrics,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy so callers can hand products around
// without sharing slices or maps with the store.
func (p *Product) Clone() *Product {
	c := *p
	if p.ImageURLs != nil {
		c.ImageURLs = append([]string(nil), p.ImageURLs...)
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Attributes != nil {
		c.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	if p.Metrics != nil {
		m := *p.Metrics
		c.Metrics = &m
	}
	return &c
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsArchived reports whether the product has been soft-deleted.
func (p *Product) IsArchived() bool {
	return p.Status == StatusArchived
}
