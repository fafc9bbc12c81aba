package service

import (
	"fmt"
	"sort"
	"strings"

	"catalog-service/internal/models"
)

// DefaultPageSize is applied by the transport adapter when the caller
// does not specify a limit.
const DefaultPageSize = 20

// Sort orders
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// SearchFilter narrows a product snapshot. All fields are optional and
// combined with logical AND; tags match on set intersection.
type SearchFilter struct {
	Query          string
	Category       string
	MinPrice       *float64
	MaxPrice       *float64
	Tags           []string
	Status         string
	SortBy         string
	SortOrder      string
	IncludeMetrics bool
}

// PageRequest selects the [Offset, Offset+Limit) window of a result set.
type PageRequest struct {
	Limit  int
	Offset int
}

// DefaultPage returns the pagination applied when the caller sends none.
func DefaultPage() PageRequest {
	return PageRequest{Limit: DefaultPageSize}
}

// PageInfo describes the position of a page within the full result set.
type PageInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// ProductPage is the uniform list envelope for every list query.
type ProductPage struct {
	Items      []*models.Product `json:"items"`
	TotalCount int               `json:"totalCount"`
	HasMore    bool              `json:"hasMore"`
	Pagination PageInfo          `json:"pagination"`
}

// applyFilter keeps the products matching every set field of the filter.
func applyFilter(products []*models.Product, f SearchFilter) []*models.Product {
	matched := make([]*models.Product, 0, len(products))
	term := strings.ToLower(f.Query)

	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if len(f.Tags) > 0 && !anyTagMatches(p, f.Tags) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func anyTagMatches(p *models.Product, tags []string) bool {
	for _, tag := range tags {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

// sortProducts orders products by the named field in place. The sort is
// stable: records comparing equal keep their relative insertion order.
// A field this catalog does not know compares as its zero value, which
// leaves the order untouched.
func sortProducts(products []*models.Product, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}

	desc := strings.EqualFold(sortOrder, SortDesc)
	sort.SliceStable(products, func(i, j int) bool {
		less, ok := compareByField(products[i], products[j], sortBy)
		if !ok {
			return false
		}
		if desc {
			return !less
		}
		return less
	})
}

// compareByField reports whether a sorts before b on the given field in
// ascending order. ok is false when the values compare equal, so the
// stable sort leaves such pairs alone in both directions.
func compareByField(a, b *models.Product, field string) (less, ok bool) {
	switch normalizeSortField(field) {
	case "name":
		return a.Name < b.Name, a.Name != b.Name
	case "description":
		return a.Description < b.Description, a.Description != b.Description
	case "category":
		return a.Category < b.Category, a.Category != b.Category
	case "sku":
		return a.SKU < b.SKU, a.SKU != b.SKU
	case "status":
		return a.Status < b.Status, a.Status != b.Status
	case "price":
		return a.Price < b.Price, a.Price != b.Price
	case "stockquantity":
		return a.StockQuantity < b.StockQuantity, a.StockQuantity != b.StockQuantity
	case "createdat":
		return a.CreatedAt.Before(b.CreatedAt), !a.CreatedAt.Equal(b.CreatedAt)
	case "updatedat":
		return a.UpdatedAt.Before(b.UpdatedAt), !a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return false, false
	}
}

// normalizeSortField accepts both camelCase and snake_case field names,
// since both conventions cross the transport boundary.
func normalizeSortField(field string) string {
	return strings.ReplaceAll(strings.ToLower(field), "_", "")
}

// paginate slices the [Offset, Offset+Limit) window out of items and
// computes the page metadata over the pre-slice total.
func paginate(items []*models.Product, page PageRequest) (*ProductPage, error) {
	if page.Limit < 0 || page.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidArgument)
	}

	total := len(items)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	window := make([]*models.Product, end-start)
	copy(window, items[start:end])

	info := PageInfo{
		CurrentPage: 1,
		PageSize:    page.Limit,
		TotalItems:  total,
	}
	if page.Limit > 0 {
		info.CurrentPage = page.Offset/page.Limit + 1
		info.TotalPages = (total + page.Limit - 1) / page.Limit
	}

	return &ProductPage{
		Items:      window,
		TotalCount: total,
		HasMore:    page.Offset+page.Limit < total,
		Pagination: info,
	}, nil
}

// stripMetrics removes metrics from every product in the page. The
// field is absent in the response, not zeroed.
func stripMetrics(products []*models.Product) {
	for _, p := range products {
		p.Metrics = nil
	}
}
