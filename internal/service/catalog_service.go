package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"catalog-service/internal/bus"
	"catalog-service/internal/models"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductCache is the read-through cache for point lookups. A miss is
// (nil, nil); cache failures are logged and the store is authoritative.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product) error
	Invalidate(ctx context.Context, id string) error
}

// CatalogConfig carries catalog policy knobs.
type CatalogConfig struct {
	// EnforceUniqueSKUOnUpdate rejects partial updates that move a
	// product onto another active product's SKU. Off by default.
	EnforceUniqueSKUOnUpdate bool
}

// CatalogService owns all reads and validated mutations of the catalog.
type CatalogService struct {
	store  *store.Store
	bus    *bus.Bus
	cache  ProductCache
	cfg    CatalogConfig
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store, eventBus *bus.Bus, cache ProductCache, cfg CatalogConfig) *CatalogService {
	return &CatalogService{
		store:  st,
		bus:    eventBus,
		cache:  cache,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// GetProductsRequest selects products for a multi-get.
type GetProductsRequest struct {
	IDs            []string
	Status         string
	IncludeMetrics bool
	Page           PageRequest
}

// CreateProductRequest carries the input for a new product.
type CreateProductRequest struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	Currency      string            `json:"currency"`
	StockQuantity int               `json:"stockQuantity"`
	SKU           string            `json:"sku"`
	ImageURLs     []string          `json:"imageUrls"`
	Attributes    map[string]string `json:"attributes"`
	Tags          []string          `json:"tags"`
}

/// UpdateProductRequest is a partial update: nil fields are untouched.
type UpdateProductRequest struct {
	Name          *string           `json:"name"`
	Description   *string           `json:"description"`
	Category      *string           `json:"category"`
	Price         *float64          `json:"price"`
	Currency      *string           `json:"currency"`
	StockQuantity *int              `json:"stockQuantity"`
	SKU           *string           `json:"sku"`
	ImageURLs     []string          `json:"imageUrls"`
	Status        *string           `json:"status"`
	Attributes    map[string]string `json:"attributes"`
	Tags          []string          `json:"tags"`
}

// BulkUpdateItem is one independent update within a bulk call.
type BulkUpdateItem struct {
	ProductID string               `json:"productId"`
	Update    UpdateProductRequest `json:"update"`
}

// BulkUpdateResult reports per-item outcomes of a bulk update.
type BulkUpdateResult struct {
	UpdatedProducts []*models.Product `json:"updatedProducts"`
	FailedUpdates   []string          `json:"failedUpdates"`
	SuccessCount    int               `json:"successCount"`
	ErrorCount      int               `json:"errorCount"`
}

// DuplicateOverrides are the fields a duplicate may take from the
// caller instead of the source product.
type DuplicateOverrides struct {
	Name          *string           `json:"name"`
	Description   *string           `json:"description"`
	Category      *string           `json:"category"`
	Price         *float64          `json:"price"`
	Currency      *string           `json:"currency"`
	StockQuantity *int              `json:"stockQuantity"`
	ImageURLs     []string          `json:"imageUrls"`
	Attributes    map[string]string `json:"attributes"`
	Tags          []string          `json:"tags"`
}

// AvailabilityResult answers a stock availability check.
type AvailabilityResult struct {
	IsAvailable       bool       `json:"isAvailable"`
	AvailableQuantity int        `json:"availableQuantity"`
	Message           string     `json:"message"`
	RestockDate       *time.Time `json:"restockDate,omitempty"`
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string, includeMetrics bool) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	product := s.cachedProduct(ctx, id)
	if product == nil {
		var err error
		product, err = s.store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		s.cacheProduct(ctx, product)
	}

	if !includeMetrics {
		product.Metrics = nil
	}
	return product, nil
}

// GetProducts returns a page of products, optionally restricted to a
// set of ids and a status.
func (s *CatalogService) GetProducts(ctx context.Context, req GetProductsRequest) (*ProductPage, error) {
	_, span := util.StartSpan(ctx, "CatalogService.GetProducts")
	defer span.End()
	defer observeQuery("get_products")()

	snapshot := s.store.All()

	if len(req.IDs) > 0 {
		wanted := make(map[string]bool, len(req.IDs))
		for _, id := range req.IDs {
			wanted[id] = true
		}
		kept := snapshot[:0]
		for _, p := range snapshot {
			if wanted[p.ID] {
				kept = append(kept, p)
			}
		}
		snapshot = kept
	}

	if req.Status != "" {
		kept := snapshot[:0]
		for _, p := range snapshot {
			if strings.EqualFold(p.Status, req.Status) {
				kept = append(kept, p)
			}
		}
		snapshot = kept
	}

	page, err := paginate(snapshot, req.Page)
	if err != nil {
		return nil, err
	}
	if !req.IncludeMetrics {
		stripMetrics(page.Items)
	}
	return page, nil
}

// SearchProducts runs the full filter/sort/paginate pipeline.
func (s *CatalogService) SearchProducts(ctx context.Context, filter SearchFilter, page PageRequest) (*ProductPage, error) {
	_, span := util.StartSpan(ctx, "CatalogService.SearchProducts")
	defer span.End()
	defer observeQuery("search")()

	matched := applyFilter(s.store.All(), filter)
	sortProducts(matched, filter.SortBy, filter.SortOrder)

	result, err := paginate(matched, page)
	if err != nil {
		return nil, err
	}
	if !filter.IncludeMetrics {
		stripMetrics(result.Items)
	}
	return result, nil
}

// GetProductsByCategory returns a sorted page of one category.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, category, sortBy, sortOrder string, page PageRequest) (*ProductPage, error) {
	_, span := util.StartSpan(ctx, "CatalogService.GetProductsByCategory")
	defer span.End()
	defer observeQuery("by_category")()

	matched := applyFilter(s.store.All(), SearchFilter{Category: category})
	sortProducts(matched, sortBy, sortOrder)

	result, err := paginate(matched, page)
	if err != nil {
		return nil, err
	}
	stripMetrics(result.Items)
	return result, nil
}

// CheckAvailability reports whether the requested quantity is in stock.
func (s *CatalogService) CheckAvailability(ctx context.Context, id string, quantity int) (*AvailabilityResult, error) {
	_, span := util.StartSpan(ctx, "CatalogService.CheckAvailability")
	defer span.End()

	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidArgument)
	}

	product, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	result := &AvailabilityResult{
		IsAvailable:       product.StockQuantity >= quantity,
		AvailableQuantity: product.StockQuantity,
	}
	if result.IsAvailable {
		result.Message = "Product is available"
	} else {
		result.Message = fmt.Sprintf("Only %d items available", product.StockQuantity)
		restock := time.Now().Add(7 * 24 * time.Hour)
		result.RestockDate = &restock
	}
	return result, nil
}

// LowStockProducts returns active products at or below the threshold.
func (s *CatalogService) LowStockProducts(ctx context.Context, threshold int, page PageRequest) (*ProductPage, error) {
	_, span := util.StartSpan(ctx, "CatalogService.LowStockProducts")
	defer span.End()
	defer observeQuery("low_stock")()

	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must be non-negative", ErrInvalidArgument)
	}

	var matched []*models.Product
	for _, p := range s.store.All() {
		if p.Status == models.StatusActive && p.StockQuantity <= threshold {
			matched = append(matched, p)
		}
	}

	result, err := paginate(matched, page)
	if err != nil {
		return nil, err
	}
	stripMetrics(result.Items)
	return result, nil
}

// RecentProducts returns active products created within the last days.
func (s *CatalogService) RecentProducts(ctx context.Context, days int, page PageRequest) (*ProductPage, error) {
	_, span := util.StartSpan(ctx, "CatalogService.RecentProducts")
	defer span.End()
	defer observeQuery("recent")()

	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative", ErrInvalidArgument)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var matched []*models.Product
	for _, p := range s.store.All() {
		if p.Status == models.StatusActive && !p.CreatedAt.Before(cutoff) {
			matched = append(matched, p)
		}
	}

	result, err := paginate(matched, page)
	if err != nil {
		return nil, err
	}
	stripMetrics(result.Items)
	return result, nil
}

// TopSellingProducts returns up to limit products ordered by sales
// count, metrics included.
func (s *CatalogService) TopSellingProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	_, span := util.StartSpan(ctx, "CatalogService.TopSellingProducts")
	defer span.End()
	defer observeQuery("top_selling")()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", ErrInvalidArgument)
	}

	snapshot := s.store.All()
	sort.SliceStable(snapshot, func(i, j int) bool {
		return salesCount(snapshot[i]) > salesCount(snapshot[j])
	})

	if limit < len(snapshot) {
		snapshot = snapshot[:limit]
	}
	return snapshot, nil
}

// CreateProduct validates the input and inserts a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if err := validateCreate(req); err != nil {
		util.MutationsFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}
	if s.skuInUse(req.SKU, "") {
		util.MutationsFailedTotal.WithLabelValues("sku_conflict").Inc()
		return nil, fmt.Errorf("sku %s: %w", req.SKU, ErrAlreadyExists)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &models.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Currency:      req.Currency,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
		ImageURLs:     req.ImageURLs,
		Status:        models.StatusActive,
		Attributes:    req.Attributes,
		Tags:          req.Tags,
		Metrics:       &models.ProductMetrics{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if product.Currency == "" {
		product.Currency = "USD"
	}
	if product.ImageURLs == nil {
		product.ImageURLs = []string{}
	}
	if product.Attributes == nil {
		product.Attributes = map[string]string{}
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	if err := s.store.Insert(product); err != nil {
		util.MutationsFailedTotal.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU))

	s.publishCreated(product)
	return product.Clone(), nil
}

// UpdateProduct applies a partial merge of the non-nil request fields.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	product, err := s.store.Get(id)
	if err != nil {
		util.MutationsFailedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	if err := validateUpdate(req); err != nil {
		util.MutationsFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}
	if s.cfg.EnforceUniqueSKUOnUpdate && req.SKU != nil && *req.SKU != product.SKU && s.skuInUse(*req.SKU, id) {
		util.MutationsFailedTotal.WithLabelValues("sku_conflict").Inc()
		return nil, fmt.Errorf("sku %s: %w", *req.SKU, ErrAlreadyExists)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previousStatus := product.Status
	applyUpdate(product, req)
	product.UpdatedAt = time.Now()

	if err := s.store.Put(id, product); err != nil {
		util.MutationsFailedTotal.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	util.ProductsUpdatedTotal.Inc()
	s.invalidate(ctx, id)
	s.publishUpdated(product)
	if product.Status != previousStatus {
		s.publishStatusChanged(product, previousStatus)
	}
	return product.Clone(), nil
}

// UpdateProductStock adjusts stock with ADD, SUBTRACT or SET semantics.
func (s *CatalogService) UpdateProductStock(ctx context.Context, id, operation string, delta int) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProductStock")
	defer span.End()

	op := strings.ToUpper(operation)
	product, err := s.store.Get(id)
	if err != nil {
		util.MutationsFailedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	previousStock := product.StockQuantity
	var newStock int
	switch op {
	case models.StockOpAdd:
		newStock = product.StockQuantity + delta
	case models.StockOpSubtract:
		newStock = product.StockQuantity - delta
	case models.StockOpSet:
		newStock = delta
	default:
		util.MutationsFailedTotal.WithLabelValues("invalid_operation").Inc()
		return nil, fmt.Errorf("%w: unknown stock operation %q", ErrInvalidArgument, operation)
	}
	// Stock never goes negative.
	if newStock < 0 {
		newStock = 0
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	product.StockQuantity = newStock
	product.UpdatedAt = time.Now()
	if err := s.store.Put(id, product); err != nil {
		util.MutationsFailedTotal.WithLabelValues("store").Inc()
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	util.StockOperationsTotal.WithLabelValues(op).Inc()
	s.logger.Info("Stock updated",
		zap.String("product_id", id),
		zap.String("operation", op),
		zap.Int("previous", previousStock),
		zap.Int("current", newStock))

	s.invalidate(ctx, id)
	s.publishStockChanged(product, previousStock, op)
	s.publishUpdated(product)
	return product.Clone(), nil
}

// DeleteProduct archives (soft) or purges (hard) a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string, soft bool) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	product, err := s.store.Get(id)
	if err != nil {
		util.MutationsFailedTotal.WithLabelValues("not_found").Inc()
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if soft {
		previousStatus := product.Status
		product.Status = models.StatusArchived
		product.UpdatedAt = time.Now()
		if err := s.store.Put(id, product); err != nil {
			return fmt.Errorf("failed to archive product: %w", err)
		}
		util.ProductsDeletedTotal.WithLabelValues("soft").Inc()
		s.invalidate(ctx, id)
		if previousStatus != models.StatusArchived {
			s.publishStatusChanged(product, previousStatus)
		}
		s.publishDeleted(id, true)
	} else {
		if err := s.store.Delete(id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		util.ProductsDeletedTotal.WithLabelValues("hard").Inc()
		s.invalidate(ctx, id)
		s.publishDeleted(id, false)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id), zap.Bool("soft", soft))
	return nil
}

// BulkUpdateProducts applies each update independently. One item's
// failure never aborts its siblings.
func (s *CatalogService) BulkUpdateProducts(ctx context.Context, items []BulkUpdateItem) (*BulkUpdateResult, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.BulkUpdateProducts")
	defer span.End()

	result := &BulkUpdateResult{
		UpdatedProducts: []*models.Product{},
		FailedUpdates:   []string{},
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			result.FailedUpdates = append(result.FailedUpdates,
				fmt.Sprintf("Product %s not updated: %v", item.ProductID, err))
			result.ErrorCount++
			util.BulkItemsTotal.WithLabelValues("error").Inc()
			continue
		}

		update := item.Update
		updated, err := s.UpdateProduct(ctx, item.ProductID, &update)
		if err != nil {
			result.FailedUpdates = append(result.FailedUpdates,
				fmt.Sprintf("Product %s not updated: %v", item.ProductID, err))
			result.ErrorCount++
			util.BulkItemsTotal.WithLabelValues("error").Inc()
			continue
		}

		result.UpdatedProducts = append(result.UpdatedProducts, updated)
		result.SuccessCount++
		util.BulkItemsTotal.WithLabelValues("success").Inc()
	}

	return result, nil
}

// DuplicateProduct creates a copy of an existing product under a new
// SKU. Stock starts at zero unless overridden; Create validation and
// SKU uniqueness re-apply.
func (s *CatalogService) DuplicateProduct(ctx context.Context, id, newSKU string, overrides *DuplicateOverrides) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.DuplicateProduct")
	defer span.End()

	source, err := s.store.Get(id)
	if err != nil {
		util.MutationsFailedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	req := &CreateProductRequest{
		Name:        source.Name + " (Copy)",
		Description: source.Description,
		Category:    source.Category,
		Price:       source.Price,
		Currency:    source.Currency,
		SKU:         newSKU,
		ImageURLs:   source.ImageURLs,
		Attributes:  source.Attributes,
		Tags:        source.Tags,
	}
	if overrides != nil {
		if overrides.Name != nil {
			req.Name = *overrides.Name
		}
		if overrides.Description != nil {
			req.Description = *overrides.Description
		}
		if overrides.Category != nil {
			req.Category = *overrides.Category
		}
		if overrides.Price != nil {
			req.Price = *overrides.Price
		}
		if overrides.Currency != nil {
			req.Currency = *overrides.Currency
		}
		if overrides.StockQuantity != nil {
			req.StockQuantity = *overrides.StockQuantity
		}
		if overrides.ImageURLs != nil {
			req.ImageURLs = overrides.ImageURLs
		}
		if overrides.Attributes != nil {
			req.Attributes = overrides.Attributes
		}
		if overrides.Tags != nil {
			req.Tags = overrides.Tags
		}
	}

	return s.CreateProduct(ctx, req)
}

// skuInUse reports whether a non-archived product other than excludeID
// already claims the SKU. Archived products keep their SKU without
// blocking new claims.
func (s *CatalogService) skuInUse(sku, excludeID string) bool {
	for _, p := range s.store.All() {
		if p.ID != excludeID && !p.IsArchived() && p.SKU == sku {
			return true
		}
	}
	return false
}

func (s *CatalogService) cachedProduct(ctx context.Context, id string) *models.Product {
	if s.cache == nil {
		return nil
	}
	product, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		util.CacheHitsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Product cache lookup failed", zap.String("product_id", id), zap.Error(err))
		return nil
	}
	if product == nil {
		util.CacheHitsTotal.WithLabelValues("miss").Inc()
		return nil
	}
	util.CacheHitsTotal.WithLabelValues("hit").Inc()
	return product
}

func (s *CatalogService) cacheProduct(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warn("Product cache write failed", zap.String("product_id", product.ID), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}

func (s *CatalogService) publishCreated(product *models.Product) {
	event := &models.ProductCreatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeProductCreated),
		Product:   product.Clone(),
	}
	s.publish(models.TopicProductCreated, event)
	s.publish(models.TopicForCategory(models.TopicProductCreated, product.Category), event)
	s.publishUpdated(product)
	util.EventsPublishedTotal.WithLabelValues(models.EventTypeProductCreated).Inc()
}

func (s *CatalogService) publishUpdated(product *models.Product) {
	event := &models.ProductUpdatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeProductUpdated),
		Product:   product.Clone(),
	}
	s.publish(models.TopicProductUpdated, event)
	s.publish(models.TopicForProduct(models.TopicProductUpdated, product.ID), event)
	util.EventsPublishedTotal.WithLabelValues(models.EventTypeProductUpdated).Inc()
}

func (s *CatalogService) publishStatusChanged(product *models.Product, previous string) {
	event := &models.StatusChangedEvent{
		BaseEvent:      newBaseEvent(models.EventTypeStatusChanged),
		Product:        product.Clone(),
		PreviousStatus: previous,
	}
	s.publish(models.TopicStatusChanged, event)
	s.publish(models.TopicForProduct(models.TopicStatusChanged, product.ID), event)
	util.EventsPublishedTotal.WithLabelValues(models.EventTypeStatusChanged).Inc()
}

func (s *CatalogService) publishStockChanged(product *models.Product, previousStock int, op string) {
	event := &models.StockChangedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeStockChanged),
		Product:       product.Clone(),
		PreviousStock: previousStock,
		Operation:     op,
	}
	s.publish(models.TopicStockChanged, event)
	s.publish(models.TopicForProduct(models.TopicStockChanged, product.ID), event)
	util.EventsPublishedTotal.WithLabelValues(models.EventTypeStockChanged).Inc()
}

func (s *CatalogService) publishDeleted(id string, soft bool) {
	event := &models.ProductDeletedEvent{
		BaseEvent: newBaseEvent(models.EventTypeProductDeleted),
		ProductID: id,
		Soft:      soft,
	}
	s.publish(models.TopicProductDeleted, event)
	s.publish(models.TopicForProduct(models.TopicProductDeleted, id), event)
	util.EventsPublishedTotal.WithLabelValues(models.EventTypeProductDeleted).Inc()
}

func (s *CatalogService) publish(topic string, event interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

func salesCount(p *models.Product) int64 {
	if p.Metrics == nil {
		return 0
	}
	return p.Metrics.SalesCount
}

func observeQuery(name string) func() {
	start := time.Now()
	return func() {
		util.QueryLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// validateCreate collects every violation instead of failing fast.
func validateCreate(req *CreateProductRequest) error {
	var violations []string

	if len(strings.TrimSpace(req.Name)) < 2 {
		violations = append(violations, "product name must be at least 2 characters long")
	}
	if strings.TrimSpace(req.Category) == "" {
		violations = append(violations, "product category is required")
	}
	if strings.TrimSpace(req.SKU) == "" {
		violations = append(violations, "product SKU is required")
	}
	if req.Price < 0 {
		violations = append(violations, "product price cannot be negative")
	}
	if req.StockQuantity < 0 {
		violations = append(violations, "stock quantity cannot be negative")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// validateUpdate checks only the fields the partial update supplies.
func validateUpdate(req *UpdateProductRequest) error {
	var violations []string

	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		violations = append(violations, "product name must be at least 2 characters long")
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		violations = append(violations, "product category cannot be empty")
	}
	if req.SKU != nil && strings.TrimSpace(*req.SKU) == "" {
		violations = append(violations, "product SKU cannot be empty")
	}
	if req.Price != nil && *req.Price < 0 {
		violations = append(violations, "product price cannot be negative")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		violations = append(violations, "stock quantity cannot be negative")
	}
	if req.Status != nil && !models.ValidStatus(strings.ToUpper(*req.Status)) {
		violations = append(violations, fmt.Sprintf("unknown product status %q", *req.Status))
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// applyUpdate merges the non-nil request fields into the product.
func applyUpdate(product *models.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.ImageURLs != nil {
		product.ImageURLs = req.ImageURLs
	}
	if req.Status != nil {
		product.Status = strings.ToUpper(*req.Status)
	}
	if req.Attributes != nil {
		product.Attributes = req.Attributes
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
}

// IsNotFound reports whether err is the not-found kind.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is the SKU-conflict kind.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsInvalidArgument reports whether err is the malformed-operation kind.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
