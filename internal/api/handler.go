package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/bus"
	"catalog-service/internal/models"
	"catalog-service/internal/service"
	"catalog-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog  *service.CatalogService
	eventBus *bus.Bus
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *service.CatalogService, eventBus *bus.Bus) *Handler {
	return &Handler{
		catalog:  catalog,
		eventBus: eventBus,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.POST("/products/search", h.searchProducts)
		v1.PATCH("/products/bulk", h.bulkUpdateProducts)
		v1.GET("/products/low-stock", h.lowStockProducts)
		v1.GET("/products/recent", h.recentProducts)
		v1.GET("/products/top-selling", h.topSellingProducts)
		v1.GET("/products/events", h.streamEvents)

		v1.GET("/products/:id", h.getProduct)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)
		v1.POST("/products/:id/stock", h.updateStock)
		v1.POST("/products/:id/duplicate", h.duplicateProduct)
		v1.GET("/products/:id/availability", h.checkAvailability)
		v1.POST("/products/:id/activate", h.setStatus(models.StatusActive))
		v1.POST("/products/:id/deactivate", h.setStatus(models.StatusInactive))
		v1.POST("/products/:id/archive", h.setStatus(models.StatusArchived))

		v1.GET("/categories/:category/products", h.productsByCategory)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts handles the multi-get query
func (h *Handler) listProducts(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}

	req := service.GetProductsRequest{
		Status:         c.Query("status"),
		IncludeMetrics: c.Query("includeMetrics") == "true",
		Page:           page,
	}
	if ids := c.Query("ids"); ids != "" {
		req.IDs = strings.Split(ids, ",")
	}

	result, err := h.catalog.GetProducts(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// searchRequest is the body of a product search
type searchRequest struct {
	Query          string                `json:"query"`
	Category       string                `json:"category"`
	MinPrice       *float64              `json:"minPrice"`
	MaxPrice       *float64              `json:"maxPrice"`
	Tags           []string              `json:"tags"`
	Status         string                `json:"status"`
	SortBy         string                `json:"sortBy"`
	SortOrder      string                `json:"sortOrder"`
	IncludeMetrics bool                  `json:"includeMetrics"`
	Pagination     *paginationParameters `json:"pagination"`
}

type paginationParameters struct {
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`
}

func (p *paginationParameters) toPage() service.PageRequest {
	page := service.DefaultPage()
	if p == nil {
		return page
	}
	if p.Limit != nil {
		page.Limit = *p.Limit
	}
	if p.Offset != nil {
		page.Offset = *p.Offset
	}
	return page
}

// searchProducts handles the full filter/sort/paginate query
func (h *Handler) searchProducts(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	filter := service.SearchFilter{
		Query:          req.Query,
		Category:       req.Category,
		MinPrice:       req.MinPrice,
		MaxPrice:       req.MaxPrice,
		Tags:           req.Tags,
		Status:         strings.ToUpper(req.Status),
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		IncludeMetrics: req.IncludeMetrics,
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = service.SortAsc
	}

	result, err := h.catalog.SearchProducts(c.Request.Context(), filter, req.Pagination.toPage())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getProduct handles a point lookup
func (h *Handler) getProduct(c *gin.Context) {
	includeMetrics := c.Query("includeMetrics") == "true"

	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"), includeMetrics)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// updateProduct handles a partial update
func (h *Handler) updateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// stockRequest is the body of a stock adjustment
type stockRequest struct {
	Operation      string `json:"operation" binding:"required"`
	QuantityChange int    `json:"quantityChange"`
}

// updateStock handles a stock adjustment
func (h *Handler) updateStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.UpdateProductStock(c.Request.Context(), c.Param("id"), req.Operation, req.QuantityChange)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct handles soft (default) and hard deletes
func (h *Handler) deleteProduct(c *gin.Context) {
	soft := c.DefaultQuery("soft", "true") != "false"

	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"), soft); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"deletedProductId": c.Param("id"),
		"soft":             soft,
	})
}

// bulkUpdateItem carries the product id alongside the partial update.
type bulkUpdateItem struct {
	ProductID string `json:"productId" binding:"required"`
	service.UpdateProductRequest
}

type bulkUpdateRequest struct {
	Updates []bulkUpdateItem `json:"updates" binding:"required,min=1"`
}

// bulkUpdateProducts handles a batch of independent updates
func (h *Handler) bulkUpdateProducts(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	items := make([]service.BulkUpdateItem, len(req.Updates))
	for i, u := range req.Updates {
		items[i] = service.BulkUpdateItem{ProductID: u.ProductID, Update: u.UpdateProductRequest}
	}

	result, err := h.catalog.BulkUpdateProducts(c.Request.Context(), items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// duplicateRequest is the body of a duplicate call
type duplicateRequest struct {
	NewSKU    string                      `json:"newSku" binding:"required"`
	Overrides *service.DuplicateOverrides `json:"overrides"`
}

// duplicateProduct handles duplication under a new SKU
func (h *Handler) duplicateProduct(c *gin.Context) {
	var req duplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.DuplicateProduct(c.Request.Context(), c.Param("id"), req.NewSKU, req.Overrides)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// checkAvailability handles a stock availability query
func (h *Handler) checkAvailability(c *gin.Context) {
	quantity, ok := h.intQuery(c, "quantity", 1)
	if !ok {
		return
	}

	result, err := h.catalog.CheckAvailability(c.Request.Context(), c.Param("id"), quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// setStatus builds a handler for the activate/deactivate/archive shortcuts.
func (h *Handler) setStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"),
			&service.UpdateProductRequest{Status: &status})
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// productsByCategory handles the per-category listing
func (h *Handler) productsByCategory(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}

	result, err := h.catalog.GetProductsByCategory(c.Request.Context(),
		c.Param("category"), c.Query("sortBy"), c.Query("sortOrder"), page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// lowStockProducts lists active products at or below a threshold
func (h *Handler) lowStockProducts(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	threshold, ok := h.intQuery(c, "threshold", 10)
	if !ok {
		return
	}

	result, err := h.catalog.LowStockProducts(c.Request.Context(), threshold, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// recentProducts lists active products created in the last N days
func (h *Handler) recentProducts(c *gin.Context) {
	page, ok := h.pageFromQuery(c)
	if !ok {
		return
	}
	days, ok := h.intQuery(c, "days", 7)
	if !ok {
		return
	}

	result, err := h.catalog.RecentProducts(c.Request.Context(), days, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// topSellingProducts lists products by sales count
func (h *Handler) topSellingProducts(c *gin.Context) {
	limit, ok := h.intQuery(c, "limit", 10)
	if !ok {
		return
	}

	products, err := h.catalog.TopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products})
}

// pageFromQuery reads limit/offset query parameters with defaults.
func (h *Handler) pageFromQuery(c *gin.Context) (service.PageRequest, bool) {
	page := service.DefaultPage()

	var ok bool
	if page.Limit, ok = h.intQuery(c, "limit", service.DefaultPageSize); !ok {
		return page, false
	}
	if page.Offset, ok = h.intQuery(c, "offset", 0); !ok {
		return page, false
	}
	return page, true
}

func (h *Handler) intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return value, true
}

// respondError maps the service error taxonomy to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":            "Invalid input provided",
			"validationErrors": ve.Violations,
		})
		return
	}

	switch {
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"details": err.Error(),
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
