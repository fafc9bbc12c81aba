package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/bus"
	"catalog-service/internal/models"
	"catalog-service/internal/service"
	"catalog-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.CatalogService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eventBus := bus.New(nil)
	catalog := service.NewCatalogService(store.NewStore(), eventBus, nil, service.CatalogConfig{})

	router := gin.New()
	NewHandler(catalog, eventBus).SetupRoutes(router)
	return router, catalog
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBody(sku string) gin.H {
	return gin.H{
		"name":          "Gaming Mouse",
		"description":   "Wireless gaming mouse",
		"category":      "gaming",
		"price":         59.99,
		"stockQuantity": 10,
		"sku":           sku,
		"tags":          []string{"gaming", "wireless"},
	}
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	return product
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProductEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	product := decodeProduct(t, w)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Gaming Mouse", product.Name)
	assert.Equal(t, models.StatusActive, product.Status)
	assert.Equal(t, "USD", product.Currency)
}

func TestCreateProductValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", gin.H{
		"name":          "A",
		"price":         -5,
		"stockQuantity": -1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error            string   `json:"error"`
		ValidationErrors []string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid input provided", resp.Error)
	assert.Len(t, resp.ValidationErrors, 5)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetProductEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	product := decodeProduct(t, w)
	assert.Equal(t, created.ID, product.ID)
	assert.Nil(t, product.Metrics)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID+"?includeMetrics=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decodeProduct(t, w).Metrics)
}

func TestGetProductNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchProductsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 1; i <= 3; i++ {
		body := createBody(fmt.Sprintf("SKU-%03d", i))
		body["name"] = fmt.Sprintf("Gadget %d", i)
		w := doJSON(t, router, http.MethodPost, "/api/v1/products", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", gin.H{
		"category":   "gaming",
		"pagination": gin.H{"limit": 2, "offset": 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalCount)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestSearchProductsRejectsNegativePagination(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/search", gin.H{
		"pagination": gin.H{"limit": -1},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodPatch, "/api/v1/products/"+created.ID, gin.H{
		"price": 49.99,
	})
	require.Equal(t, http.StatusOK, w.Code)

	product := decodeProduct(t, w)
	assert.Equal(t, 49.99, product.Price)
	assert.Equal(t, created.Name, product.Name)
}

func TestStockEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/stock", gin.H{
		"operation":      "ADD",
		"quantityChange": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 15, decodeProduct(t, w).StockQuantity)

	// Subtracting past zero clamps.
	w = doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/stock", gin.H{
		"operation":      "SUBTRACT",
		"quantityChange": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeProduct(t, w).StockQuantity)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/stock", gin.H{
		"operation":      "MULTIPLY",
		"quantityChange": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Soft delete archives; the product is still readable.
	w = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusArchived, decodeProduct(t, w).Status)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID+"?soft=false", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkUpdateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	first := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))
	second := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-002")))

	w := doJSON(t, router, http.MethodPatch, "/api/v1/products/bulk", gin.H{
		"updates": []gin.H{
			{"productId": first.ID, "price": 10.0},
			{"productId": "missing", "price": 20.0},
			{"productId": second.ID, "price": 30.0},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result service.BulkUpdateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.UpdatedProducts, 2)
	assert.Equal(t, 10.0, result.UpdatedProducts[0].Price)
	assert.Equal(t, 30.0, result.UpdatedProducts[1].Price)
}

func TestDuplicateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/duplicate", gin.H{
		"newSku": "SKU-002",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	dup := decodeProduct(t, w)
	assert.Equal(t, "Gaming Mouse (Copy)", dup.Name)
	assert.Equal(t, "SKU-002", dup.SKU)
	assert.Equal(t, 0, dup.StockQuantity)
	assert.NotEqual(t, created.ID, dup.ID)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID+"/availability?quantity=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result service.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsAvailable)
	assert.Equal(t, 10, result.AvailableQuantity)

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID+"/availability?quantity=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.IsAvailable)
	assert.NotNil(t, result.RestockDate)
}

func TestStatusShortcuts(t *testing.T) {
	router, _ := newTestRouter(t)

	created := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))

	w := doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusInactive, decodeProduct(t, w).Status)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusActive, decodeProduct(t, w).Status)

	w = doJSON(t, router, http.MethodPost, "/api/v1/products/"+created.ID+"/archive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusArchived, decodeProduct(t, w).Status)
}

func TestListProductsByIDs(t *testing.T) {
	router, _ := newTestRouter(t)

	first := decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-001")))
	_ = decodeProduct(t, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-002")))

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?ids="+first.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)
}

func TestListProductsRejectsBadLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := createBody("SKU-001")
	body["category"] = "audio"
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/products", body).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-002")).Code)

	w := doJSON(t, router, http.MethodGet, "/api/v1/categories/audio/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalCount)
}

func TestLowStockEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	low := createBody("SKU-001")
	low["stockQuantity"] = 2
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/products", low).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/products", createBody("SKU-002")).Code)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/low-stock?threshold=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "SKU-001", page.Items[0].SKU)
}
