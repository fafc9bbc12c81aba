package models

import "time"

// Event types
const (
	EventTypeProductCreated = "PRODUCT_CREATED"
	EventTypeProductUpdated = "PRODUCT_UPDATED"
	EventTypeStatusChanged  = "STATUS_CHANGED"
	EventTypeStockChanged   = "STOCK_CHANGED"
	EventTypeProductDeleted = "PRODUCT_DELETED"
)

// Bus topics. Global topics carry every event of their kind; scoped
// variants are built with TopicForProduct / TopicForCategory.
const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicStatusChanged  = "product.status_changed"
	TopicStockChanged   = "product.stock_changed"
	TopicProductDeleted = "product.deleted"
)

// TopicForProduct builds the per-product variant of a global topic.
func TopicForProduct(topic, productID string) string {
	return topic + "." + productID
}

// TopicForCategory builds the per-category variant of a global topic.
func TopicForCategory(topic, category string) string {
	return topic + "." + category
}

// BaseEvent contains common fields for all catalog events
type BaseEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductCreatedEvent published when a product is created
type ProductCreatedEvent struct {
	BaseEvent
	Product *Product `json:"product"`
}

// ProductUpdatedEvent published after any successful mutation of a product
type ProductUpdatedEvent struct {
	BaseEvent
	Product *Product `json:"product"`
}

// StatusChangedEvent published when a mutation changes the product status
type StatusChangedEvent struct {
	BaseEvent
	Product        *Product `json:"product"`
	PreviousStatus string   `json:"previousStatus"`
}

// StockChangedEvent published when a mutation changes the stock quantity
type StockChangedEvent struct {
	BaseEvent
	Product       *Product `json:"product"`
	PreviousStock int      `json:"previousStock"`
	Operation     string   `json:"operation"`
}

// ProductDeletedEvent published on soft or hard delete
type ProductDeletedEvent struct {
	BaseEvent
	ProductID string `json:"productId"`
	Soft      bool   `json:"soft"`
}
