package api

import (
	"io"
	"net/http"

	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
)

const streamBuffer = 16

var streamableTopics = map[string]bool{
	models.TopicProductCreated: true,
	models.TopicProductUpdated: true,
	models.TopicStatusChanged:  true,
	models.TopicStockChanged:   true,
	models.TopicProductDeleted: true,
}

// streamEvents pushes catalog events to the client as server-sent
// events. Scoping: ?productId= narrows to one product, ?category= to
// one category. Slow clients lose events rather than stalling writers.
func (h *Handler) streamEvents(c *gin.Context) {
	topic := c.DefaultQuery("topic", models.TopicProductUpdated)
	if !streamableTopics[topic] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topic: " + topic})
		return
	}
	if productID := c.Query("productId"); productID != "" {
		topic = models.TopicForProduct(topic, productID)
	} else if category := c.Query("category"); category != "" {
		topic = models.TopicForCategory(topic, category)
	}

	events, sub := h.eventBus.SubscribeChan(topic, streamBuffer)
	defer sub.Unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("message", event)
			return true
		}
	})
}
