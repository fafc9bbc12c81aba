package broker

import (
	"testing"

	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRelayKey(t *testing.T) {
	product := &models.Product{ID: "p1"}

	key, eventType := relayKey(&models.ProductUpdatedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeProductUpdated},
		Product:   product,
	})
	assert.Equal(t, "p1", key)
	assert.Equal(t, models.EventTypeProductUpdated, eventType)

	key, eventType = relayKey(&models.ProductDeletedEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeProductDeleted},
		ProductID: "p2",
	})
	assert.Equal(t, "p2", key)
	assert.Equal(t, models.EventTypeProductDeleted, eventType)

	key, eventType = relayKey("not an event")
	assert.Empty(t, key)
	assert.Empty(t, eventType)
}
