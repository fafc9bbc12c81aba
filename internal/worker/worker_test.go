package worker

import (
	"context"
	"encoding/json"
	"testing"

	"catalog-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func stockMessage(t *testing.T, stock, previous int) kafka.Message {
	t.Helper()
	event := models.StockChangedEvent{
		BaseEvent:     models.BaseEvent{EventType: models.EventTypeStockChanged},
		Product:       &models.Product{ID: "p1", SKU: "SKU-1", StockQuantity: stock},
		PreviousStock: previous,
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(models.EventTypeStockChanged)}},
	}
}

func TestHandleMessageStockEvent(t *testing.T) {
	w := NewStockAlertWorker(nil, 10)

	// Crossing the threshold downward is handled without error.
	require.NoError(t, w.handleMessage(context.Background(), stockMessage(t, 5, 20)))

	// Staying below the threshold is not a new alert.
	require.NoError(t, w.handleMessage(context.Background(), stockMessage(t, 3, 5)))
}

func TestHandleMessageIgnoresOtherEventTypes(t *testing.T) {
	w := NewStockAlertWorker(nil, 10)

	msg := kafka.Message{
		Value:   []byte(`not even json`),
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(models.EventTypeProductUpdated)}},
	}
	require.NoError(t, w.handleMessage(context.Background(), msg))
}

func TestHandleMessageRejectsCorruptStockEvent(t *testing.T) {
	w := NewStockAlertWorker(nil, 10)

	msg := kafka.Message{
		Value:   []byte(`{`),
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(models.EventTypeStockChanged)}},
	}
	require.Error(t, w.handleMessage(context.Background(), msg))
}
