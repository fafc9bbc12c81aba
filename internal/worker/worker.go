package worker

import (
	"context"
	"encoding/json"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// StockAlertWorker consumes catalog events from Kafka and raises an
// alert whenever a stock change lands at or below the threshold. It
// only reports; status transitions stay caller-driven.
type StockAlertWorker struct {
	consumer  *broker.Consumer
	threshold int
	logger    *zap.Logger
}

// NewStockAlertWorker creates a new stock alert worker
func NewStockAlertWorker(consumer *broker.Consumer, threshold int) *StockAlertWorker {
	return &StockAlertWorker{
		consumer:  consumer,
		threshold: threshold,
		logger:    util.GetLogger(),
	}
}

// Start consumes messages until the context is cancelled.
func (w *StockAlertWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting stock alert worker", zap.Int("threshold", w.threshold))
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *StockAlertWorker) Stop() error {
	w.logger.Info("Stopping stock alert worker")
	return w.consumer.Close()
}

func (w *StockAlertWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	if eventTypeOf(msg) != models.EventTypeStockChanged {
		return nil
	}

	var event models.StockChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.logger.Error("Failed to unmarshal stock event", zap.Error(err))
		return err
	}
	if event.Product == nil {
		return nil
	}

	crossedDown := event.Product.StockQuantity <= w.threshold && event.PreviousStock > w.threshold
	if crossedDown {
		util.LowStockAlertsTotal.Inc()
		w.logger.Warn("Low stock alert",
			zap.String("product_id", event.Product.ID),
			zap.String("sku", event.Product.SKU),
			zap.Int("stock", event.Product.StockQuantity),
			zap.Int("threshold", w.threshold))
	}
	return nil
}

func eventTypeOf(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event-type" {
			return string(h.Value)
		}
	}
	return ""
}
