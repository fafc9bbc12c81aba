package broker

import (
	"context"

	"catalog-service/internal/bus"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// relayBuffer bounds how many events a slow Kafka leg may lag behind
// the in-process bus before events are dropped (delivery stays
// best-effort end to end).
const relayBuffer = 256

// Relay forwards every catalog event from the in-process bus to Kafka.
// In-process subscribers see events synchronously; the Kafka leg is
// asynchronous so mutations never block on the broker.
type Relay struct {
	producer *Producer
	events   <-chan interface{}
	subs     []*bus.Subscription
	logger   *zap.Logger
}

// NewRelay subscribes to the global catalog topics of the bus.
func NewRelay(producer *Producer, eventBus *bus.Bus) *Relay {
	merged := make(chan interface{}, relayBuffer)
	r := &Relay{
		producer: producer,
		events:   merged,
		logger:   util.GetLogger(),
	}

	topics := []string{
		models.TopicProductCreated,
		models.TopicProductUpdated,
		models.TopicStatusChanged,
		models.TopicStockChanged,
		models.TopicProductDeleted,
	}
	for _, topic := range topics {
		sub := eventBus.Subscribe(topic, func(_ string, event interface{}) {
			select {
			case merged <- event:
			default:
				r.logger.Warn("Relay buffer full, dropping event")
			}
		})
		r.subs = append(r.subs, sub)
	}
	return r
}

// Run forwards events until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-r.events:
			key, eventType := relayKey(event)
			if err := r.producer.PublishEvent(ctx, key, eventType, event); err != nil {
				r.logger.Error("Failed to relay event to kafka",
					zap.String("event_type", eventType),
					zap.Error(err))
			}
		}
	}
}

// Stop detaches the relay from the bus.
func (r *Relay) Stop() {
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
}

func relayKey(event interface{}) (key, eventType string) {
	switch e := event.(type) {
	case *models.ProductCreatedEvent:
		return e.Product.ID, e.EventType
	case *models.ProductUpdatedEvent:
		return e.Product.ID, e.EventType
	case *models.StatusChangedEvent:
		return e.Product.ID, e.EventType
	case *models.StockChangedEvent:
		return e.Product.ID, e.EventType
	case *models.ProductDeletedEvent:
		return e.ProductID, e.EventType
	default:
		return "", ""
	}
}
