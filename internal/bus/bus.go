// Package bus provides the in-process event bus that fans catalog
// events out to subscribers. Delivery is synchronous and best-effort:
// one attempt per subscriber per event, no retries, no cross-topic
// ordering guarantees.
package bus

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives a published event. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(topic string, event interface{})

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	topic string
	id    int
	bus   *Bus
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.remove(s.topic, s.id)
}

// Bus is a registry of topic -> subscriber handlers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]Handler
	logger *zap.Logger
}

// New creates an empty bus
func New(logger *zap.Logger) *Bus {
	return &Bus{
		topics: make(map[string]map[int]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]Handler)
	}
	b.topics[topic][id] = handler

	return &Subscription{topic: topic, id: id, bus: b}
}

// SubscribeChan registers a buffered channel subscription. Events are
// dropped when the channel is full, keeping publishers non-blocking.
func (b *Bus) SubscribeChan(topic string, buffer int) (<-chan interface{}, *Subscription) {
	ch := make(chan interface{}, buffer)
	sub := b.Subscribe(topic, func(_ string, event interface{}) {
		select {
		case ch <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("Dropping event for slow subscriber", zap.String("topic", topic))
			}
		}
	})
	return ch, sub
}

// Publish delivers the event to every subscriber of the topic. A
// panicking subscriber does not stop delivery to the others.
func (b *Bus) Publish(topic string, event interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.topics[topic]))
	for _, h := range b.topics[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(topic, event, h)
	}
}

func (b *Bus) deliver(topic string, event interface{}, h Handler) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("Subscriber panicked",
				zap.String("topic", topic),
				zap.Any("panic", r))
		}
	}()
	h(topic, event)
}

// Subscribers returns the number of handlers registered for a topic.
func (b *Bus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Bus) remove(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.topics[topic]; ok {
		delete(handlers, id)
		if len(handlers) == 0 {
			delete(b.topics, topic)
		}
	}
}
