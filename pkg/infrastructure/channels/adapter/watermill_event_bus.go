package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/transgare/backoffice/pkg/application"
	"github.com/transgare/backoffice/pkg/domain"
)

// WatermillEventBus publishes events over a watermill publisher and fans
// subscriptions out to the registered handlers.
type WatermillEventBus[E domain.Event[D], D any] struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	handlers   map[string][]application.EventHandler[E, D]
	mu         sync.RWMutex
	logger     application.AppLogger
}

func NewWatermillEventBus[E domain.Event[D], D any](publisher message.Publisher, subscriber message.Subscriber, logger application.AppLogger) *WatermillEventBus[E, D] {
	return &WatermillEventBus[E, D]{
		publisher:  publisher,
		subscriber: subscriber,
		handlers:   make(map[string][]application.EventHandler[E, D]),
		logger:     logger,
	}
}

func (bus *WatermillEventBus[E, D]) RegisterHandler(eventName string, handler application.EventHandler[E, D]) {
	bus.mu.Lock()
	first := len(bus.handlers[eventName]) == 0
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	bus.mu.Unlock()

	if first {
		go bus.consume(eventName)
	}
}

func (bus *WatermillEventBus[E, D]) consume(eventName string) {
	ctx := context.Background()
	messages, err := bus.subscriber.Subscribe(ctx, eventName)
	if err != nil {
		application.LogError(ctx, bus.logger, "error subscribing to event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return
	}

	for msg := range messages {
		var payload D
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			application.LogError(ctx, bus.logger, "error unmarshalling event payload", err, map[string]interface{}{
				"event_name": eventName,
			})
			msg.Nack()
			continue
		}

		event := &dynamicEvent[D]{eventName: eventName, payload: payload}
		typedEvent, ok := interface{}(event).(E)
		if !ok {
			bus.logger.Error(ctx, "event type assertion failed", map[string]interface{}{
				"event_name": eventName,
			})
			msg.Nack()
			continue
		}

		bus.mu.RLock()
		handlers := bus.handlers[eventName]
		bus.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler.Handle(ctx, typedEvent); err != nil {
				application.LogError(ctx, bus.logger, "error handling event", err, map[string]interface{}{
					"event_name": eventName,
				})
			}
		}
		msg.Ack()
	}
}

func (bus *WatermillEventBus[E, D]) Publish(ctx context.Context, event E) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		application.LogError(ctx, bus.logger, "error marshalling event payload", err, map[string]interface{}{
			"event_name": event.EventName(),
		})
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := bus.publisher.Publish(event.EventName(), msg); err != nil {
		application.LogError(ctx, bus.logger, "error publishing event", err, map[string]interface{}{
			"event_name": event.EventName(),
		})
		return err
	}
	return nil
}
