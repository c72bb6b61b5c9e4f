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

// WatermillQueryBus answers queries over a request topic and a paired
// "<name>_response" topic.
type WatermillQueryBus[Q domain.Query[D], D any, R any] struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	handlers   map[string]application.QueryHandler[Q, D, R]
	mu         sync.RWMutex
	logger     application.AppLogger
}

func NewWatermillQueryBus[Q domain.Query[D], D any, R any](publisher message.Publisher, subscriber message.Subscriber, logger application.AppLogger) *WatermillQueryBus[Q, D, R] {
	return &WatermillQueryBus[Q, D, R]{
		publisher:  publisher,
		subscriber: subscriber,
		handlers:   make(map[string]application.QueryHandler[Q, D, R]),
		logger:     logger,
	}
}

func (bus *WatermillQueryBus[Q, D, R]) RegisterHandler(queryName string, handler application.QueryHandler[Q, D, R]) {
	bus.mu.Lock()
	bus.handlers[queryName] = handler
	bus.mu.Unlock()

	go bus.consume(queryName, handler)
}

func (bus *WatermillQueryBus[Q, D, R]) consume(queryName string, handler application.QueryHandler[Q, D, R]) {
	ctx := context.Background()
	messages, err := bus.subscriber.Subscribe(ctx, queryName)
	if err != nil {
		application.LogError(ctx, bus.logger, "error subscribing to query", err, map[string]interface{}{
			"query_name": queryName,
		})
		return
	}

	for msg := range messages {
		var payload D
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			application.LogError(ctx, bus.logger, "error unmarshalling query payload", err, map[string]interface{}{
				"query_name": queryName,
			})
			msg.Nack()
			continue
		}

		query := &dynamicQuery[D]{queryName: queryName, payload: payload}
		typedQuery, ok := interface{}(query).(Q)
		if !ok {
			bus.logger.Error(ctx, "query type assertion failed", map[string]interface{}{
				"query_name": queryName,
			})
			msg.Nack()
			continue
		}

		result, err := handler.Handle(ctx, typedQuery)
		if err != nil {
			application.LogError(ctx, bus.logger, "error handling query", err, map[string]interface{}{
				"query_name": queryName,
			})
			msg.Nack()
			continue
		}

		responsePayload, err := json.Marshal(result)
		if err != nil {
			application.LogError(ctx, bus.logger, "error marshalling query result", err, map[string]interface{}{
				"query_name": queryName,
			})
			msg.Nack()
			continue
		}

		responseMsg := message.NewMessage(watermill.NewUUID(), responsePayload)
		if err := bus.publisher.Publish(queryName+"_response", responseMsg); err != nil {
			application.LogError(ctx, bus.logger, "error publishing query response", err, map[string]interface{}{
				"query_name": queryName,
			})
			msg.Nack()
			continue
		}

		msg.Ack()
	}
}

func (bus *WatermillQueryBus[Q, D, R]) Dispatch(ctx context.Context, query Q) (R, error) {
	var zero R

	payload, err := json.Marshal(query.Payload())
	if err != nil {
		application.LogError(ctx, bus.logger, "error marshalling query payload", err, map[string]interface{}{
			"query_name": query.QueryName(),
		})
		return zero, err
	}

	responseMessages, err := bus.subscriber.Subscribe(ctx, query.QueryName()+"_response")
	if err != nil {
		application.LogError(ctx, bus.logger, "error subscribing to query response", err, map[string]interface{}{
			"query_name": query.QueryName(),
		})
		return zero, err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := bus.publisher.Publish(query.QueryName(), msg); err != nil {
		application.LogError(ctx, bus.logger, "error publishing query", err, map[string]interface{}{
			"query_name": query.QueryName(),
		})
		return zero, err
	}

	select {
	case responseMsg := <-responseMessages:
		var result R
		if err := json.Unmarshal(responseMsg.Payload, &result); err != nil {
			application.LogError(ctx, bus.logger, "error unmarshalling query response", err, map[string]interface{}{
				"query_name": query.QueryName(),
			})
			return zero, err
		}
		responseMsg.Ack()
		return result, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
