package infrastructure

import (
	"context"
	"sync"

	"github.com/transgare/backoffice/pkg/application"
	"github.com/transgare/backoffice/pkg/domain"
)

var errNoQueryHandler = domain.NewFault(domain.FaultNotFound, "no handler registered for query")

// simpleQueryBus answers queries synchronously while honouring context
// cancellation around the handler call.
type simpleQueryBus[Q domain.Query[D], D any, R any] struct {
	handlers map[string]application.QueryHandler[Q, D, R]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewSimpleQueryBus[Q domain.Query[D], D any, R any](logger application.AppLogger) application.QueryBus[Q, D, R] {
	return &simpleQueryBus[Q, D, R]{
		handlers: make(map[string]application.QueryHandler[Q, D, R]),
		logger:   logger,
	}
}

func (bus *simpleQueryBus[Q, D, R]) RegisterHandler(queryName string, handler application.QueryHandler[Q, D, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[queryName] = handler
}

func (bus *simpleQueryBus[Q, D, R]) Dispatch(ctx context.Context, query Q) (R, error) {
	bus.mu.RLock()
	handler, found := bus.handlers[query.QueryName()]
	bus.mu.RUnlock()

	var zero R
	if !found {
		application.LogError(ctx, bus.logger, "query without handler", errNoQueryHandler, map[string]interface{}{
			"query_name": query.QueryName(),
		})
		return zero, domain.WrapFault(errNoQueryHandler, "query %q", query.QueryName())
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	return handler.Handle(ctx, query)
}
