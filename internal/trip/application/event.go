package application

import (
	"context"

	"github.com/transgare/backoffice/pkg/application"
	"github.com/transgare/backoffice/pkg/domain"
)

type tripsGeneratedEvent struct {
	data string
}

func (e tripsGeneratedEvent) EventName() string {
	return "TripsGenerated"
}

func (e tripsGeneratedEvent) Payload() string {
	return e.data
}

// NewTripsGeneratedEvent announces the outcome of a generation run.
func NewTripsGeneratedEvent(data string) domain.Event[string] {
	return tripsGeneratedEvent{data: data}
}

type tripsGeneratedEventHandler struct {
	logger application.AppLogger
}

func NewTripsGeneratedEventHandler(logger application.AppLogger) application.EventHandler[domain.Event[string], string] {
	return &tripsGeneratedEventHandler{logger: logger}
}

func (h *tripsGeneratedEventHandler) Handle(ctx context.Context, event domain.Event[string]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.logger.Info(ctx, "trips generated", map[string]interface{}{"summary": event.Payload()})
	return nil
}
