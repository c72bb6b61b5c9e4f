package application

import (
	"context"

	"github.com/transgare/backoffice/pkg/application"
	"github.com/transgare/backoffice/pkg/domain"
)

type ticketEvent struct {
	name string
	data string
}

func (e ticketEvent) EventName() string {
	return e.name
}

func (e ticketEvent) Payload() string {
	return e.data
}

func NewTicketSoldEvent(data string) domain.Event[string] {
	return ticketEvent{name: "TicketSold", data: data}
}

func NewTicketCancelledEvent(data string) domain.Event[string] {
	return ticketEvent{name: "TicketCancelled", data: data}
}

func NewTicketRefundedEvent(data string) domain.Event[string] {
	return ticketEvent{name: "TicketRefunded", data: data}
}

func NewTripCancelledEvent(data string) domain.Event[string] {
	return ticketEvent{name: "TripCancelled", data: data}
}

type ticketEventHandler struct {
	logger application.AppLogger
}

// NewTicketEventHandler logs lifecycle events. One handler serves every
// ticket event name.
func NewTicketEventHandler(logger application.AppLogger) application.EventHandler[domain.Event[string], string] {
	return &ticketEventHandler{logger: logger}
}

func (h *ticketEventHandler) Handle(ctx context.Context, event domain.Event[string]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.logger.Info(ctx, "ticket lifecycle event", map[string]interface{}{
		"event":   event.EventName(),
		"payload": event.Payload(),
	})
	return nil
}
