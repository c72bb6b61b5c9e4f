package application

import (
	"context"
	"fmt"

	"github.com/transgare/backoffice/internal/ticket/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type sellTicketHandler struct {
	lifecycle *Lifecycle
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func NewSellTicketHandler(lifecycle *Lifecycle, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[SellTicketData], SellTicketData] {
	return &sellTicketHandler{lifecycle: lifecycle, eventBus: eventBus, logger: logger}
}

func (h *sellTicketHandler) Handle(ctx context.Context, command pkgDomain.Command[SellTicketData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ticket, err := h.lifecycle.Sell(ctx, command.Payload())
	if err != nil {
		return err
	}

	event := NewTicketSoldEvent(fmt.Sprintf("ticket %s seat %s trip %s", ticket.ID, ticket.SeatNumber, ticket.TripID))
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish sale event", err, map[string]interface{}{
			"ticket_id": ticket.ID,
		})
	}
	return nil
}

type cancelTicketHandler struct {
	lifecycle *Lifecycle
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func NewCancelTicketHandler(lifecycle *Lifecycle, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[CancelTicketData], CancelTicketData] {
	return &cancelTicketHandler{lifecycle: lifecycle, eventBus: eventBus, logger: logger}
}

func (h *cancelTicketHandler) Handle(ctx context.Context, command pkgDomain.Command[CancelTicketData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	if err := h.lifecycle.Cancel(ctx, data.TicketID); err != nil {
		return err
	}

	if err := h.eventBus.Publish(ctx, NewTicketCancelledEvent(data.TicketID)); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish cancellation event", err, map[string]interface{}{
			"ticket_id": data.TicketID,
		})
	}
	return nil
}

type refundTicketHandler struct {
	lifecycle *Lifecycle
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func NewRefundTicketHandler(lifecycle *Lifecycle, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[RefundTicketData], RefundTicketData] {
	return &refundTicketHandler{lifecycle: lifecycle, eventBus: eventBus, logger: logger}
}

func (h *refundTicketHandler) Handle(ctx context.Context, command pkgDomain.Command[RefundTicketData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	if err := h.lifecycle.Refund(ctx, data.TicketID, data.CashierID); err != nil {
		return err
	}

	if err := h.eventBus.Publish(ctx, NewTicketRefundedEvent(data.TicketID)); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish refund event", err, map[string]interface{}{
			"ticket_id": data.TicketID,
		})
	}
	return nil
}

type cancelTripHandler struct {
	lifecycle *Lifecycle
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func NewCancelTripHandler(lifecycle *Lifecycle, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[CancelTripData], CancelTripData] {
	return &cancelTripHandler{lifecycle: lifecycle, eventBus: eventBus, logger: logger}
}

func (h *cancelTripHandler) Handle(ctx context.Context, command pkgDomain.Command[CancelTripData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	report, err := h.lifecycle.CancelTrip(ctx, data.TripID)
	if err != nil {
		return err
	}

	event := NewTripCancelledEvent(fmt.Sprintf("trip %s: %d tickets cancelled, %d failed",
		data.TripID, report.Cancelled, len(report.Failed)))
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish trip cancellation event", err, map[string]interface{}{
			"trip_id": data.TripID,
		})
	}
	return nil
}

type listTicketsHandler struct {
	repository domain.TicketRepository
	logger     pkgApp.AppLogger
}

func NewListTicketsHandler(repo domain.TicketRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListTicketsData], ListTicketsData, []domain.Ticket] {
	return &listTicketsHandler{repository: repo, logger: logger}
}

func (h *listTicketsHandler) Handle(ctx context.Context, query pkgDomain.Query[ListTicketsData]) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := query.Payload()
	tickets, err := h.repository.ListByTrip(ctx, data.TripID)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to list tickets", err, map[string]interface{}{
			"trip_id": data.TripID,
		})
		return nil, err
	}
	return tickets, nil
}
