// Package ticket is the vertical slice owning ticket sales, the seat
// ledger and the cancellation and refund flows, including trip
// cancellations that cascade over sold tickets.
package ticket

import (
	"github.com/go-chi/chi/v5"

	"github.com/transgare/backoffice/internal/ticket/application"
	"github.com/transgare/backoffice/internal/ticket/domain"
	"github.com/transgare/backoffice/internal/ticket/infrastructure"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type TicketSlice struct {
	httpHandler *infrastructure.TicketHTTPHandler
}

func NewTicketSlice(
	sellBus pkgApp.CommandBus[pkgDomain.Command[application.SellTicketData], application.SellTicketData],
	cancelBus pkgApp.CommandBus[pkgDomain.Command[application.CancelTicketData], application.CancelTicketData],
	refundBus pkgApp.CommandBus[pkgDomain.Command[application.RefundTicketData], application.RefundTicketData],
	cancelTripBus pkgApp.CommandBus[pkgDomain.Command[application.CancelTripData], application.CancelTripData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ListTicketsData], application.ListTicketsData, []domain.Ticket],
	eventBus pkgApp.EventBus[pkgDomain.Event[string], string],
	lifecycle *application.Lifecycle,
	ticketRepo domain.TicketRepository,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) *TicketSlice {
	sellBus.RegisterHandler("SellTicket", application.NewSellTicketHandler(lifecycle, eventBus, logger))
	cancelBus.RegisterHandler("CancelTicket", application.NewCancelTicketHandler(lifecycle, eventBus, logger))
	refundBus.RegisterHandler("RefundTicket", application.NewRefundTicketHandler(lifecycle, eventBus, logger))
	cancelTripBus.RegisterHandler("CancelTrip", application.NewCancelTripHandler(lifecycle, eventBus, logger))
	queryBus.RegisterHandler("ListTicketsByTrip", application.NewListTicketsHandler(ticketRepo, logger))

	eventHandler := application.NewTicketEventHandler(logger)
	eventBus.RegisterHandler("TicketSold", eventHandler)
	eventBus.RegisterHandler("TicketCancelled", eventHandler)
	eventBus.RegisterHandler("TicketRefunded", eventHandler)
	eventBus.RegisterHandler("TripCancelled", eventHandler)

	return &TicketSlice{
		httpHandler: infrastructure.NewTicketHTTPHandler(sellBus, cancelBus, refundBus, cancelTripBus, queryBus, idGenerator),
	}
}

func (s *TicketSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
