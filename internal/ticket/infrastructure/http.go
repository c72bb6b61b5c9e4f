package infrastructure

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/transgare/backoffice/internal/ticket/application"
	"github.com/transgare/backoffice/internal/ticket/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	"github.com/transgare/backoffice/pkg/infrastructure/httperr"
)

type TicketHTTPHandler struct {
	sellBus       pkgApp.CommandBus[pkgDomain.Command[application.SellTicketData], application.SellTicketData]
	cancelBus     pkgApp.CommandBus[pkgDomain.Command[application.CancelTicketData], application.CancelTicketData]
	refundBus     pkgApp.CommandBus[pkgDomain.Command[application.RefundTicketData], application.RefundTicketData]
	cancelTripBus pkgApp.CommandBus[pkgDomain.Command[application.CancelTripData], application.CancelTripData]
	queryBus      pkgApp.QueryBus[pkgDomain.Query[application.ListTicketsData], application.ListTicketsData, []domain.Ticket]
	idGenerator   pkgDomain.IDGenerator[string]
	validate      *validator.Validate
}

func NewTicketHTTPHandler(
	sellBus pkgApp.CommandBus[pkgDomain.Command[application.SellTicketData], application.SellTicketData],
	cancelBus pkgApp.CommandBus[pkgDomain.Command[application.CancelTicketData], application.CancelTicketData],
	refundBus pkgApp.CommandBus[pkgDomain.Command[application.RefundTicketData], application.RefundTicketData],
	cancelTripBus pkgApp.CommandBus[pkgDomain.Command[application.CancelTripData], application.CancelTripData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ListTicketsData], application.ListTicketsData, []domain.Ticket],
	idGenerator pkgDomain.IDGenerator[string],
) *TicketHTTPHandler {
	return &TicketHTTPHandler{
		sellBus:       sellBus,
		cancelBus:     cancelBus,
		refundBus:     refundBus,
		cancelTripBus: cancelTripBus,
		queryBus:      queryBus,
		idGenerator:   idGenerator,
		validate:      validator.New(),
	}
}

// HandleSellTicket generates the ticket id up front so the response can
// reference the sold ticket without a result-bearing command bus.
func (h *TicketHTTPHandler) HandleSellTicket(w http.ResponseWriter, r *http.Request) {
	var data application.SellTicketData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	data.TicketID = h.idGenerator()
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid sale request", Err: err})
		return
	}

	if err := h.sellBus.Dispatch(r.Context(), application.NewSellTicketCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ticketId": data.TicketID})
}

func (h *TicketHTTPHandler) HandleCancelTicket(w http.ResponseWriter, r *http.Request) {
	data := application.CancelTicketData{TicketID: chi.URLParam(r, "ticketID")}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid cancellation request", Err: err})
		return
	}

	if err := h.cancelBus.Dispatch(r.Context(), application.NewCancelTicketCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "ticket cancelled"})
}

func (h *TicketHTTPHandler) HandleRefundTicket(w http.ResponseWriter, r *http.Request) {
	var data application.RefundTicketData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	data.TicketID = chi.URLParam(r, "ticketID")
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid refund request", Err: err})
		return
	}

	if err := h.refundBus.Dispatch(r.Context(), application.NewRefundTicketCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "ticket refunded"})
}

func (h *TicketHTTPHandler) HandleCancelTrip(w http.ResponseWriter, r *http.Request) {
	data := application.CancelTripData{TripID: chi.URLParam(r, "tripID")}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid trip cancellation request", Err: err})
		return
	}

	if err := h.cancelTripBus.Dispatch(r.Context(), application.NewCancelTripCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "trip cancelled"})
}

func (h *TicketHTTPHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	data := application.ListTicketsData{TripID: chi.URLParam(r, "tripID")}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid ticket listing request", Err: err})
		return
	}

	tickets, err := h.queryBus.Dispatch(r.Context(), application.NewListTicketsQuery(data))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, tickets)
}

func (h *TicketHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/tickets", h.HandleSellTicket)
	router.Post("/tickets/{ticketID}/cancel", h.HandleCancelTicket)
	router.Post("/tickets/{ticketID}/refund", h.HandleRefundTicket)
	router.Post("/trips/{tripID}/cancel", h.HandleCancelTrip)
	router.Get("/trips/{tripID}/tickets", h.HandleListTickets)
}
