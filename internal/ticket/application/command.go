package application

import (
	ticketDomain "github.com/transgare/backoffice/internal/ticket/domain"
	"github.com/transgare/backoffice/pkg/domain"
)

// SellTicketData asks for a seat sale on a trip. The ticket ID is chosen
// by the caller so the accepted sale can be referenced before the command
// completes. CashierID is mandatory for counter sales only.
type SellTicketData struct {
	TicketID          string                    `json:"ticketId" validate:"required"`
	TripID            string                    `json:"tripId" validate:"required"`
	PassengerName     string                    `json:"passengerName" validate:"required"`
	PassengerDocument string                    `json:"passengerDocument" validate:"required"`
	SeatNumber        string                    `json:"seatNumber" validate:"required"`
	PaymentMethod     string                    `json:"paymentMethod" validate:"required"`
	SalesChannel      ticketDomain.SalesChannel `json:"salesChannel" validate:"required,oneof=counter online"`
	CashierID         string                    `json:"cashierId" validate:"required_if=SalesChannel counter"`
}

type sellTicketCommand struct {
	data SellTicketData
}

func (c sellTicketCommand) CommandName() string {
	return "SellTicket"
}

func (c sellTicketCommand) Payload() SellTicketData {
	return c.data
}

func NewSellTicketCommand(data SellTicketData) domain.Command[SellTicketData] {
	return sellTicketCommand{data: data}
}

// CancelTicketData asks for a ticket cancellation. No cash moves.
type CancelTicketData struct {
	TicketID string `json:"ticketId" validate:"required"`
}

type cancelTicketCommand struct {
	data CancelTicketData
}

func (c cancelTicketCommand) CommandName() string {
	return "CancelTicket"
}

func (c cancelTicketCommand) Payload() CancelTicketData {
	return c.data
}

func NewCancelTicketCommand(data CancelTicketData) domain.Command[CancelTicketData] {
	return cancelTicketCommand{data: data}
}

// RefundTicketData asks for a refund under the acting cashier, who may
// differ from the cashier that sold the ticket.
type RefundTicketData struct {
	TicketID  string `json:"ticketId" validate:"required"`
	CashierID string `json:"cashierId" validate:"required"`
}

type refundTicketCommand struct {
	data RefundTicketData
}

func (c refundTicketCommand) CommandName() string {
	return "RefundTicket"
}

func (c refundTicketCommand) Payload() RefundTicketData {
	return c.data
}

func NewRefundTicketCommand(data RefundTicketData) domain.Command[RefundTicketData] {
	return refundTicketCommand{data: data}
}

// CancelTripData asks for a trip cancellation with a cascade over its
// valid tickets.
type CancelTripData struct {
	TripID string `json:"tripId" validate:"required"`
}

type cancelTripCommand struct {
	data CancelTripData
}

func (c cancelTripCommand) CommandName() string {
	return "CancelTrip"
}

func (c cancelTripCommand) Payload() CancelTripData {
	return c.data
}

func NewCancelTripCommand(data CancelTripData) domain.Command[CancelTripData] {
	return cancelTripCommand{data: data}
}
