package domain

import (
	"context"
	"time"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var (
	ErrTicketNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "ticket not found")
	// ErrSeatConflict is the retryable "seat taken, pick another" case.
	ErrSeatConflict = pkgDomain.NewFault(pkgDomain.FaultConflict, "seat already held")
	// ErrTripNotSellable rejects sales on trips past boarding or cancelled.
	ErrTripNotSellable = pkgDomain.NewFault(pkgDomain.FaultConflict, "trip is not open for sale")
	// ErrRefundWindowClosed rejects refunds too close to departure.
	ErrRefundWindowClosed = pkgDomain.NewFault(pkgDomain.FaultConflict, "refund window closed")
	// ErrTicketTerminal marks an attempt to transition a ticket out of a
	// terminal state. That is an integration bug, not a user condition.
	ErrTicketTerminal = pkgDomain.NewFault(pkgDomain.FaultConsistency, "ticket is in a terminal state")
	// ErrSeatOverrelease marks a seat count that would exceed the trip's
	// capacity. Only a caller bug can produce it.
	ErrSeatOverrelease = pkgDomain.NewFault(pkgDomain.FaultConsistency, "seat release exceeds trip capacity")
	// ErrSeatInvalid rejects seat labels outside the trip's inventory
	// before the ledger is touched.
	ErrSeatInvalid = pkgDomain.NewFault(pkgDomain.FaultValidation, "seat is not part of the trip inventory")
	// ErrDrawerDesync marks a refunded ticket whose drawer entry could
	// not be written. Reconciliation picks these up from the logs.
	ErrDrawerDesync = pkgDomain.NewFault(pkgDomain.FaultConsistency, "ticket state out of sync with the drawer log")
)

// SalesChannel distinguishes counter sales, which move cash through the
// drawer, from online sales, which never do.
type SalesChannel string

const (
	ChannelCounter SalesChannel = "counter"
	ChannelOnline  SalesChannel = "online"
)

// TicketStatus is the closed set of ticket states. Valid is the only
// non-terminal state.
type TicketStatus string

const (
	TicketValid     TicketStatus = "valid"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
	TicketRefunded  TicketStatus = "refunded"
)

// Terminal reports whether the status admits no further transitions.
func (s TicketStatus) Terminal() bool {
	return s != TicketValid
}

// HoldsSeat reports whether a ticket in this status counts against the
// trip's seat inventory.
func (s TicketStatus) HoldsSeat() bool {
	return s == TicketValid || s == TicketUsed
}

// Ticket is one sold seat on one trip.
type Ticket struct {
	ID                string       `json:"id" gorm:"primaryKey"`
	TripID            string       `json:"tripId" gorm:"index"`
	PassengerName     string       `json:"passengerName"`
	PassengerDocument string       `json:"passengerDocument"`
	SeatNumber        string       `json:"seatNumber"`
	Price             int64        `json:"price"`
	PaymentMethod     string       `json:"paymentMethod"`
	SalesChannel      SalesChannel `json:"salesChannel"`
	Status            TicketStatus `json:"status"`
	CashierID         string       `json:"cashierId"`
	PurchaseDate      time.Time    `json:"purchaseDate"`
}

// TicketRepository is the persistence port for tickets.
type TicketRepository interface {
	Save(ctx context.Context, ticket Ticket) error
	FindByID(ctx context.Context, id string) (Ticket, error)
	ListByTrip(ctx context.Context, tripID string) ([]Ticket, error)
	// ListOccupiedSeats returns the seat numbers held by seat-holding
	// tickets of the trip, for ledger hydration.
	ListOccupiedSeats(ctx context.Context, tripID string) ([]string, error)
	Update(ctx context.Context, ticket Ticket) error
}
