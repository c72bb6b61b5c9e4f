package application

import (
	"context"
	"time"

	"github.com/transgare/backoffice/internal/ticket/domain"
	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// CashRecorder is the drawer port the lifecycle writes through. Counter
// sales and refunds move cash; online sales never reach it.
type CashRecorder interface {
	RecordSale(ctx context.Context, cashierID string, amount int64, method, ticketID, tripID string) error
	RecordRefund(ctx context.Context, cashierID string, amount int64, method, ticketID, tripID string) error
}

// CascadeFailure reports one ticket a trip cancellation could not cancel.
type CascadeFailure struct {
	TicketID string `json:"ticketId"`
	Reason   string `json:"reason"`
}

// CascadeReport summarizes a trip cancellation. Failures never abort the
// cascade; every remaining valid ticket is still attempted.
type CascadeReport struct {
	Cancelled int              `json:"cancelled"`
	Failed    []CascadeFailure `json:"failed,omitempty"`
}

// Lifecycle orchestrates ticket state transitions across the seat ledger
// and the cash drawer. The seat ledger and the drawer are the only two
// mutable resources it touches besides the tickets themselves.
type Lifecycle struct {
	tickets domain.TicketRepository
	trips   tripDomain.TripRepository
	seats   *domain.SeatLedger
	cash    CashRecorder

	idGenerator    pkgDomain.IDGenerator[string]
	boardingWindow time.Duration
	refundBuffer   time.Duration
	now            func() time.Time
	logger         pkgApp.AppLogger
}

func NewLifecycle(
	tickets domain.TicketRepository,
	trips tripDomain.TripRepository,
	seats *domain.SeatLedger,
	cash CashRecorder,
	idGenerator pkgDomain.IDGenerator[string],
	boardingWindow time.Duration,
	refundBuffer time.Duration,
	now func() time.Time,
	logger pkgApp.AppLogger,
) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{
		tickets:        tickets,
		trips:          trips,
		seats:          seats,
		cash:           cash,
		idGenerator:    idGenerator,
		boardingWindow: boardingWindow,
		refundBuffer:   refundBuffer,
		now:            now,
		logger:         logger,
	}
}

// Sell reserves the seat and creates a valid ticket. Counter sales append
// a sale transaction under the selling cashier; online sales handle no
// cash. Every step is compensated on failure so a failed sale leaves no
// held seat behind.
func (l *Lifecycle) Sell(ctx context.Context, data SellTicketData) (domain.Ticket, error) {
	trip, err := l.trips.FindByID(ctx, data.TripID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !domain.ValidSeat(data.SeatNumber, trip.TotalSeats) {
		return domain.Ticket{}, pkgDomain.WrapFault(domain.ErrSeatInvalid,
			"seat %q on trip %s with %d seats", data.SeatNumber, trip.ID, trip.TotalSeats)
	}
	if !trip.Sellable(l.now(), l.boardingWindow) {
		return domain.Ticket{}, pkgDomain.WrapFault(domain.ErrTripNotSellable,
			"trip %s is %s", trip.ID, trip.EffectiveStatus(l.now(), l.boardingWindow))
	}

	if err := l.seats.Reserve(ctx, data.TripID, data.SeatNumber); err != nil {
		return domain.Ticket{}, err
	}

	ticketID := data.TicketID
	if ticketID == "" {
		ticketID = l.idGenerator()
	}
	ticket := domain.Ticket{
		ID:                ticketID,
		TripID:            data.TripID,
		PassengerName:     data.PassengerName,
		PassengerDocument: data.PassengerDocument,
		SeatNumber:        data.SeatNumber,
		Price:             trip.Price,
		PaymentMethod:     data.PaymentMethod,
		SalesChannel:      data.SalesChannel,
		Status:            domain.TicketValid,
		CashierID:         data.CashierID,
		PurchaseDate:      l.now(),
	}

	if err := l.tickets.Save(ctx, ticket); err != nil {
		if relErr := l.seats.Release(ctx, data.TripID, data.SeatNumber); relErr != nil {
			pkgApp.LogError(ctx, l.logger, "failed to release seat after aborted sale", relErr, map[string]interface{}{
				"trip_id": data.TripID,
				"seat":    data.SeatNumber,
			})
		}
		return domain.Ticket{}, err
	}

	if ticket.SalesChannel == domain.ChannelCounter {
		if err := l.cash.RecordSale(ctx, ticket.CashierID, ticket.Price, ticket.PaymentMethod, ticket.ID, ticket.TripID); err != nil {
			// A counter sale without a drawer entry would break the audit,
			// so the whole sale is unwound.
			l.compensateSale(ctx, ticket)
			return domain.Ticket{}, err
		}
	}

	l.logger.Info(ctx, "ticket sold", map[string]interface{}{
		"ticket_id": ticket.ID,
		"trip_id":   ticket.TripID,
		"seat":      ticket.SeatNumber,
		"channel":   ticket.SalesChannel,
	})
	return ticket, nil
}

func (l *Lifecycle) compensateSale(ctx context.Context, ticket domain.Ticket) {
	ticket.Status = domain.TicketCancelled
	if err := l.tickets.Update(ctx, ticket); err != nil {
		pkgApp.LogError(ctx, l.logger, "failed to void ticket after drawer error", err, map[string]interface{}{
			"ticket_id": ticket.ID,
		})
		return
	}
	if err := l.seats.Release(ctx, ticket.TripID, ticket.SeatNumber); err != nil {
		pkgApp.LogError(ctx, l.logger, "failed to release seat after drawer error", err, map[string]interface{}{
			"ticket_id": ticket.ID,
		})
	}
}

// Cancel transitions a valid ticket to cancelled and frees its seat. A
// cancellation moves no cash; that distinction from refund is policy.
// The status change and the seat release are all-or-nothing: a failed
// release reverts the status.
func (l *Lifecycle) Cancel(ctx context.Context, ticketID string) error {
	ticket, err := l.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status.Terminal() {
		return pkgDomain.WrapFault(domain.ErrTicketTerminal, "cancel ticket %s in status %s", ticket.ID, ticket.Status)
	}

	ticket.Status = domain.TicketCancelled
	if err := l.tickets.Update(ctx, ticket); err != nil {
		return err
	}

	if err := l.seats.Release(ctx, ticket.TripID, ticket.SeatNumber); err != nil {
		ticket.Status = domain.TicketValid
		if revertErr := l.tickets.Update(ctx, ticket); revertErr != nil {
			pkgApp.LogError(ctx, l.logger, "failed to revert ticket after release error", revertErr, map[string]interface{}{
				"ticket_id": ticket.ID,
			})
		}
		return err
	}

	l.logger.Info(ctx, "ticket cancelled", map[string]interface{}{
		"ticket_id": ticket.ID,
		"trip_id":   ticket.TripID,
	})
	return nil
}

// Refund transitions a valid ticket to refunded, frees its seat and, for
// counter sales, appends a refund transaction under the acting cashier,
// who may differ from the original seller. Refunds are rejected once the
// departure is closer than the refund buffer.
func (l *Lifecycle) Refund(ctx context.Context, ticketID, actingCashierID string) error {
	ticket, err := l.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status.Terminal() {
		return pkgDomain.WrapFault(domain.ErrTicketTerminal, "refund ticket %s in status %s", ticket.ID, ticket.Status)
	}

	trip, err := l.trips.FindByID(ctx, ticket.TripID)
	if err != nil {
		return err
	}
	if trip.Departure.Sub(l.now()) < l.refundBuffer {
		return pkgDomain.WrapFault(domain.ErrRefundWindowClosed,
			"ticket %s departs at %s", ticket.ID, trip.Departure.Format(time.RFC3339))
	}

	ticket.Status = domain.TicketRefunded
	if err := l.tickets.Update(ctx, ticket); err != nil {
		return err
	}

	if err := l.seats.Release(ctx, ticket.TripID, ticket.SeatNumber); err != nil {
		ticket.Status = domain.TicketValid
		if revertErr := l.tickets.Update(ctx, ticket); revertErr != nil {
			pkgApp.LogError(ctx, l.logger, "failed to revert ticket after release error", revertErr, map[string]interface{}{
				"ticket_id": ticket.ID,
			})
		}
		return err
	}

	if ticket.SalesChannel == domain.ChannelCounter {
		if err := l.cash.RecordRefund(ctx, actingCashierID, ticket.Price, ticket.PaymentMethod, ticket.ID, ticket.TripID); err != nil {
			// The ticket stays refunded; the missing drawer entry is
			// surfaced for reconciliation instead of faking a rollback of
			// an append-only log.
			pkgApp.LogError(ctx, l.logger, "refund recorded without drawer entry", err, map[string]interface{}{
				"ticket_id":  ticket.ID,
				"cashier_id": actingCashierID,
			})
			return pkgDomain.WrapFault(domain.ErrDrawerDesync, "refund of ticket %s missing drawer entry", ticket.ID)
		}
	}

	l.logger.Info(ctx, "ticket refunded", map[string]interface{}{
		"ticket_id": ticket.ID,
		"trip_id":   ticket.TripID,
		"cashier":   actingCashierID,
	})
	return nil
}

// CancelTrip cancels a scheduled or boarding trip and cascades to its
// valid tickets. Each ticket cancel is all-or-nothing on its own; one
// failure is reported and the cascade moves on to the next ticket.
// Terminal tickets are left untouched.
func (l *Lifecycle) CancelTrip(ctx context.Context, tripID string) (CascadeReport, error) {
	var report CascadeReport

	trip, err := l.trips.FindByID(ctx, tripID)
	if err != nil {
		return report, err
	}
	status := trip.EffectiveStatus(l.now(), l.boardingWindow)
	if status != tripDomain.TripScheduled && status != tripDomain.TripBoarding {
		return report, pkgDomain.WrapFault(tripDomain.ErrTripNotCancellable, "trip %s is %s", trip.ID, status)
	}

	if err := l.trips.UpdateStatus(ctx, tripID, tripDomain.TripCancelled); err != nil {
		return report, err
	}

	tickets, err := l.tickets.ListByTrip(ctx, tripID)
	if err != nil {
		return report, err
	}

	for _, ticket := range tickets {
		if ticket.Status != domain.TicketValid {
			continue
		}
		if err := l.Cancel(ctx, ticket.ID); err != nil {
			pkgApp.LogError(ctx, l.logger, "cascade failed to cancel ticket", err, map[string]interface{}{
				"trip_id":   tripID,
				"ticket_id": ticket.ID,
			})
			report.Failed = append(report.Failed, CascadeFailure{TicketID: ticket.ID, Reason: err.Error()})
			continue
		}
		report.Cancelled++
	}

	l.logger.Info(ctx, "trip cancelled", map[string]interface{}{
		"trip_id":   tripID,
		"cancelled": report.Cancelled,
		"failed":    len(report.Failed),
	})
	return report, nil
}
