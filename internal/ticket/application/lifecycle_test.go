package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	cashierApp "github.com/transgare/backoffice/internal/cashier/application"
	cashierInfra "github.com/transgare/backoffice/internal/cashier/infrastructure"
	"github.com/transgare/backoffice/internal/ticket/application"
	"github.com/transgare/backoffice/internal/ticket/domain"
	ticketInfra "github.com/transgare/backoffice/internal/ticket/infrastructure"
	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	tripInfra "github.com/transgare/backoffice/internal/trip/infrastructure"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

type lifecycleFixture struct {
	now       time.Time
	tickets   *ticketInfra.InMemoryTicketRepository
	trips     *tripInfra.InMemoryTripRepository
	cash      *cashierApp.Ledger
	lifecycle *application.Lifecycle
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	logger := nopLogger{}
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var seq int
	idGenerator := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	tickets := ticketInfra.NewInMemoryTicketRepository()
	trips := tripInfra.NewInMemoryTripRepository(logger)
	seats := domain.NewSeatLedger(trips, tickets)
	cash := cashierApp.NewLedger(cashierInfra.NewInMemoryTransactionRepository(), idGenerator, clock, logger)

	return &lifecycleFixture{
		now:     now,
		tickets: tickets,
		trips:   trips,
		cash:    cash,
		lifecycle: application.NewLifecycle(tickets, trips, seats, cash, idGenerator,
			30*time.Minute, 2*time.Hour, clock, logger),
	}
}

// seedTrip creates a scheduled trip departing at now+lead.
func (f *lifecycleFixture) seedTrip(t *testing.T, id string, lead time.Duration) {
	t.Helper()
	err := f.trips.Save(context.Background(), tripDomain.Trip{
		ID:             id,
		Departure:      f.now.Add(lead),
		Arrival:        f.now.Add(lead + 90*time.Minute),
		TotalSeats:     10,
		AvailableSeats: 10,
		Price:          4000,
		Status:         tripDomain.TripScheduled,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
}

func counterSale(tripID, seat string) application.SellTicketData {
	return application.SellTicketData{
		TripID:            tripID,
		PassengerName:     "Awa Ndiaye",
		PassengerDocument: "CNI-42",
		SeatNumber:        seat,
		PaymentMethod:     "cash",
		SalesChannel:      domain.ChannelCounter,
		CashierID:         "cashier-1",
	}
}

func TestSellCounterTicketRecordsDrawerEntry(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	ticket, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if ticket.Status != domain.TicketValid {
		t.Errorf("status = %s, want valid", ticket.Status)
	}
	if ticket.Price != 4000 {
		t.Errorf("price = %d, want the trip price 4000", ticket.Price)
	}

	trip, _ := f.trips.FindByID(ctx, "trip-1")
	if trip.AvailableSeats != 9 {
		t.Errorf("available seats = %d, want 9", trip.AvailableSeats)
	}

	balance, err := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 4000 {
		t.Errorf("drawer balance = %d, want 4000", balance)
	}
}

func TestSellOnlineTicketMovesNoCash(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	data := counterSale("trip-1", "A1")
	data.SalesChannel = domain.ChannelOnline
	data.PaymentMethod = "card"

	if _, err := f.lifecycle.Sell(ctx, data); err != nil {
		t.Fatalf("Sell: %v", err)
	}

	balance, _ := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if balance != 0 {
		t.Errorf("drawer balance = %d after online sale, want 0", balance)
	}
}

func TestSellSameSeatTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	if _, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1")); err != nil {
		t.Fatalf("first Sell: %v", err)
	}
	_, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
	if !errors.Is(err, domain.ErrSeatConflict) {
		t.Fatalf("second Sell = %v, want ErrSeatConflict", err)
	}

	// The failed sale must leave no drawer entry behind.
	balance, _ := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if balance != 4000 {
		t.Errorf("drawer balance = %d, want 4000 from the single sale", balance)
	}
}

func TestSellRejectsSeatOutsideInventory(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	for _, seat := range []string{"ZZ-999", "C3", "A0"} {
		_, err := f.lifecycle.Sell(ctx, counterSale("trip-1", seat))
		if !errors.Is(err, domain.ErrSeatInvalid) {
			t.Fatalf("Sell seat %q = %v, want ErrSeatInvalid", seat, err)
		}
	}

	// A rejected label never reaches the ledger or the drawer.
	trip, _ := f.trips.FindByID(ctx, "trip-1")
	if trip.AvailableSeats != 10 {
		t.Errorf("available seats = %d, want 10", trip.AvailableSeats)
	}
	balance, _ := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if balance != 0 {
		t.Errorf("drawer balance = %d, want 0", balance)
	}
}

func TestSellOnNotSellableTrip(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)

	t.Run("cancelled trip", func(t *testing.T) {
		f.seedTrip(t, "trip-cancelled", 3*time.Hour)
		_ = f.trips.UpdateStatus(ctx, "trip-cancelled", tripDomain.TripCancelled)

		_, err := f.lifecycle.Sell(ctx, counterSale("trip-cancelled", "A1"))
		if !errors.Is(err, domain.ErrTripNotSellable) {
			t.Fatalf("Sell = %v, want ErrTripNotSellable", err)
		}
	})

	t.Run("departed trip", func(t *testing.T) {
		f.seedTrip(t, "trip-departed", -time.Hour)

		_, err := f.lifecycle.Sell(ctx, counterSale("trip-departed", "A1"))
		if !errors.Is(err, domain.ErrTripNotSellable) {
			t.Fatalf("Sell = %v, want ErrTripNotSellable", err)
		}
	})
}

func TestCancelFreesSeatWithoutCashMovement(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	ticket, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if err := f.lifecycle.Cancel(ctx, ticket.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	stored, _ := f.tickets.FindByID(ctx, ticket.ID)
	if stored.Status != domain.TicketCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
	trip, _ := f.trips.FindByID(ctx, "trip-1")
	if trip.AvailableSeats != 10 {
		t.Errorf("available seats = %d, want 10", trip.AvailableSeats)
	}

	// Cancellation keeps the sale money in the drawer.
	balance, _ := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
	if balance != 4000 {
		t.Errorf("drawer balance = %d, want 4000", balance)
	}

	// A cancelled ticket is terminal.
	if err := f.lifecycle.Cancel(ctx, ticket.ID); !errors.Is(err, domain.ErrTicketTerminal) {
		t.Fatalf("second Cancel = %v, want ErrTicketTerminal", err)
	}
}

func TestRefundWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("open window refunds and reverses cash", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.seedTrip(t, "trip-1", 3*time.Hour)

		ticket, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
		if err != nil {
			t.Fatalf("Sell: %v", err)
		}
		if err := f.lifecycle.Refund(ctx, ticket.ID, "cashier-2"); err != nil {
			t.Fatalf("Refund: %v", err)
		}

		stored, _ := f.tickets.FindByID(ctx, ticket.ID)
		if stored.Status != domain.TicketRefunded {
			t.Errorf("status = %s, want refunded", stored.Status)
		}
		trip, _ := f.trips.FindByID(ctx, "trip-1")
		if trip.AvailableSeats != 10 {
			t.Errorf("available seats = %d, want 10", trip.AvailableSeats)
		}

		// The refund is booked under the acting cashier, not the seller.
		sellerBalance, _ := f.cash.Balance(ctx, "cashier-1", time.Time{}, time.Time{})
		if sellerBalance != 4000 {
			t.Errorf("seller balance = %d, want 4000", sellerBalance)
		}
		actingBalance, _ := f.cash.Balance(ctx, "cashier-2", time.Time{}, time.Time{})
		if actingBalance != -4000 {
			t.Errorf("acting cashier balance = %d, want -4000", actingBalance)
		}
	})

	t.Run("closed window is refused", func(t *testing.T) {
		f := newLifecycleFixture(t)
		f.seedTrip(t, "trip-1", time.Hour)

		ticket, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
		if err != nil {
			t.Fatalf("Sell: %v", err)
		}
		err = f.lifecycle.Refund(ctx, ticket.ID, "cashier-1")
		if !errors.Is(err, domain.ErrRefundWindowClosed) {
			t.Fatalf("Refund = %v, want ErrRefundWindowClosed", err)
		}

		stored, _ := f.tickets.FindByID(ctx, ticket.ID)
		if stored.Status != domain.TicketValid {
			t.Errorf("status = %s after refused refund, want valid", stored.Status)
		}
	})
}

// unreliableDrawer accepts sales but refuses refund entries.
type unreliableDrawer struct{}

func (unreliableDrawer) RecordSale(context.Context, string, int64, string, string, string) error {
	return nil
}

func (unreliableDrawer) RecordRefund(context.Context, string, int64, string, string, string) error {
	return errors.New("drawer unavailable")
}

func TestRefundDrawerFailureKeepsTicketRefunded(t *testing.T) {
	ctx := context.Background()
	logger := nopLogger{}
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var seq int
	idGenerator := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	tickets := ticketInfra.NewInMemoryTicketRepository()
	trips := tripInfra.NewInMemoryTripRepository(logger)
	seats := domain.NewSeatLedger(trips, tickets)
	lifecycle := application.NewLifecycle(tickets, trips, seats, unreliableDrawer{}, idGenerator,
		30*time.Minute, 2*time.Hour, clock, logger)

	err := trips.Save(ctx, tripDomain.Trip{
		ID:             "trip-1",
		Departure:      now.Add(3 * time.Hour),
		Arrival:        now.Add(4 * time.Hour),
		TotalSeats:     10,
		AvailableSeats: 10,
		Price:          4000,
		Status:         tripDomain.TripScheduled,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	ticket, err := lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}

	err = lifecycle.Refund(ctx, ticket.ID, "cashier-1")
	if !errors.Is(err, domain.ErrDrawerDesync) {
		t.Fatalf("Refund = %v, want ErrDrawerDesync", err)
	}
	if errors.Is(err, domain.ErrTicketTerminal) {
		t.Fatal("drawer desync must not read as a terminal-state error")
	}

	// The refund itself stands; only the drawer entry is missing.
	stored, _ := tickets.FindByID(ctx, ticket.ID)
	if stored.Status != domain.TicketRefunded {
		t.Errorf("status = %s, want refunded", stored.Status)
	}
	trip, _ := trips.FindByID(ctx, "trip-1")
	if trip.AvailableSeats != 10 {
		t.Errorf("available seats = %d, want 10", trip.AvailableSeats)
	}
}

func TestCancelTripCascadesOverValidTickets(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", 3*time.Hour)

	first, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A1"))
	if err != nil {
		t.Fatalf("Sell A1: %v", err)
	}
	if _, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A2")); err != nil {
		t.Fatalf("Sell A2: %v", err)
	}
	if _, err := f.lifecycle.Sell(ctx, counterSale("trip-1", "A3")); err != nil {
		t.Fatalf("Sell A3: %v", err)
	}
	// One ticket is already cancelled before the trip is.
	if err := f.lifecycle.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	report, err := f.lifecycle.CancelTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("CancelTrip: %v", err)
	}
	if report.Cancelled != 2 || len(report.Failed) != 0 {
		t.Fatalf("report = %+v, want 2 cancelled, 0 failed", report)
	}

	trip, _ := f.trips.FindByID(ctx, "trip-1")
	if trip.Status != tripDomain.TripCancelled {
		t.Errorf("trip status = %s, want cancelled", trip.Status)
	}

	tickets, _ := f.tickets.ListByTrip(ctx, "trip-1")
	for _, ticket := range tickets {
		if ticket.Status != domain.TicketCancelled {
			t.Errorf("ticket %s status = %s, want cancelled", ticket.ID, ticket.Status)
		}
	}

	// A cancelled trip cannot be cancelled again.
	if _, err := f.lifecycle.CancelTrip(ctx, "trip-1"); !errors.Is(err, tripDomain.ErrTripNotCancellable) {
		t.Fatalf("second CancelTrip = %v, want ErrTripNotCancellable", err)
	}
}

func TestCancelTripRefusedAfterDeparture(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	f.seedTrip(t, "trip-1", -time.Hour)

	_, err := f.lifecycle.CancelTrip(ctx, "trip-1")
	if !errors.Is(err, tripDomain.ErrTripNotCancellable) {
		t.Fatalf("CancelTrip = %v, want ErrTripNotCancellable", err)
	}
}
