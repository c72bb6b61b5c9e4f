package domain_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

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

func newLedgerFixture(t *testing.T, totalSeats int) (*domain.SeatLedger, *tripInfra.InMemoryTripRepository, *ticketInfra.InMemoryTicketRepository) {
	t.Helper()
	tripRepo := tripInfra.NewInMemoryTripRepository(nopLogger{})
	ticketRepo := ticketInfra.NewInMemoryTicketRepository()

	departure := time.Now().Add(24 * time.Hour)
	err := tripRepo.Save(context.Background(), tripDomain.Trip{
		ID:             "trip-1",
		Departure:      departure,
		Arrival:        departure.Add(time.Hour),
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
		Status:         tripDomain.TripScheduled,
	})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	return domain.NewSeatLedger(tripRepo, ticketRepo), tripRepo, ticketRepo
}

func TestReserveHoldsSeatAndWritesCountThrough(t *testing.T) {
	ctx := context.Background()
	ledger, tripRepo, _ := newLedgerFixture(t, 10)

	if err := ledger.Reserve(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	available, err := ledger.Available(ctx, "trip-1")
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	if available != 9 {
		t.Errorf("available = %d, want 9", available)
	}

	trip, err := tripRepo.FindByID(ctx, "trip-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if trip.AvailableSeats != 9 {
		t.Errorf("persisted available = %d, want 9", trip.AvailableSeats)
	}
}

func TestReserveSameSeatTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedgerFixture(t, 10)

	if err := ledger.Reserve(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}
	err := ledger.Reserve(ctx, "trip-1", "A1")
	if !errors.Is(err, domain.ErrSeatConflict) {
		t.Fatalf("second Reserve = %v, want ErrSeatConflict", err)
	}

	if available, _ := ledger.Available(ctx, "trip-1"); available != 9 {
		t.Errorf("available = %d after failed reserve, want 9", available)
	}
}

func TestReserveFullTripConflicts(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedgerFixture(t, 1)

	if err := ledger.Reserve(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	err := ledger.Reserve(ctx, "trip-1", "A2")
	if !errors.Is(err, domain.ErrSeatConflict) {
		t.Fatalf("Reserve on full trip = %v, want ErrSeatConflict", err)
	}
}

func TestConcurrentReservesAdmitOneWinner(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedgerFixture(t, 10)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Reserve(ctx, "trip-1", "A1")
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrSeatConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != attempts-1 {
		t.Fatalf("wins = %d, conflicts = %d, want 1 and %d", wins, conflicts, attempts-1)
	}
}

func TestReleaseFreesSeatAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedgerFixture(t, 10)

	if err := ledger.Reserve(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := ledger.Release(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if available, _ := ledger.Available(ctx, "trip-1"); available != 10 {
		t.Errorf("available = %d, want 10", available)
	}

	// A second release of the same seat is a no-op.
	if err := ledger.Release(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("repeated Release: %v", err)
	}
	if available, _ := ledger.Available(ctx, "trip-1"); available != 10 {
		t.Errorf("available = %d after repeated release, want 10", available)
	}

	// The seat is reservable again.
	if err := ledger.Reserve(ctx, "trip-1", "A1"); err != nil {
		t.Fatalf("Reserve after release: %v", err)
	}
}

func TestLedgerHydratesFromExistingTickets(t *testing.T) {
	ctx := context.Background()
	ledger, _, ticketRepo := newLedgerFixture(t, 10)

	_ = ticketRepo.Save(ctx, domain.Ticket{
		ID:         "ticket-1",
		TripID:     "trip-1",
		SeatNumber: "B2",
		Status:     domain.TicketValid,
	})
	_ = ticketRepo.Save(ctx, domain.Ticket{
		ID:         "ticket-2",
		TripID:     "trip-1",
		SeatNumber: "B3",
		Status:     domain.TicketCancelled,
	})

	// The valid ticket's seat is taken; the cancelled one's is not.
	if err := ledger.Reserve(ctx, "trip-1", "B2"); !errors.Is(err, domain.ErrSeatConflict) {
		t.Fatalf("Reserve B2 = %v, want ErrSeatConflict", err)
	}
	if err := ledger.Reserve(ctx, "trip-1", "B3"); err != nil {
		t.Fatalf("Reserve B3: %v", err)
	}
}

func TestLedgerRejectsOverbookedInventory(t *testing.T) {
	ctx := context.Background()
	ledger, _, ticketRepo := newLedgerFixture(t, 1)

	_ = ticketRepo.Save(ctx, domain.Ticket{ID: "t1", TripID: "trip-1", SeatNumber: "A1", Status: domain.TicketValid})
	_ = ticketRepo.Save(ctx, domain.Ticket{ID: "t2", TripID: "trip-1", SeatNumber: "A2", Status: domain.TicketValid})

	_, err := ledger.Available(ctx, "trip-1")
	if !errors.Is(err, domain.ErrSeatOverrelease) {
		t.Fatalf("Available = %v, want ErrSeatOverrelease", err)
	}
}
