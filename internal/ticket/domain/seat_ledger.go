package domain

import (
	"context"
	"sync"

	tripDomain "github.com/transgare/backoffice/internal/trip/domain"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// SeatLedger is the per-trip bookkeeping of which seats are held. All
// operations on one trip are serialized by that trip's mutex, so two
// concurrent reserves of the same seat admit exactly one winner.
// Operations on different trips do not contend.
//
// The ledger owns Trip.AvailableSeats: every successful reserve or
// release writes the new count through the trip repository.
type SeatLedger struct {
	mu    sync.Mutex
	trips map[string]*tripSeats

	tripRepo   tripDomain.TripRepository
	ticketRepo TicketRepository
}

type tripSeats struct {
	mu         sync.Mutex
	totalSeats int
	occupied   map[string]struct{}
}

func NewSeatLedger(tripRepo tripDomain.TripRepository, ticketRepo TicketRepository) *SeatLedger {
	return &SeatLedger{
		trips:      make(map[string]*tripSeats),
		tripRepo:   tripRepo,
		ticketRepo: ticketRepo,
	}
}

// state returns the in-memory seat state for a trip, hydrating it from
// the repositories on first touch.
func (l *SeatLedger) state(ctx context.Context, tripID string) (*tripSeats, error) {
	l.mu.Lock()
	ts, ok := l.trips[tripID]
	l.mu.Unlock()
	if ok {
		return ts, nil
	}

	trip, err := l.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	seats, err := l.ticketRepo.ListOccupiedSeats(ctx, tripID)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		occupied[s] = struct{}{}
	}
	if len(occupied) > trip.TotalSeats {
		return nil, pkgDomain.WrapFault(ErrSeatOverrelease,
			"trip %s holds %d seats for %d capacity", tripID, len(occupied), trip.TotalSeats)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.trips[tripID]; ok {
		// Another goroutine hydrated the trip first; its state wins.
		return existing, nil
	}
	ts = &tripSeats{totalSeats: trip.TotalSeats, occupied: occupied}
	l.trips[tripID] = ts
	return ts, nil
}

// Reserve holds a seat for a ticket. An already-held seat returns
// ErrSeatConflict and mutates nothing.
func (l *SeatLedger) Reserve(ctx context.Context, tripID, seatNumber string) error {
	ts, err := l.state(ctx, tripID)
	if err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, taken := ts.occupied[seatNumber]; taken {
		return pkgDomain.WrapFault(ErrSeatConflict, "seat %s on trip %s", seatNumber, tripID)
	}
	if len(ts.occupied) >= ts.totalSeats {
		return pkgDomain.WrapFault(ErrSeatConflict, "trip %s is full", tripID)
	}

	ts.occupied[seatNumber] = struct{}{}
	if err := l.tripRepo.UpdateAvailableSeats(ctx, tripID, ts.totalSeats-len(ts.occupied)); err != nil {
		delete(ts.occupied, seatNumber)
		return err
	}
	return nil
}

// Release frees a seat. Releasing an already-free seat is a no-op, not an
// error, so release paths stay idempotent; the available count can never
// exceed capacity (overbooked inventory is caught at hydration as
// ErrSeatOverrelease).
func (l *SeatLedger) Release(ctx context.Context, tripID, seatNumber string) error {
	ts, err := l.state(ctx, tripID)
	if err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, taken := ts.occupied[seatNumber]; !taken {
		return nil
	}

	delete(ts.occupied, seatNumber)
	available := ts.totalSeats - len(ts.occupied)
	if err := l.tripRepo.UpdateAvailableSeats(ctx, tripID, available); err != nil {
		ts.occupied[seatNumber] = struct{}{}
		return err
	}
	return nil
}

// Available reports the current free-seat count for a trip.
func (l *SeatLedger) Available(ctx context.Context, tripID string) (int, error) {
	ts, err := l.state(ctx, tripID)
	if err != nil {
		return 0, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.totalSeats - len(ts.occupied), nil
}
