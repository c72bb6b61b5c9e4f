package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var (
	ErrTripNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "trip not found")
	// ErrTripExists signals the idempotent generation path: the trip for
	// this template and date was already created by an earlier run.
	ErrTripExists = pkgDomain.NewFault(pkgDomain.FaultConflict, "trip already exists")
	// ErrTripNotCancellable rejects cancellation of trips already departed,
	// arrived or cancelled.
	ErrTripNotCancellable = pkgDomain.NewFault(pkgDomain.FaultConflict, "trip cannot be cancelled in its current state")
)

// TripStatus is the closed set of trip states. The happy path is
// scheduled -> boarding -> departed -> arrived, driven by elapsed time.
// Cancelled is explicit, terminal and short-circuits the rest.
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripBoarding  TripStatus = "boarding"
	TripDeparted  TripStatus = "departed"
	TripArrived   TripStatus = "arrived"
	TripCancelled TripStatus = "cancelled"
)

// Trip is one concrete, dated departure with its own seat inventory.
// AvailableSeats is mutated only by the seat ledger; Status only by time
// progression or explicit cancellation.
type Trip struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	TemplateID     string     `json:"templateId" gorm:"index"`
	RouteID        string     `json:"routeId" gorm:"index"`
	StationID      string     `json:"stationId" gorm:"index"`
	BusCode        string     `json:"busCode"`
	Departure      time.Time  `json:"departure"`
	Arrival        time.Time  `json:"arrival"`
	TotalSeats     int        `json:"totalSeats"`
	AvailableSeats int        `json:"availableSeats"`
	Price          int64      `json:"price"`
	Status         TripStatus `json:"status"`
	ServiceClass   string     `json:"serviceClass"`
}

// StatusAt derives the advisory, time-based status of a departure.
func StatusAt(departure, arrival, now time.Time, boardingWindow time.Duration) TripStatus {
	switch {
	case now.Before(departure.Add(-boardingWindow)):
		return TripScheduled
	case now.Before(departure):
		return TripBoarding
	case now.Before(arrival):
		return TripDeparted
	default:
		return TripArrived
	}
}

// EffectiveStatus recomputes the time-based status at now. An explicit
// cancellation is terminal and always wins.
func (t Trip) EffectiveStatus(now time.Time, boardingWindow time.Duration) TripStatus {
	if t.Status == TripCancelled {
		return TripCancelled
	}
	return StatusAt(t.Departure, t.Arrival, now, boardingWindow)
}

// Sellable reports whether tickets may still be sold for the trip.
func (t Trip) Sellable(now time.Time, boardingWindow time.Duration) bool {
	s := t.EffectiveStatus(now, boardingWindow)
	return s == TripScheduled || s == TripBoarding
}

// tripNamespace seeds deterministic trip ids. Never change it: generation
// idempotency across runs depends on stable ids.
var tripNamespace = uuid.MustParse("7b0d3a52-9a77-4c4e-8f11-2c8e6a1d9b40")

// TripID derives the deterministic id for a template on a calendar date.
// Re-running generation for the same window yields the same ids, which is
// what makes the batch idempotent.
func TripID(templateID string, date time.Time) string {
	key := templateID + "|" + date.Format("2006-01-02")
	return uuid.NewSHA1(tripNamespace, []byte(key)).String()
}

// TripRepository is the persistence port for trips. Save must reject an
// existing id with ErrTripExists.
type TripRepository interface {
	Save(ctx context.Context, trip Trip) error
	FindByID(ctx context.Context, id string) (Trip, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]Trip, error)
	CountFutureByTemplate(ctx context.Context, templateID string, after time.Time) (int64, error)
	Update(ctx context.Context, trip Trip) error
	UpdateAvailableSeats(ctx context.Context, id string, availableSeats int) error
	UpdateStatus(ctx context.Context, id string, status TripStatus) error
}
