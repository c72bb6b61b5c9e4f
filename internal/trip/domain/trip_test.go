package domain

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	departure := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	arrival := departure.Add(90 * time.Minute)
	window := 30 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want TripStatus
	}{
		{"well before departure", departure.Add(-2 * time.Hour), TripScheduled},
		{"just before boarding", departure.Add(-31 * time.Minute), TripScheduled},
		{"inside boarding window", departure.Add(-15 * time.Minute), TripBoarding},
		{"at departure", departure, TripDeparted},
		{"en route", departure.Add(time.Hour), TripDeparted},
		{"at arrival", arrival, TripArrived},
		{"after arrival", arrival.Add(time.Hour), TripArrived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusAt(departure, arrival, tt.now, window); got != tt.want {
				t.Errorf("StatusAt = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEffectiveStatusCancelledWins(t *testing.T) {
	departure := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	trip := Trip{
		Departure: departure,
		Arrival:   departure.Add(90 * time.Minute),
		Status:    TripCancelled,
	}

	// Even at a time when the clock would say departed.
	got := trip.EffectiveStatus(departure.Add(time.Hour), 30*time.Minute)
	if got != TripCancelled {
		t.Fatalf("EffectiveStatus = %s, want cancelled", got)
	}
}

func TestSellable(t *testing.T) {
	departure := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	trip := Trip{
		Departure: departure,
		Arrival:   departure.Add(90 * time.Minute),
		Status:    TripScheduled,
	}
	window := 30 * time.Minute

	if !trip.Sellable(departure.Add(-2*time.Hour), window) {
		t.Error("scheduled trip should be sellable")
	}
	if !trip.Sellable(departure.Add(-10*time.Minute), window) {
		t.Error("boarding trip should be sellable")
	}
	if trip.Sellable(departure.Add(time.Minute), window) {
		t.Error("departed trip should not be sellable")
	}

	trip.Status = TripCancelled
	if trip.Sellable(departure.Add(-2*time.Hour), window) {
		t.Error("cancelled trip should not be sellable")
	}
}
