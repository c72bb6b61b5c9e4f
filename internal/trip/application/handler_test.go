package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/transgare/backoffice/internal/trip/application"
	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/internal/trip/infrastructure"
)

func TestDeleteTemplateGuard(t *testing.T) {
	ctx := context.Background()
	logger := nopLogger{}
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

	templates := infrastructure.NewInMemoryTemplateRepository()
	trips := infrastructure.NewInMemoryTripRepository(logger)
	_ = templates.Save(ctx, domain.ScheduleTemplate{ID: "template-1", RouteID: "route-1", Active: true})

	handler := application.NewDeleteTemplateHandler(templates, trips, func() time.Time { return now }, logger)

	t.Run("refused while future trips exist", func(t *testing.T) {
		_ = trips.Save(ctx, domain.Trip{
			ID:         "trip-future",
			TemplateID: "template-1",
			Departure:  now.Add(48 * time.Hour),
			Arrival:    now.Add(50 * time.Hour),
		})

		err := handler.Handle(ctx, application.NewDeleteTemplateCommand(application.DeleteTemplateData{TemplateID: "template-1"}))
		if !errors.Is(err, domain.ErrTemplateInUse) {
			t.Fatalf("Handle = %v, want ErrTemplateInUse", err)
		}
		if _, err := templates.FindByID(ctx, "template-1"); err != nil {
			t.Fatal("template was deleted despite the guard")
		}
	})

	t.Run("allowed once only past trips remain", func(t *testing.T) {
		// Move the trip into the past.
		_ = trips.Update(ctx, domain.Trip{
			ID:         "trip-future",
			TemplateID: "template-1",
			Departure:  now.Add(-48 * time.Hour),
			Arrival:    now.Add(-46 * time.Hour),
		})

		err := handler.Handle(ctx, application.NewDeleteTemplateCommand(application.DeleteTemplateData{TemplateID: "template-1"}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if _, err := templates.FindByID(ctx, "template-1"); !errors.Is(err, domain.ErrTemplateNotFound) {
			t.Fatalf("FindByID = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		err := handler.Handle(ctx, application.NewDeleteTemplateCommand(application.DeleteTemplateData{TemplateID: "nope"}))
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			t.Fatalf("Handle = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestListTripsRecomputesStatusAndFiltersStation(t *testing.T) {
	ctx := context.Background()
	logger := nopLogger{}
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

	trips := infrastructure.NewInMemoryTripRepository(logger)
	// Stored as scheduled, but now is inside its boarding window.
	_ = trips.Save(ctx, domain.Trip{
		ID:        "trip-boarding",
		StationID: "station-1",
		Departure: now.Add(15 * time.Minute),
		Arrival:   now.Add(2 * time.Hour),
		Status:    domain.TripScheduled,
	})
	_ = trips.Save(ctx, domain.Trip{
		ID:        "trip-other-station",
		StationID: "station-2",
		Departure: now.Add(time.Hour),
		Arrival:   now.Add(3 * time.Hour),
		Status:    domain.TripScheduled,
	})

	handler := application.NewListTripsHandler(trips, 30*time.Minute, func() time.Time { return now }, logger)

	got, err := handler.Handle(ctx, application.NewListTripsQuery(application.ListTripsData{
		From:      now,
		To:        now.Add(24 * time.Hour),
		StationID: "station-1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d trips, want 1", len(got))
	}
	if got[0].ID != "trip-boarding" {
		t.Errorf("trip = %s, want trip-boarding", got[0].ID)
	}
	if got[0].Status != domain.TripBoarding {
		t.Errorf("status = %s, want boarding recomputed at read time", got[0].Status)
	}

	// The stored record is untouched; the recomputation is advisory.
	stored, _ := trips.FindByID(ctx, "trip-boarding")
	if stored.Status != domain.TripScheduled {
		t.Errorf("stored status = %s, want scheduled", stored.Status)
	}
}
