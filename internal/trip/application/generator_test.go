package application_test

import (
	"context"
	"testing"
	"time"

	pricingDomain "github.com/transgare/backoffice/internal/pricing/domain"
	pricingInfra "github.com/transgare/backoffice/internal/pricing/infrastructure"
	"github.com/transgare/backoffice/internal/trip/application"
	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/internal/trip/infrastructure"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

type generatorFixture struct {
	rules     *pricingInfra.InMemoryRuleRepository
	routes    *infrastructure.InMemoryRouteRepository
	templates *infrastructure.InMemoryTemplateRepository
	trips     *infrastructure.InMemoryTripRepository
	generator *application.Generator
}

func newGeneratorFixture(t *testing.T, now time.Time) *generatorFixture {
	t.Helper()
	logger := nopLogger{}
	f := &generatorFixture{
		rules:     pricingInfra.NewInMemoryRuleRepository(logger),
		routes:    infrastructure.NewInMemoryRouteRepository(),
		templates: infrastructure.NewInMemoryTemplateRepository(),
		trips:     infrastructure.NewInMemoryTripRepository(logger),
	}
	f.generator = application.NewGenerator(f.templates, f.routes, f.trips, f.rules,
		30*time.Minute, func() time.Time { return now }, logger)
	return f
}

func (f *generatorFixture) seedRoute(ctx context.Context, active bool) {
	_ = f.routes.Save(ctx, domain.Route{
		ID:              "route-1",
		DepartureCity:   "Dakar",
		ArrivalCity:     "Thies",
		DurationMinutes: 90,
		BasePrice:       5000,
		Active:          active,
	})
}

func (f *generatorFixture) seedTemplate(ctx context.Context, routeID string, active bool) {
	_ = f.templates.Save(ctx, domain.ScheduleTemplate{
		ID:            "template-1",
		RouteID:       routeID,
		StationID:     "station-1",
		DepartureTime: "08:00",
		DaysOfWeek:    []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		ServiceClass:  "standard",
		TotalSeats:    40,
		Active:        active,
	})
}

func TestGenerateExpandsMatchingWeekdays(t *testing.T) {
	ctx := context.Background()
	// A Sunday. The following week has Monday, Wednesday and Friday inside
	// a 7-day window.
	from := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	f := newGeneratorFixture(t, from)
	f.seedRoute(ctx, true)
	f.seedTemplate(ctx, "route-1", true)

	report, err := f.generator.Generate(ctx, from, 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.Created != 3 || report.Existing != 0 || len(report.Skipped) != 0 {
		t.Fatalf("report = %+v, want 3 created", report)
	}

	trips, err := f.trips.ListWindow(ctx, from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("ListWindow: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("got %d trips, want 3", len(trips))
	}

	first := trips[0]
	wantDeparture := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	if !first.Departure.Equal(wantDeparture) {
		t.Errorf("departure = %v, want %v", first.Departure, wantDeparture)
	}
	if !first.Arrival.Equal(wantDeparture.Add(90 * time.Minute)) {
		t.Errorf("arrival = %v, want departure+90m", first.Arrival)
	}
	if first.Price != 5000 {
		t.Errorf("price = %d, want base price 5000", first.Price)
	}
	if first.AvailableSeats != 40 || first.TotalSeats != 40 {
		t.Errorf("seats = %d/%d, want 40/40", first.AvailableSeats, first.TotalSeats)
	}
	if first.Status != domain.TripScheduled {
		t.Errorf("status = %s, want scheduled", first.Status)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	f := newGeneratorFixture(t, from)
	f.seedRoute(ctx, true)
	f.seedTemplate(ctx, "route-1", true)

	if _, err := f.generator.Generate(ctx, from, 7); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	report, err := f.generator.Generate(ctx, from, 7)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if report.Created != 0 || report.Existing != 3 {
		t.Fatalf("second run report = %+v, want 0 created, 3 existing", report)
	}
}

func TestGenerateAppliesPricingRules(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	f := newGeneratorFixture(t, from)
	f.seedRoute(ctx, true)
	f.seedTemplate(ctx, "route-1", true)
	_ = f.rules.Save(ctx, pricingDomain.Rule{
		ID:           "rule-10",
		RouteID:      "route-1",
		DiscountType: pricingDomain.DiscountPercentage,
		Value:        10,
		StartDate:    from.AddDate(0, -1, 0),
		Priority:     1,
		Active:       true,
	})

	if _, err := f.generator.Generate(ctx, from, 7); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	trips, _ := f.trips.ListWindow(ctx, from, from.AddDate(0, 0, 7))
	if len(trips) == 0 {
		t.Fatal("no trips generated")
	}
	if trips[0].Price != 4500 {
		t.Fatalf("price = %d, want 4500 after 10%% discount", trips[0].Price)
	}
}

func TestGenerateSkipsDanglingRoute(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	f := newGeneratorFixture(t, from)
	f.seedTemplate(ctx, "route-missing", true)

	report, err := f.generator.Generate(ctx, from, 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.Created != 0 {
		t.Errorf("created = %d, want 0", report.Created)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Reason != "route not found" {
		t.Fatalf("skipped = %+v, want one 'route not found'", report.Skipped)
	}
}

func TestGenerateIgnoresInactiveTemplatesAndRoutes(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)

	t.Run("inactive template", func(t *testing.T) {
		f := newGeneratorFixture(t, from)
		f.seedRoute(ctx, true)
		f.seedTemplate(ctx, "route-1", false)

		report, err := f.generator.Generate(ctx, from, 7)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if report.Created != 0 || len(report.Skipped) != 0 {
			t.Fatalf("report = %+v, want empty", report)
		}
	})

	t.Run("inactive route", func(t *testing.T) {
		f := newGeneratorFixture(t, from)
		f.seedRoute(ctx, false)
		f.seedTemplate(ctx, "route-1", true)

		report, err := f.generator.Generate(ctx, from, 7)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if report.Created != 0 || len(report.Skipped) != 0 {
			t.Fatalf("report = %+v, want empty", report)
		}
	})
}

func TestTripIDIsDeterministic(t *testing.T) {
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	a := domain.TripID("template-1", date)
	b := domain.TripID("template-1", date)
	if a != b {
		t.Fatalf("TripID not deterministic: %s != %s", a, b)
	}
	if c := domain.TripID("template-2", date); c == a {
		t.Fatal("different templates share a trip id")
	}
	if d := domain.TripID("template-1", date.AddDate(0, 0, 1)); d == a {
		t.Fatal("different dates share a trip id")
	}
}
