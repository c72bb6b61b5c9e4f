package application

import (
	"context"
	"errors"
	"time"

	pricing "github.com/transgare/backoffice/internal/pricing/domain"
	"github.com/transgare/backoffice/internal/trip/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
)

// SkipReason records one template/date pair the generator left out.
type SkipReason struct {
	TemplateID string `json:"templateId"`
	Date       string `json:"date,omitempty"`
	Reason     string `json:"reason"`
}

// GenerationReport summarizes one generation run. Skips never abort the
// batch; independent template/date pairs complete regardless.
type GenerationReport struct {
	Created  int          `json:"created"`
	Existing int          `json:"existing"`
	Skipped  []SkipReason `json:"skipped,omitempty"`
}

// Generator expands active schedule templates into concrete trips over a
// date window. Runs are idempotent: trip ids are deterministic per
// template and date, and an existing trip is counted, not recreated.
type Generator struct {
	templates domain.TemplateRepository
	routes    domain.RouteRepository
	trips     domain.TripRepository
	rules     pricing.RuleRepository

	boardingWindow time.Duration
	now            func() time.Time
	logger         pkgApp.AppLogger
}

func NewGenerator(
	templates domain.TemplateRepository,
	routes domain.RouteRepository,
	trips domain.TripRepository,
	rules pricing.RuleRepository,
	boardingWindow time.Duration,
	now func() time.Time,
	logger pkgApp.AppLogger,
) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		templates:      templates,
		routes:         routes,
		trips:          trips,
		rules:          rules,
		boardingWindow: boardingWindow,
		now:            now,
		logger:         logger,
	}
}

// Generate expands every active template over [from, from+days).
func (g *Generator) Generate(ctx context.Context, from time.Time, days int) (GenerationReport, error) {
	var report GenerationReport

	templates, err := g.templates.ListAll(ctx)
	if err != nil {
		return report, err
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	now := g.now()

	for _, template := range templates {
		if !template.Active {
			continue
		}

		route, err := g.routes.FindByID(ctx, template.RouteID)
		if err != nil {
			// A dangling route reference is logged and skipped, never fatal
			// to the batch.
			pkgApp.LogError(ctx, g.logger, "template references missing route", err, map[string]interface{}{
				"template_id": template.ID,
				"route_id":    template.RouteID,
			})
			report.Skipped = append(report.Skipped, SkipReason{
				TemplateID: template.ID,
				Reason:     "route not found",
			})
			continue
		}
		if !route.Active {
			// Stale routes are silently omitted so they never block the run.
			g.logger.Debug(ctx, "skipping template on inactive route", map[string]interface{}{
				"template_id": template.ID,
				"route_id":    route.ID,
			})
			continue
		}

		routeRules, err := g.rules.ListByRoute(ctx, route.ID)
		if err != nil {
			report.Skipped = append(report.Skipped, SkipReason{
				TemplateID: template.ID,
				Reason:     "pricing rules unavailable",
			})
			continue
		}

		for day := 0; day < days; day++ {
			date := start.AddDate(0, 0, day)
			if !template.RunsOn(date.Weekday()) {
				continue
			}

			departure, err := template.DepartureOn(date)
			if err != nil {
				report.Skipped = append(report.Skipped, SkipReason{
					TemplateID: template.ID,
					Date:       date.Format("2006-01-02"),
					Reason:     "invalid departure time",
				})
				continue
			}
			arrival := departure.Add(time.Duration(route.DurationMinutes) * time.Minute)

			trip := domain.Trip{
				ID:             domain.TripID(template.ID, date),
				TemplateID:     template.ID,
				RouteID:        route.ID,
				StationID:      template.StationID,
				BusCode:        template.BusCode,
				Departure:      departure,
				Arrival:        arrival,
				TotalSeats:     template.TotalSeats,
				AvailableSeats: template.TotalSeats,
				Price:          pricing.ResolveFare(route.BasePrice, route.ID, departure, routeRules),
				Status:         domain.StatusAt(departure, arrival, now, g.boardingWindow),
				ServiceClass:   template.ServiceClass,
			}

			if err := g.trips.Save(ctx, trip); err != nil {
				if errors.Is(err, domain.ErrTripExists) {
					report.Existing++
					continue
				}
				pkgApp.LogError(ctx, g.logger, "failed to save generated trip", err, map[string]interface{}{
					"trip_id": trip.ID,
				})
				report.Skipped = append(report.Skipped, SkipReason{
					TemplateID: template.ID,
					Date:       date.Format("2006-01-02"),
					Reason:     "save failed",
				})
				continue
			}
			report.Created++
		}
	}

	g.logger.Info(ctx, "trip generation finished", map[string]interface{}{
		"created":  report.Created,
		"existing": report.Existing,
		"skipped":  len(report.Skipped),
	})
	return report, nil
}
