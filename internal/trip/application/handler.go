package application

import (
	"context"
	"fmt"
	"time"

	"github.com/transgare/backoffice/internal/trip/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type generateTripsHandler struct {
	generator *Generator
	eventBus  pkgApp.EventBus[pkgDomain.Event[string], string]
	logger    pkgApp.AppLogger
}

func NewGenerateTripsHandler(generator *Generator, eventBus pkgApp.EventBus[pkgDomain.Event[string], string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[GenerateTripsData], GenerateTripsData] {
	return &generateTripsHandler{generator: generator, eventBus: eventBus, logger: logger}
}

func (h *generateTripsHandler) Handle(ctx context.Context, command pkgDomain.Command[GenerateTripsData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	report, err := h.generator.Generate(ctx, data.FromDate, data.Days)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "trip generation failed", err, map[string]interface{}{
			"from": data.FromDate,
			"days": data.Days,
		})
		return err
	}

	event := NewTripsGeneratedEvent(fmt.Sprintf("generated %d trips (%d existing, %d skipped)",
		report.Created, report.Existing, len(report.Skipped)))
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish generation event", err, nil)
		return err
	}
	return nil
}

type listTripsHandler struct {
	repository     domain.TripRepository
	boardingWindow time.Duration
	now            func() time.Time
	logger         pkgApp.AppLogger
}

// NewListTripsHandler lists trips in a window with their status recomputed
// at read time. The recomputation is advisory; nothing is written back.
func NewListTripsHandler(repo domain.TripRepository, boardingWindow time.Duration, now func() time.Time, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListTripsData], ListTripsData, []domain.Trip] {
	if now == nil {
		now = time.Now
	}
	return &listTripsHandler{repository: repo, boardingWindow: boardingWindow, now: now, logger: logger}
}

func (h *listTripsHandler) Handle(ctx context.Context, query pkgDomain.Query[ListTripsData]) ([]domain.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := query.Payload()
	trips, err := h.repository.ListWindow(ctx, data.From, data.To)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to list trips", err, map[string]interface{}{
			"from": data.From,
			"to":   data.To,
		})
		return nil, err
	}

	now := h.now()
	filtered := trips[:0]
	for _, t := range trips {
		if data.StationID != "" && t.StationID != data.StationID {
			continue
		}
		t.Status = t.EffectiveStatus(now, h.boardingWindow)
		filtered = append(filtered, t)
	}
	return filtered, nil
}

type listStationsHandler struct {
	repository domain.StationRepository
	logger     pkgApp.AppLogger
}

func NewListStationsHandler(repo domain.StationRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListStationsData], ListStationsData, []domain.Station] {
	return &listStationsHandler{repository: repo, logger: logger}
}

func (h *listStationsHandler) Handle(ctx context.Context, query pkgDomain.Query[ListStationsData]) ([]domain.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stations, err := h.repository.ListAll(ctx)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to list stations", err, nil)
		return nil, err
	}
	return stations, nil
}

type deleteTemplateHandler struct {
	templates domain.TemplateRepository
	trips     domain.TripRepository
	now       func() time.Time
	logger    pkgApp.AppLogger
}

// NewDeleteTemplateHandler removes a template unless future trips were
// generated from it.
func NewDeleteTemplateHandler(templates domain.TemplateRepository, trips domain.TripRepository, now func() time.Time, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[DeleteTemplateData], DeleteTemplateData] {
	if now == nil {
		now = time.Now
	}
	return &deleteTemplateHandler{templates: templates, trips: trips, now: now, logger: logger}
}

func (h *deleteTemplateHandler) Handle(ctx context.Context, command pkgDomain.Command[DeleteTemplateData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	if _, err := h.templates.FindByID(ctx, data.TemplateID); err != nil {
		return err
	}

	future, err := h.trips.CountFutureByTemplate(ctx, data.TemplateID, h.now())
	if err != nil {
		return err
	}
	if future > 0 {
		return pkgDomain.WrapFault(domain.ErrTemplateInUse, "template %q has %d future trips", data.TemplateID, future)
	}

	if err := h.templates.Delete(ctx, data.TemplateID); err != nil {
		return err
	}
	h.logger.Info(ctx, "schedule template deleted", map[string]interface{}{
		"template_id": data.TemplateID,
	})
	return nil
}
