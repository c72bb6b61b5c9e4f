// Package trip is the vertical slice owning routes, stations, schedule
// templates and the expansion of templates into concrete trips.
package trip

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/transgare/backoffice/internal/trip/application"
	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/internal/trip/infrastructure"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type TripSlice struct {
	httpHandler *infrastructure.TripHTTPHandler
}

func NewTripSlice(
	generateBus pkgApp.CommandBus[pkgDomain.Command[application.GenerateTripsData], application.GenerateTripsData],
	templateBus pkgApp.CommandBus[pkgDomain.Command[application.DeleteTemplateData], application.DeleteTemplateData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ListTripsData], application.ListTripsData, []domain.Trip],
	stationBus pkgApp.QueryBus[pkgDomain.Query[application.ListStationsData], application.ListStationsData, []domain.Station],
	eventBus pkgApp.EventBus[pkgDomain.Event[string], string],
	generator *application.Generator,
	tripRepo domain.TripRepository,
	templateRepo domain.TemplateRepository,
	stationRepo domain.StationRepository,
	boardingWindow time.Duration,
	logger pkgApp.AppLogger,
) *TripSlice {
	generateBus.RegisterHandler("GenerateTrips", application.NewGenerateTripsHandler(generator, eventBus, logger))
	templateBus.RegisterHandler("DeleteScheduleTemplate", application.NewDeleteTemplateHandler(templateRepo, tripRepo, nil, logger))
	queryBus.RegisterHandler("ListTrips", application.NewListTripsHandler(tripRepo, boardingWindow, nil, logger))
	stationBus.RegisterHandler("ListStations", application.NewListStationsHandler(stationRepo, logger))
	eventBus.RegisterHandler("TripsGenerated", application.NewTripsGeneratedEventHandler(logger))

	return &TripSlice{
		httpHandler: infrastructure.NewTripHTTPHandler(generateBus, templateBus, queryBus, stationBus),
	}
}

func (s *TripSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
