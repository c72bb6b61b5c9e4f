package infrastructure

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/transgare/backoffice/internal/trip/application"
	"github.com/transgare/backoffice/internal/trip/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	"github.com/transgare/backoffice/pkg/infrastructure/httperr"
)

type TripHTTPHandler struct {
	generateBus pkgApp.CommandBus[pkgDomain.Command[application.GenerateTripsData], application.GenerateTripsData]
	templateBus pkgApp.CommandBus[pkgDomain.Command[application.DeleteTemplateData], application.DeleteTemplateData]
	queryBus    pkgApp.QueryBus[pkgDomain.Query[application.ListTripsData], application.ListTripsData, []domain.Trip]
	stationBus  pkgApp.QueryBus[pkgDomain.Query[application.ListStationsData], application.ListStationsData, []domain.Station]
	validate    *validator.Validate
}

func NewTripHTTPHandler(
	generateBus pkgApp.CommandBus[pkgDomain.Command[application.GenerateTripsData], application.GenerateTripsData],
	templateBus pkgApp.CommandBus[pkgDomain.Command[application.DeleteTemplateData], application.DeleteTemplateData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ListTripsData], application.ListTripsData, []domain.Trip],
	stationBus pkgApp.QueryBus[pkgDomain.Query[application.ListStationsData], application.ListStationsData, []domain.Station],
) *TripHTTPHandler {
	return &TripHTTPHandler{
		generateBus: generateBus,
		templateBus: templateBus,
		queryBus:    queryBus,
		stationBus:  stationBus,
		validate:    validator.New(),
	}
}

func (h *TripHTTPHandler) HandleGenerateTrips(w http.ResponseWriter, r *http.Request) {
	var data application.GenerateTripsData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid generation request", Err: err})
		return
	}

	if err := h.generateBus.Dispatch(r.Context(), application.NewGenerateTripsCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusAccepted, map[string]interface{}{"message": "trip generation started"})
}

func (h *TripHTTPHandler) HandleListTrips(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		httperr.Write(w, pkgDomain.NewFault(pkgDomain.FaultValidation, "from must be RFC3339"))
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		httperr.Write(w, pkgDomain.NewFault(pkgDomain.FaultValidation, "to must be RFC3339"))
		return
	}

	query := application.NewListTripsQuery(application.ListTripsData{
		From:      from,
		To:        to,
		StationID: r.URL.Query().Get("stationId"),
	})

	trips, err := h.queryBus.Dispatch(r.Context(), query)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, trips)
}

func (h *TripHTTPHandler) HandleListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationBus.Dispatch(r.Context(), application.NewListStationsQuery(application.ListStationsData{}))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, stations)
}

func (h *TripHTTPHandler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	data := application.DeleteTemplateData{
		TemplateID: chi.URLParam(r, "templateID"),
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid template id", Err: err})
		return
	}

	if err := h.templateBus.Dispatch(r.Context(), application.NewDeleteTemplateCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "schedule template deleted"})
}

func (h *TripHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/trips/generate", h.HandleGenerateTrips)
	router.Get("/trips", h.HandleListTrips)
	router.Get("/stations", h.HandleListStations)
	router.Delete("/schedule-templates/{templateID}", h.HandleDeleteTemplate)
}
