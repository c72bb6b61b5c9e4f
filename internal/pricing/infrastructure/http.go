package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/transgare/backoffice/internal/pricing/application"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	"github.com/transgare/backoffice/pkg/infrastructure/httperr"
)

type PricingHTTPHandler struct {
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.CreateRuleData], application.CreateRuleData]
	queryBus   pkgApp.QueryBus[pkgDomain.Query[application.ResolveFareData], application.ResolveFareData, int64]
	validate   *validator.Validate
}

func NewPricingHTTPHandler(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.CreateRuleData], application.CreateRuleData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ResolveFareData], application.ResolveFareData, int64],
) *PricingHTTPHandler {
	return &PricingHTTPHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		validate:   validator.New(),
	}
}

func (h *PricingHTTPHandler) HandleResolveFare(w http.ResponseWriter, r *http.Request) {
	basePrice, err := strconv.ParseInt(r.URL.Query().Get("basePrice"), 10, 64)
	if err != nil {
		httperr.Write(w, pkgDomain.NewFault(pkgDomain.FaultValidation, "basePrice must be an integer"))
		return
	}
	departure, err := time.Parse(time.RFC3339, r.URL.Query().Get("departure"))
	if err != nil {
		httperr.Write(w, pkgDomain.NewFault(pkgDomain.FaultValidation, "departure must be RFC3339"))
		return
	}

	data := application.ResolveFareData{
		BasePrice: basePrice,
		RouteID:   r.URL.Query().Get("routeId"),
		Departure: departure,
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid fare request", Err: err})
		return
	}

	price, err := h.queryBus.Dispatch(r.Context(), application.NewResolveFareQuery(data))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"price": price})
}

func (h *PricingHTTPHandler) HandleCreateRule(w http.ResponseWriter, r *http.Request) {
	var data application.CreateRuleData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid pricing rule", Err: err})
		return
	}

	if err := h.commandBus.Dispatch(r.Context(), application.NewCreateRuleCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "pricing rule created"})
}

func (h *PricingHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Get("/fares/resolve", h.HandleResolveFare)
	router.Post("/pricing-rules", h.HandleCreateRule)
}
