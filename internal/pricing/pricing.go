// Package pricing is the vertical slice owning pricing rules and the
// effective-fare resolver.
package pricing

import (
	"github.com/go-chi/chi/v5"

	"github.com/transgare/backoffice/internal/pricing/application"
	"github.com/transgare/backoffice/internal/pricing/domain"
	"github.com/transgare/backoffice/internal/pricing/infrastructure"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type PricingSlice struct {
	httpHandler *infrastructure.PricingHTTPHandler
}

func NewPricingSlice(
	commandBus pkgApp.CommandBus[pkgDomain.Command[application.CreateRuleData], application.CreateRuleData],
	queryBus pkgApp.QueryBus[pkgDomain.Query[application.ResolveFareData], application.ResolveFareData, int64],
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	repository domain.RuleRepository,
) *PricingSlice {
	commandBus.RegisterHandler("CreatePricingRule", application.NewCreateRuleHandler(repository, idGenerator, logger))
	queryBus.RegisterHandler("ResolveFare", application.NewResolveFareHandler(repository, logger))

	return &PricingSlice{
		httpHandler: infrastructure.NewPricingHTTPHandler(commandBus, queryBus),
	}
}

func (s *PricingSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
