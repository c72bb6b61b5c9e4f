package application

import (
	"context"

	"github.com/transgare/backoffice/internal/pricing/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type resolveFareHandler struct {
	repository domain.RuleRepository
	logger     pkgApp.AppLogger
}

// NewResolveFareHandler answers ResolveFare queries by loading the route's
// rules and running the resolver over them.
func NewResolveFareHandler(repo domain.RuleRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ResolveFareData], ResolveFareData, int64] {
	return &resolveFareHandler{repository: repo, logger: logger}
}

func (h *resolveFareHandler) Handle(ctx context.Context, query pkgDomain.Query[ResolveFareData]) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data := query.Payload()
	rules, err := h.repository.ListByRoute(ctx, data.RouteID)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to load pricing rules", err, map[string]interface{}{
			"route_id": data.RouteID,
		})
		return 0, err
	}

	price := domain.ResolveFare(data.BasePrice, data.RouteID, data.Departure, rules)
	h.logger.Debug(ctx, "fare resolved", map[string]interface{}{
		"route_id":   data.RouteID,
		"base_price": data.BasePrice,
		"price":      price,
		"rules":      len(rules),
	})
	return price, nil
}

type createRuleHandler struct {
	repository  domain.RuleRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func NewCreateRuleHandler(repo domain.RuleRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[CreateRuleData], CreateRuleData] {
	return &createRuleHandler{repository: repo, idGenerator: idGenerator, logger: logger}
}

func (h *createRuleHandler) Handle(ctx context.Context, command pkgDomain.Command[CreateRuleData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := command.Payload()
	rule := domain.Rule{
		ID:           h.idGenerator(),
		RouteID:      data.RouteID,
		DiscountType: data.DiscountType,
		Value:        data.Value,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		DaysOfWeek:   data.DaysOfWeek,
		TimeSlots:    data.TimeSlots,
		Priority:     data.Priority,
		Active:       true,
	}

	if err := h.repository.Save(ctx, rule); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to save pricing rule", err, map[string]interface{}{
			"rule": rule,
		})
		return err
	}

	h.logger.Info(ctx, "pricing rule created", map[string]interface{}{
		"rule_id":  rule.ID,
		"route_id": rule.RouteID,
	})
	return nil
}
