package application

import (
	"time"

	"github.com/transgare/backoffice/internal/pricing/domain"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// CreateRuleData contains the fields of a new pricing rule.
type CreateRuleData struct {
	RouteID      string              `json:"routeId" validate:"required"`
	DiscountType domain.DiscountType `json:"discountType" validate:"required,oneof=percentage fixed"`
	Value        float64             `json:"value" validate:"gte=0"`
	StartDate    time.Time           `json:"startDate" validate:"required"`
	EndDate      *time.Time          `json:"endDate,omitempty"`
	DaysOfWeek   []time.Weekday      `json:"daysOfWeek,omitempty" validate:"dive,gte=0,lte=6"`
	TimeSlots    []domain.TimeSlot   `json:"timeSlots,omitempty"`
	Priority     int                 `json:"priority"`
}

type createRuleCommand struct {
	data CreateRuleData
}

func (c createRuleCommand) CommandName() string {
	return "CreatePricingRule"
}

func (c createRuleCommand) Payload() CreateRuleData {
	return c.data
}

func NewCreateRuleCommand(data CreateRuleData) pkgDomain.Command[CreateRuleData] {
	return createRuleCommand{data: data}
}
