package domain

import (
	"context"
	"time"
)

// DiscountType is the closed set of supported discount kinds.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// TimeSlot is an inclusive time-of-day interval in "HH:mm". Lexical
// comparison is enough for the 24h format.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the time of day falls inside the slot.
func (s TimeSlot) Contains(timeOfDay string) bool {
	return s.Start <= timeOfDay && timeOfDay <= s.End
}

// Rule is a prioritized discount applied to a route's base fare. Rules are
// immutable inputs to the resolver.
type Rule struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	RouteID      string         `json:"routeId" gorm:"index"`
	DiscountType DiscountType   `json:"discountType"`
	Value        float64        `json:"value"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      *time.Time     `json:"endDate,omitempty"`
	DaysOfWeek   []time.Weekday `json:"daysOfWeek,omitempty" gorm:"serializer:json"`
	TimeSlots    []TimeSlot     `json:"timeSlots,omitempty" gorm:"serializer:json"`
	Priority     int            `json:"priority"`
	Active       bool           `json:"active"`
}

// AppliesTo reports whether the rule matches the route and departure
// instant: active, same route, inside the validity window, and inside the
// optional weekday set and time slots.
func (r Rule) AppliesTo(routeID string, departure time.Time) bool {
	if !r.Active || r.RouteID != routeID {
		return false
	}
	if departure.Before(r.StartDate) {
		return false
	}
	if r.EndDate != nil && departure.After(*r.EndDate) {
		return false
	}
	if len(r.DaysOfWeek) > 0 {
		found := false
		for _, d := range r.DaysOfWeek {
			if d == departure.Weekday() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.TimeSlots) > 0 {
		timeOfDay := departure.Format("15:04")
		found := false
		for _, slot := range r.TimeSlots {
			if slot.Contains(timeOfDay) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RuleRepository is the persistence port for pricing rules.
type RuleRepository interface {
	Save(ctx context.Context, rule Rule) error
	FindByID(ctx context.Context, id string) (Rule, error)
	ListByRoute(ctx context.Context, routeID string) ([]Rule, error)
	ListAll(ctx context.Context) ([]Rule, error)
	Update(ctx context.Context, rule Rule) error
	Delete(ctx context.Context, id string) error
}
