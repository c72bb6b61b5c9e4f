package domain

import (
	"math"
	"sort"
	"time"
)

// ResolveFare computes the effective fare for a departure by applying every
// matching rule to the base price, in ascending priority order.
//
// The composition is sequential and order sensitive: a percentage rule
// multiplies the running price by (1 - value/100), a fixed rule subtracts
// its value. Applying percentage-then-fixed differs numerically from
// fixed-then-percentage, and historical fares depend on that order, so it
// must not change. The result is floored at zero and rounded to the
// nearest integer currency unit.
//
// ResolveFare is pure: no clock reads, no I/O, same inputs same output.
func ResolveFare(basePrice int64, routeID string, departure time.Time, rules []Rule) int64 {
	applicable := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.AppliesTo(routeID, departure) {
			applicable = append(applicable, r)
		}
	}
	if len(applicable) == 0 {
		return basePrice
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].Priority != applicable[j].Priority {
			return applicable[i].Priority < applicable[j].Priority
		}
		// Deterministic outcome for equal priorities.
		return applicable[i].ID < applicable[j].ID
	})

	price := float64(basePrice)
	for _, r := range applicable {
		switch r.DiscountType {
		case DiscountPercentage:
			price *= 1 - r.Value/100
		case DiscountFixed:
			price -= r.Value
		}
	}

	if price < 0 {
		return 0
	}
	return int64(math.Round(price))
}
