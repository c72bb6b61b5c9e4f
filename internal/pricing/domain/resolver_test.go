package domain

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestResolveFareComposesDiscountsInPriorityOrder(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	window := mustTime(t, "2026-01-01T00:00:00Z")

	rules := []Rule{
		{
			ID:           "fixed-500",
			RouteID:      "route-1",
			DiscountType: DiscountFixed,
			Value:        500,
			StartDate:    window,
			Priority:     2,
			Active:       true,
		},
		{
			ID:           "percent-10",
			RouteID:      "route-1",
			DiscountType: DiscountPercentage,
			Value:        10,
			StartDate:    window,
			Priority:     1,
			Active:       true,
		},
	}

	// 5000 * 0.9 = 4500, then - 500 = 4000. The reversed order would give
	// (5000-500)*0.9 = 4050, so the priority sort is observable.
	got := ResolveFare(5000, "route-1", departure, rules)
	if got != 4000 {
		t.Fatalf("ResolveFare = %d, want 4000", got)
	}
}

func TestResolveFareFilters(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z") // a Monday
	window := mustTime(t, "2026-01-01T00:00:00Z")
	expired := mustTime(t, "2026-06-01T00:00:00Z")

	tests := []struct {
		name string
		rule Rule
		want int64
	}{
		{
			name: "inactive rule ignored",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, Active: false},
			want: 5000,
		},
		{
			name: "other route ignored",
			rule: Rule{ID: "r", RouteID: "route-2", DiscountType: DiscountFixed, Value: 500, StartDate: window, Active: true},
			want: 5000,
		},
		{
			name: "not yet valid ignored",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: departure.AddDate(0, 1, 0), Active: true},
			want: 5000,
		},
		{
			name: "expired ignored",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, EndDate: &expired, Active: true},
			want: 5000,
		},
		{
			name: "weekday mismatch ignored",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, DaysOfWeek: []time.Weekday{time.Sunday}, Active: true},
			want: 5000,
		},
		{
			name: "weekday match applies",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, DaysOfWeek: []time.Weekday{time.Monday}, Active: true},
			want: 4500,
		},
		{
			name: "time slot mismatch ignored",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, TimeSlots: []TimeSlot{{Start: "12:00", End: "14:00"}}, Active: true},
			want: 5000,
		},
		{
			name: "time slot match applies",
			rule: Rule{ID: "r", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, TimeSlots: []TimeSlot{{Start: "07:30", End: "08:30"}}, Active: true},
			want: 4500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFare(5000, "route-1", departure, []Rule{tt.rule})
			if got != tt.want {
				t.Errorf("ResolveFare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveFareNeverNegative(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	window := mustTime(t, "2026-01-01T00:00:00Z")

	rules := []Rule{
		{ID: "big", RouteID: "route-1", DiscountType: DiscountFixed, Value: 9000, StartDate: window, Priority: 1, Active: true},
	}

	if got := ResolveFare(5000, "route-1", departure, rules); got != 0 {
		t.Fatalf("ResolveFare = %d, want 0", got)
	}
}

func TestResolveFareRoundsToNearestUnit(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	window := mustTime(t, "2026-01-01T00:00:00Z")

	rules := []Rule{
		{ID: "third", RouteID: "route-1", DiscountType: DiscountPercentage, Value: 33.333, StartDate: window, Priority: 1, Active: true},
	}

	// 100 * (1 - 0.33333) = 66.667 -> 67
	if got := ResolveFare(100, "route-1", departure, rules); got != 67 {
		t.Fatalf("ResolveFare = %d, want 67", got)
	}
}

func TestResolveFareEqualPriorityBreaksTiesByID(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	window := mustTime(t, "2026-01-01T00:00:00Z")

	rules := []Rule{
		{ID: "b-fixed", RouteID: "route-1", DiscountType: DiscountFixed, Value: 500, StartDate: window, Priority: 1, Active: true},
		{ID: "a-percent", RouteID: "route-1", DiscountType: DiscountPercentage, Value: 10, StartDate: window, Priority: 1, Active: true},
	}

	// "a-percent" sorts before "b-fixed": 5000*0.9 - 500 = 4000.
	if got := ResolveFare(5000, "route-1", departure, rules); got != 4000 {
		t.Fatalf("ResolveFare = %d, want 4000", got)
	}
}

func TestResolveFareDoesNotMutateInput(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	window := mustTime(t, "2026-01-01T00:00:00Z")

	rules := []Rule{
		{ID: "z", RouteID: "route-1", DiscountType: DiscountFixed, Value: 100, StartDate: window, Priority: 2, Active: true},
		{ID: "a", RouteID: "route-1", DiscountType: DiscountFixed, Value: 200, StartDate: window, Priority: 1, Active: true},
	}

	ResolveFare(5000, "route-1", departure, rules)

	if rules[0].ID != "z" || rules[1].ID != "a" {
		t.Fatal("ResolveFare reordered the caller's slice")
	}
}

func TestResolveFareNoApplicableRulesReturnsBase(t *testing.T) {
	departure := mustTime(t, "2026-09-07T08:00:00Z")
	if got := ResolveFare(5000, "route-1", departure, nil); got != 5000 {
		t.Fatalf("ResolveFare = %d, want 5000", got)
	}
}
