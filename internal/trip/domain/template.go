package domain

import (
	"context"
	"time"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var (
	ErrTemplateNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "schedule template not found")
	// ErrTemplateInUse blocks deletion while future trips still reference
	// the template.
	ErrTemplateInUse = pkgDomain.NewFault(pkgDomain.FaultConflict, "schedule template has future trips")
)

// ScheduleTemplate is a recurring weekly departure definition from which
// concrete trips are generated.
type ScheduleTemplate struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	RouteID       string         `json:"routeId" gorm:"index"`
	StationID     string         `json:"stationId" gorm:"index"`
	DepartureTime string         `json:"departureTime"` // "HH:mm", 24h
	DaysOfWeek    []time.Weekday `json:"daysOfWeek" gorm:"serializer:json"`
	ServiceClass  string         `json:"serviceClass"`
	BusCode       string         `json:"busCode"`
	TotalSeats    int            `json:"totalSeats"`
	Active        bool           `json:"active"`
}

// RunsOn reports whether the template departs on the given weekday.
func (t ScheduleTemplate) RunsOn(day time.Weekday) bool {
	for _, d := range t.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// DepartureOn anchors the template's time of day on a calendar date.
func (t ScheduleTemplate) DepartureOn(date time.Time) (time.Time, error) {
	tod, err := time.Parse("15:04", t.DepartureTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}

type TemplateRepository interface {
	Save(ctx context.Context, template ScheduleTemplate) error
	FindByID(ctx context.Context, id string) (ScheduleTemplate, error)
	ListAll(ctx context.Context) ([]ScheduleTemplate, error)
	Update(ctx context.Context, template ScheduleTemplate) error
	Delete(ctx context.Context, id string) error
}
