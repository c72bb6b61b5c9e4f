package domain

import (
	"context"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// ErrRouteNotFound is reported for lookups of unknown route ids.
var ErrRouteNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "route not found")

// Route is an immutable connection between two cities. Once trips
// reference it, only the Active flag changes.
type Route struct {
	ID              string  `json:"id" gorm:"primaryKey"`
	DepartureCity   string  `json:"departureCity"`
	ArrivalCity     string  `json:"arrivalCity"`
	DistanceKM      float64 `json:"distanceKm"`
	DurationMinutes int     `json:"durationMinutes"`
	BasePrice       int64   `json:"basePrice"`
	Active          bool    `json:"active"`
}

type RouteRepository interface {
	Save(ctx context.Context, route Route) error
	FindByID(ctx context.Context, id string) (Route, error)
	ListAll(ctx context.Context) ([]Route, error)
	Update(ctx context.Context, route Route) error
}
