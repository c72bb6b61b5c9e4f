package domain

import (
	"context"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var ErrStationNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "station not found")

// Station is a physical terminal. It owns a subset of the schedule
// templates and the trips generated from them.
type Station struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
	City string `json:"city"`
}

type StationRepository interface {
	Save(ctx context.Context, station Station) error
	FindByID(ctx context.Context, id string) (Station, error)
	ListAll(ctx context.Context) ([]Station, error)
}
