package application

import (
	"time"

	"github.com/transgare/backoffice/pkg/domain"
)

// ResolveFareData carries the inputs of a fare resolution.
type ResolveFareData struct {
	BasePrice int64     `json:"basePrice" validate:"gte=0"`
	RouteID   string    `json:"routeId" validate:"required"`
	Departure time.Time `json:"departure" validate:"required"`
}

type resolveFareQuery struct {
	data ResolveFareData
}

func (q resolveFareQuery) QueryName() string {
	return "ResolveFare"
}

func (q resolveFareQuery) Payload() ResolveFareData {
	return q.data
}

func NewResolveFareQuery(data ResolveFareData) domain.Query[ResolveFareData] {
	return resolveFareQuery{data: data}
}
