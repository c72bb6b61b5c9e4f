package application

import (
	"time"

	"github.com/transgare/backoffice/pkg/domain"
)

// ListTripsData filters the trip listing. StationID narrows to one
// station's departures when set.
type ListTripsData struct {
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	StationID string    `json:"stationId,omitempty"`
}

type listTripsQuery struct {
	data ListTripsData
}

func (q listTripsQuery) QueryName() string {
	return "ListTrips"
}

func (q listTripsQuery) Payload() ListTripsData {
	return q.data
}

func NewListTripsQuery(data ListTripsData) domain.Query[ListTripsData] {
	return listTripsQuery{data: data}
}

// ListStationsData asks for the station catalog. No filters.
type ListStationsData struct{}

type listStationsQuery struct {
	data ListStationsData
}

func (q listStationsQuery) QueryName() string {
	return "ListStations"
}

func (q listStationsQuery) Payload() ListStationsData {
	return q.data
}

func NewListStationsQuery(data ListStationsData) domain.Query[ListStationsData] {
	return listStationsQuery{data: data}
}
