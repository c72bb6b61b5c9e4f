package application

import (
	"github.com/transgare/backoffice/pkg/domain"
)

// ListTicketsData asks for all tickets of one trip, any status.
type ListTicketsData struct {
	TripID string `json:"tripId" validate:"required"`
}

type listTicketsQuery struct {
	data ListTicketsData
}

func (q listTicketsQuery) QueryName() string {
	return "ListTicketsByTrip"
}

func (q listTicketsQuery) Payload() ListTicketsData {
	return q.data
}

func NewListTicketsQuery(data ListTicketsData) domain.Query[ListTicketsData] {
	return listTicketsQuery{data: data}
}
