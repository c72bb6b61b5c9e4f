package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/transgare/backoffice/internal/ticket/domain"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type InMemoryTicketRepository struct {
	mu   sync.RWMutex
	data map[string]domain.Ticket
}

func NewInMemoryTicketRepository() *InMemoryTicketRepository {
	return &InMemoryTicketRepository{data: make(map[string]domain.Ticket)}
}

func (r *InMemoryTicketRepository) Save(ctx context.Context, ticket domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ticket.ID] = ticket
	return nil
}

func (r *InMemoryTicketRepository) FindByID(ctx context.Context, id string) (domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, exists := r.data[id]
	if !exists {
		return domain.Ticket{}, pkgDomain.WrapFault(domain.ErrTicketNotFound, "ticket %q", id)
	}
	return ticket, nil
}

func (r *InMemoryTicketRepository) ListByTrip(ctx context.Context, tripID string) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tickets []domain.Ticket
	for _, ticket := range r.data {
		if ticket.TripID == tripID {
			tickets = append(tickets, ticket)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].PurchaseDate.Before(tickets[j].PurchaseDate) })
	return tickets, nil
}

func (r *InMemoryTicketRepository) ListOccupiedSeats(ctx context.Context, tripID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var seats []string
	for _, ticket := range r.data {
		if ticket.TripID == tripID && ticket.Status.HoldsSeat() {
			seats = append(seats, ticket.SeatNumber)
		}
	}
	return seats, nil
}

func (r *InMemoryTicketRepository) Update(ctx context.Context, ticket domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[ticket.ID]; !exists {
		return pkgDomain.WrapFault(domain.ErrTicketNotFound, "ticket %q", ticket.ID)
	}
	r.data[ticket.ID] = ticket
	return nil
}
