package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// In-memory repositories for tests and the channel-transport entrypoint.

type InMemoryTripRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.Trip
	logger application.AppLogger
}

func NewInMemoryTripRepository(logger application.AppLogger) *InMemoryTripRepository {
	return &InMemoryTripRepository{
		data:   make(map[string]domain.Trip),
		logger: logger,
	}
}

func (r *InMemoryTripRepository) Save(ctx context.Context, trip domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[trip.ID]; exists {
		return pkgDomain.WrapFault(domain.ErrTripExists, "trip %q", trip.ID)
	}
	r.data[trip.ID] = trip
	return nil
}

func (r *InMemoryTripRepository) FindByID(ctx context.Context, id string) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, exists := r.data[id]
	if !exists {
		return domain.Trip{}, pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
	}
	return trip, nil
}

func (r *InMemoryTripRepository) ListWindow(ctx context.Context, from, to time.Time) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []domain.Trip
	for _, trip := range r.data {
		if !trip.Departure.Before(from) && trip.Departure.Before(to) {
			trips = append(trips, trip)
		}
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].Departure.Before(trips[j].Departure) })
	return trips, nil
}

func (r *InMemoryTripRepository) CountFutureByTemplate(ctx context.Context, templateID string, after time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, trip := range r.data {
		if trip.TemplateID == templateID && trip.Departure.After(after) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryTripRepository) Update(ctx context.Context, trip domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[trip.ID]; !exists {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", trip.ID)
	}
	r.data[trip.ID] = trip
	return nil
}

func (r *InMemoryTripRepository) UpdateAvailableSeats(ctx context.Context, id string, availableSeats int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, exists := r.data[id]
	if !exists {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
	}
	trip.AvailableSeats = availableSeats
	r.data[id] = trip
	return nil
}

func (r *InMemoryTripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, exists := r.data[id]
	if !exists {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
	}
	trip.Status = status
	r.data[id] = trip
	return nil
}

type InMemoryRouteRepository struct {
	mu   sync.RWMutex
	data map[string]domain.Route
}

func NewInMemoryRouteRepository() *InMemoryRouteRepository {
	return &InMemoryRouteRepository{data: make(map[string]domain.Route)}
}

func (r *InMemoryRouteRepository) Save(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[route.ID] = route
	return nil
}

func (r *InMemoryRouteRepository) FindByID(ctx context.Context, id string) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, exists := r.data[id]
	if !exists {
		return domain.Route{}, pkgDomain.WrapFault(domain.ErrRouteNotFound, "route %q", id)
	}
	return route, nil
}

func (r *InMemoryRouteRepository) ListAll(ctx context.Context) ([]domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]domain.Route, 0, len(r.data))
	for _, route := range r.data {
		routes = append(routes, route)
	}
	return routes, nil
}

func (r *InMemoryRouteRepository) Update(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[route.ID]; !exists {
		return pkgDomain.WrapFault(domain.ErrRouteNotFound, "route %q", route.ID)
	}
	r.data[route.ID] = route
	return nil
}

type InMemoryStationRepository struct {
	mu   sync.RWMutex
	data map[string]domain.Station
}

func NewInMemoryStationRepository() *InMemoryStationRepository {
	return &InMemoryStationRepository{data: make(map[string]domain.Station)}
}

func (r *InMemoryStationRepository) Save(ctx context.Context, station domain.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[station.ID] = station
	return nil
}

func (r *InMemoryStationRepository) FindByID(ctx context.Context, id string) (domain.Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	station, exists := r.data[id]
	if !exists {
		return domain.Station{}, pkgDomain.WrapFault(domain.ErrStationNotFound, "station %q", id)
	}
	return station, nil
}

func (r *InMemoryStationRepository) ListAll(ctx context.Context) ([]domain.Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stations := make([]domain.Station, 0, len(r.data))
	for _, station := range r.data {
		stations = append(stations, station)
	}
	return stations, nil
}

type InMemoryTemplateRepository struct {
	mu   sync.RWMutex
	data map[string]domain.ScheduleTemplate
}

func NewInMemoryTemplateRepository() *InMemoryTemplateRepository {
	return &InMemoryTemplateRepository{data: make(map[string]domain.ScheduleTemplate)}
}

func (r *InMemoryTemplateRepository) Save(ctx context.Context, template domain.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[template.ID] = template
	return nil
}

func (r *InMemoryTemplateRepository) FindByID(ctx context.Context, id string) (domain.ScheduleTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, exists := r.data[id]
	if !exists {
		return domain.ScheduleTemplate{}, pkgDomain.WrapFault(domain.ErrTemplateNotFound, "template %q", id)
	}
	return template, nil
}

func (r *InMemoryTemplateRepository) ListAll(ctx context.Context) ([]domain.ScheduleTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]domain.ScheduleTemplate, 0, len(r.data))
	for _, template := range r.data {
		templates = append(templates, template)
	}
	return templates, nil
}

func (r *InMemoryTemplateRepository) Update(ctx context.Context, template domain.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[template.ID]; !exists {
		return pkgDomain.WrapFault(domain.ErrTemplateNotFound, "template %q", template.ID)
	}
	r.data[template.ID] = template
	return nil
}

func (r *InMemoryTemplateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}
