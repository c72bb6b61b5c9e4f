package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// Catalog repositories: routes, stations and schedule templates share the
// same gorm plumbing.

type gormRouteRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormRouteRepository(db *gorm.DB, logger application.AppLogger) (domain.RouteRepository, error) {
	if err := db.AutoMigrate(&domain.Route{}); err != nil {
		return nil, err
	}
	return &gormRouteRepository{db: db, logger: logger}, nil
}

func (r *gormRouteRepository) Save(ctx context.Context, route domain.Route) error {
	return r.db.WithContext(ctx).Create(&route).Error
}

func (r *gormRouteRepository) FindByID(ctx context.Context, id string) (domain.Route, error) {
	var route domain.Route
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Route{}, pkgDomain.WrapFault(domain.ErrRouteNotFound, "route %q", id)
		}
		return domain.Route{}, err
	}
	return route, nil
}

func (r *gormRouteRepository) ListAll(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := r.db.WithContext(ctx).Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *gormRouteRepository) Update(ctx context.Context, route domain.Route) error {
	result := r.db.WithContext(ctx).Model(&domain.Route{}).Where("id = ?", route.ID).Updates(route)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrRouteNotFound, "route %q", route.ID)
	}
	return nil
}

type gormStationRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormStationRepository(db *gorm.DB, logger application.AppLogger) (domain.StationRepository, error) {
	if err := db.AutoMigrate(&domain.Station{}); err != nil {
		return nil, err
	}
	return &gormStationRepository{db: db, logger: logger}, nil
}

func (r *gormStationRepository) Save(ctx context.Context, station domain.Station) error {
	return r.db.WithContext(ctx).Create(&station).Error
}

func (r *gormStationRepository) FindByID(ctx context.Context, id string) (domain.Station, error) {
	var station domain.Station
	if err := r.db.WithContext(ctx).First(&station, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Station{}, pkgDomain.WrapFault(domain.ErrStationNotFound, "station %q", id)
		}
		return domain.Station{}, err
	}
	return station, nil
}

func (r *gormStationRepository) ListAll(ctx context.Context) ([]domain.Station, error) {
	var stations []domain.Station
	if err := r.db.WithContext(ctx).Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

type gormTemplateRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormTemplateRepository(db *gorm.DB, logger application.AppLogger) (domain.TemplateRepository, error) {
	if err := db.AutoMigrate(&domain.ScheduleTemplate{}); err != nil {
		return nil, err
	}
	return &gormTemplateRepository{db: db, logger: logger}, nil
}

func (r *gormTemplateRepository) Save(ctx context.Context, template domain.ScheduleTemplate) error {
	return r.db.WithContext(ctx).Create(&template).Error
}

func (r *gormTemplateRepository) FindByID(ctx context.Context, id string) (domain.ScheduleTemplate, error) {
	var template domain.ScheduleTemplate
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScheduleTemplate{}, pkgDomain.WrapFault(domain.ErrTemplateNotFound, "template %q", id)
		}
		return domain.ScheduleTemplate{}, err
	}
	return template, nil
}

func (r *gormTemplateRepository) ListAll(ctx context.Context) ([]domain.ScheduleTemplate, error) {
	var templates []domain.ScheduleTemplate
	if err := r.db.WithContext(ctx).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *gormTemplateRepository) Update(ctx context.Context, template domain.ScheduleTemplate) error {
	result := r.db.WithContext(ctx).Model(&domain.ScheduleTemplate{}).Where("id = ?", template.ID).Updates(template)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTemplateNotFound, "template %q", template.ID)
	}
	return nil
}

func (r *gormTemplateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.ScheduleTemplate{}, "id = ?", id).Error
}
