package infrastructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/transgare/backoffice/internal/trip/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type gormTripRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormTripRepository(db *gorm.DB, logger application.AppLogger) (domain.TripRepository, error) {
	if err := db.AutoMigrate(&domain.Trip{}); err != nil {
		return nil, err
	}
	return &gormTripRepository{db: db, logger: logger}, nil
}

func (r *gormTripRepository) Save(ctx context.Context, trip domain.Trip) error {
	// DoNothing keeps generation idempotent: a second run for the same
	// template/date pair reports ErrTripExists instead of duplicating.
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&trip)
	if result.Error != nil {
		application.LogError(ctx, r.logger, "failed to save trip", result.Error, map[string]interface{}{
			"trip_id": trip.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTripExists, "trip %q", trip.ID)
	}
	return nil
}

func (r *gormTripRepository) FindByID(ctx context.Context, id string) (domain.Trip, error) {
	var trip domain.Trip
	if err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Trip{}, pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
		}
		return domain.Trip{}, err
	}
	return trip, nil
}

func (r *gormTripRepository) ListWindow(ctx context.Context, from, to time.Time) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := r.db.WithContext(ctx).
		Where("departure >= ? AND departure < ?", from, to).
		Order("departure").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *gormTripRepository) CountFutureByTemplate(ctx context.Context, templateID string, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Trip{}).
		Where("template_id = ? AND departure > ?", templateID, after).
		Count(&count).Error
	return count, err
}

func (r *gormTripRepository) Update(ctx context.Context, trip domain.Trip) error {
	result := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", trip.ID).Updates(trip)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", trip.ID)
	}
	return nil
}

func (r *gormTripRepository) UpdateAvailableSeats(ctx context.Context, id string, availableSeats int) error {
	result := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).
		Update("available_seats", availableSeats)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
	}
	return nil
}

func (r *gormTripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTripNotFound, "trip %q", id)
	}
	return nil
}
