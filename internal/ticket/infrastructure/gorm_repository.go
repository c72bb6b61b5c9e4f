package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/transgare/backoffice/internal/ticket/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type gormTicketRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormTicketRepository(db *gorm.DB, logger application.AppLogger) (domain.TicketRepository, error) {
	if err := db.AutoMigrate(&domain.Ticket{}); err != nil {
		return nil, err
	}
	return &gormTicketRepository{db: db, logger: logger}, nil
}

func (r *gormTicketRepository) Save(ctx context.Context, ticket domain.Ticket) error {
	if err := r.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to save ticket", err, map[string]interface{}{
			"ticket_id": ticket.ID,
		})
		return err
	}
	return nil
}

func (r *gormTicketRepository) FindByID(ctx context.Context, id string) (domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ticket{}, pkgDomain.WrapFault(domain.ErrTicketNotFound, "ticket %q", id)
		}
		return domain.Ticket{}, err
	}
	return ticket, nil
}

func (r *gormTicketRepository) ListByTrip(ctx context.Context, tripID string) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Order("purchase_date").Find(&tickets).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to list tickets", err, map[string]interface{}{
			"trip_id": tripID,
		})
		return nil, err
	}
	return tickets, nil
}

func (r *gormTicketRepository) ListOccupiedSeats(ctx context.Context, tripID string) ([]string, error) {
	var seats []string
	err := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("trip_id = ? AND status IN ?", tripID, []domain.TicketStatus{domain.TicketValid, domain.TicketUsed}).
		Pluck("seat_number", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *gormTicketRepository) Update(ctx context.Context, ticket domain.Ticket) error {
	result := r.db.WithContext(ctx).Model(&domain.Ticket{}).Where("id = ?", ticket.ID).Updates(map[string]interface{}{
		"status": ticket.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(domain.ErrTicketNotFound, "ticket %q", ticket.ID)
	}
	return nil
}
