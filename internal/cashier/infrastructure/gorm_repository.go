package infrastructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/transgare/backoffice/internal/cashier/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type gormTransactionRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormTransactionRepository(db *gorm.DB, logger application.AppLogger) (domain.TransactionRepository, error) {
	if err := db.AutoMigrate(&domain.Transaction{}); err != nil {
		return nil, err
	}
	return &gormTransactionRepository{db: db, logger: logger}, nil
}

func (r *gormTransactionRepository) Append(ctx context.Context, tx domain.Transaction) error {
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to append transaction", err, map[string]interface{}{
			"transaction_id": tx.ID,
		})
		return err
	}
	return nil
}

func (r *gormTransactionRepository) FindByID(ctx context.Context, id string) (domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, pkgDomain.WrapFault(domain.ErrTransactionNotFound, "transaction %q", id)
		}
		return domain.Transaction{}, err
	}
	return tx, nil
}

func (r *gormTransactionRepository) ListByCashier(ctx context.Context, cashierID string, from, to time.Time) ([]domain.Transaction, error) {
	query := r.db.WithContext(ctx).Where("cashier_id = ?", cashierID)
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp < ?", to)
	}

	var transactions []domain.Transaction
	if err := query.Order("timestamp").Find(&transactions).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to list transactions", err, map[string]interface{}{
			"cashier_id": cashierID,
		})
		return nil, err
	}
	return transactions, nil
}

func (r *gormTransactionRepository) MarkCancelled(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ? AND status = ?", id, domain.StatusCompleted).
		Update("status", domain.StatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return pkgDomain.WrapFault(domain.ErrTransactionNotCancellable, "transaction %q is %s", id, tx.Status)
	}
	return nil
}
