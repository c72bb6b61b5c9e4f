package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/transgare/backoffice/internal/pricing/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// ErrRuleNotFound is reported for lookups of unknown rule ids.
var ErrRuleNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "pricing rule not found")

type gormRuleRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormRuleRepository(db *gorm.DB, logger application.AppLogger) (domain.RuleRepository, error) {
	if err := db.AutoMigrate(&domain.Rule{}); err != nil {
		return nil, err
	}
	return &gormRuleRepository{db: db, logger: logger}, nil
}

func (r *gormRuleRepository) Save(ctx context.Context, rule domain.Rule) error {
	if err := r.db.WithContext(ctx).Create(&rule).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to save pricing rule", err, map[string]interface{}{
			"rule_id": rule.ID,
		})
		return err
	}
	return nil
}

func (r *gormRuleRepository) FindByID(ctx context.Context, id string) (domain.Rule, error) {
	var rule domain.Rule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Rule{}, pkgDomain.WrapFault(ErrRuleNotFound, "rule %q", id)
		}
		return domain.Rule{}, err
	}
	return rule, nil
}

func (r *gormRuleRepository) ListByRoute(ctx context.Context, routeID string) ([]domain.Rule, error) {
	var rules []domain.Rule
	if err := r.db.WithContext(ctx).Where("route_id = ?", routeID).Find(&rules).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to list pricing rules", err, map[string]interface{}{
			"route_id": routeID,
		})
		return nil, err
	}
	return rules, nil
}

func (r *gormRuleRepository) ListAll(ctx context.Context) ([]domain.Rule, error) {
	var rules []domain.Rule
	if err := r.db.WithContext(ctx).Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *gormRuleRepository) Update(ctx context.Context, rule domain.Rule) error {
	result := r.db.WithContext(ctx).Model(&domain.Rule{}).Where("id = ?", rule.ID).Updates(rule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgDomain.WrapFault(ErrRuleNotFound, "rule %q", rule.ID)
	}
	return nil
}

func (r *gormRuleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Rule{}, "id = ?", id).Error
}
