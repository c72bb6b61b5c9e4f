package infrastructure

import (
	"context"
	"sync"

	"github.com/transgare/backoffice/internal/pricing/domain"
	"github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var errRuleExists = pkgDomain.NewFault(pkgDomain.FaultConflict, "pricing rule already exists")

// InMemoryRuleRepository keeps pricing rules in a mutex-guarded map. Used
// by tests and the channel-transport entrypoint.
type InMemoryRuleRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.Rule
	logger application.AppLogger
}

func NewInMemoryRuleRepository(logger application.AppLogger) *InMemoryRuleRepository {
	return &InMemoryRuleRepository{
		data:   make(map[string]domain.Rule),
		logger: logger,
	}
}

func (r *InMemoryRuleRepository) Save(ctx context.Context, rule domain.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[rule.ID]; exists {
		return pkgDomain.WrapFault(errRuleExists, "rule %q", rule.ID)
	}
	r.data[rule.ID] = rule
	return nil
}

func (r *InMemoryRuleRepository) FindByID(ctx context.Context, id string) (domain.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, exists := r.data[id]
	if !exists {
		return domain.Rule{}, pkgDomain.WrapFault(ErrRuleNotFound, "rule %q", id)
	}
	return rule, nil
}

func (r *InMemoryRuleRepository) ListByRoute(ctx context.Context, routeID string) ([]domain.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []domain.Rule
	for _, rule := range r.data {
		if rule.RouteID == routeID {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (r *InMemoryRuleRepository) ListAll(ctx context.Context) ([]domain.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]domain.Rule, 0, len(r.data))
	for _, rule := range r.data {
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *InMemoryRuleRepository) Update(ctx context.Context, rule domain.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[rule.ID]; !exists {
		return pkgDomain.WrapFault(ErrRuleNotFound, "rule %q", rule.ID)
	}
	r.data[rule.ID] = rule
	return nil
}

func (r *InMemoryRuleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}
