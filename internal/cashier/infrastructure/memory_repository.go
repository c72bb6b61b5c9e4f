package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/transgare/backoffice/internal/cashier/domain"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// InMemoryTransactionRepository keeps the drawer log as an ordered slice
// to preserve append order the way the database does with timestamps.
type InMemoryTransactionRepository struct {
	mu   sync.RWMutex
	data []domain.Transaction
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{}
}

func (r *InMemoryTransactionRepository) Append(ctx context.Context, tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, tx)
	return nil
}

func (r *InMemoryTransactionRepository) FindByID(ctx context.Context, id string) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tx := range r.data {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, pkgDomain.WrapFault(domain.ErrTransactionNotFound, "transaction %q", id)
}

func (r *InMemoryTransactionRepository) ListByCashier(ctx context.Context, cashierID string, from, to time.Time) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var transactions []domain.Transaction
	for _, tx := range r.data {
		if tx.CashierID != cashierID {
			continue
		}
		if !from.IsZero() && tx.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.Timestamp.Before(to) {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (r *InMemoryTransactionRepository) MarkCancelled(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, tx := range r.data {
		if tx.ID != id {
			continue
		}
		if tx.Status != domain.StatusCompleted {
			return pkgDomain.WrapFault(domain.ErrTransactionNotCancellable, "transaction %q is %s", id, tx.Status)
		}
		r.data[i].Status = domain.StatusCancelled
		return nil
	}
	return pkgDomain.WrapFault(domain.ErrTransactionNotFound, "transaction %q", id)
}
