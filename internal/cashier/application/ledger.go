package application

import (
	"context"
	"time"

	"github.com/transgare/backoffice/internal/cashier/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

// Ledger appends drawer transactions and folds balances. It satisfies
// the ticket slice's cash recorder port, so counter sales and refunds
// land here without the ticket slice importing this package.
type Ledger struct {
	transactions domain.TransactionRepository
	idGenerator  pkgDomain.IDGenerator[string]
	now          func() time.Time
	logger       pkgApp.AppLogger
}

func NewLedger(transactions domain.TransactionRepository, idGenerator pkgDomain.IDGenerator[string], now func() time.Time, logger pkgApp.AppLogger) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		transactions: transactions,
		idGenerator:  idGenerator,
		now:          now,
		logger:       logger,
	}
}

func (l *Ledger) append(ctx context.Context, tx domain.Transaction) error {
	if err := l.transactions.Append(ctx, tx); err != nil {
		pkgApp.LogError(ctx, l.logger, "failed to append drawer transaction", err, map[string]interface{}{
			"cashier_id": tx.CashierID,
			"type":       tx.Type,
		})
		return err
	}
	l.logger.Info(ctx, "drawer transaction appended", map[string]interface{}{
		"transaction_id": tx.ID,
		"cashier_id":     tx.CashierID,
		"type":           tx.Type,
		"amount":         tx.Amount,
	})
	return nil
}

func (l *Ledger) RecordSale(ctx context.Context, cashierID string, amount int64, method, ticketID, tripID string) error {
	return l.append(ctx, domain.Transaction{
		ID:            l.idGenerator(),
		CashierID:     cashierID,
		Type:          domain.TypeSale,
		Amount:        amount,
		PaymentMethod: method,
		TicketID:      ticketID,
		TripID:        tripID,
		Status:        domain.StatusCompleted,
		Timestamp:     l.now(),
	})
}

func (l *Ledger) RecordRefund(ctx context.Context, cashierID string, amount int64, method, ticketID, tripID string) error {
	return l.append(ctx, domain.Transaction{
		ID:            l.idGenerator(),
		CashierID:     cashierID,
		Type:          domain.TypeRefund,
		Amount:        amount,
		PaymentMethod: method,
		TicketID:      ticketID,
		TripID:        tripID,
		Status:        domain.StatusCompleted,
		Timestamp:     l.now(),
	})
}

func (l *Ledger) Deposit(ctx context.Context, cashierID string, amount int64, note string) error {
	return l.append(ctx, domain.Transaction{
		ID:        l.idGenerator(),
		CashierID: cashierID,
		Type:      domain.TypeDeposit,
		Amount:    amount,
		Note:      note,
		Status:    domain.StatusCompleted,
		Timestamp: l.now(),
	})
}

// Withdraw takes cash out of the drawer. The balance check and the
// append are not atomic across processes; the drawer log is still the
// source of truth on reconciliation.
func (l *Ledger) Withdraw(ctx context.Context, cashierID string, amount int64, note string) error {
	balance, err := l.Balance(ctx, cashierID, time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	if amount > balance {
		return pkgDomain.WrapFault(domain.ErrInsufficientDrawer,
			"withdraw %d from balance %d for cashier %s", amount, balance, cashierID)
	}
	return l.append(ctx, domain.Transaction{
		ID:        l.idGenerator(),
		CashierID: cashierID,
		Type:      domain.TypeWithdrawal,
		Amount:    amount,
		Note:      note,
		Status:    domain.StatusCompleted,
		Timestamp: l.now(),
	})
}

// Balance folds the drawer over [from, to); zero bounds leave that side
// open, so two zero values give the lifetime balance.
func (l *Ledger) Balance(ctx context.Context, cashierID string, from, to time.Time) (int64, error) {
	transactions, err := l.transactions.ListByCashier(ctx, cashierID, from, to)
	if err != nil {
		return 0, err
	}
	return domain.BalanceOf(transactions), nil
}
