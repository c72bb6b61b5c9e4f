package domain

import (
	"context"
	"time"

	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

var (
	ErrTransactionNotFound = pkgDomain.NewFault(pkgDomain.FaultNotFound, "transaction not found")
	// ErrInsufficientDrawer rejects withdrawals larger than the drawer
	// balance.
	ErrInsufficientDrawer = pkgDomain.NewFault(pkgDomain.FaultConflict, "insufficient drawer balance")
	// ErrTransactionNotCancellable rejects a reversal of anything but a
	// completed transaction.
	ErrTransactionNotCancellable = pkgDomain.NewFault(pkgDomain.FaultConflict, "only completed transactions can be cancelled")
)

// TransactionType is the closed set of drawer movements. Sales and
// deposits add to the drawer, refunds and withdrawals take from it.
type TransactionType string

const (
	TypeSale       TransactionType = "sale"
	TypeRefund     TransactionType = "refund"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Inflow reports whether the type adds to the drawer balance.
func (t TransactionType) Inflow() bool {
	return t == TypeSale || t == TypeDeposit
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is one append-only entry in a cashier's drawer log.
// Amounts are always positive; the type carries the direction.
type Transaction struct {
	ID            string            `json:"id" gorm:"primaryKey"`
	CashierID     string            `json:"cashierId" gorm:"index"`
	Type          TransactionType   `json:"type"`
	Amount        int64             `json:"amount"`
	PaymentMethod string            `json:"paymentMethod"`
	TicketID      string            `json:"ticketId,omitempty"`
	TripID        string            `json:"tripId,omitempty"`
	Note          string            `json:"note,omitempty"`
	Status        TransactionStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
}

// BalanceOf folds a transaction list into a drawer balance. Only
// completed transactions count; pending and cancelled entries are
// ignored.
func BalanceOf(transactions []Transaction) int64 {
	var balance int64
	for _, tx := range transactions {
		if tx.Status != StatusCompleted {
			continue
		}
		if tx.Type.Inflow() {
			balance += tx.Amount
		} else {
			balance -= tx.Amount
		}
	}
	return balance
}

// DayWindow bounds one calendar day in the day's location, inclusive of
// midnight and exclusive of the next.
func DayWindow(day time.Time) (from, to time.Time) {
	from = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}

// TransactionRepository is the persistence port for the drawer log.
// Entries are append-only; MarkCancelled is the only permitted mutation,
// a completed-to-cancelled reversal kept for audit tooling. ListByCashier
// bounds by [from, to); a zero bound is open on that side.
type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction) error
	FindByID(ctx context.Context, id string) (Transaction, error)
	ListByCashier(ctx context.Context, cashierID string, from, to time.Time) ([]Transaction, error)
	MarkCancelled(ctx context.Context, id string) error
}
