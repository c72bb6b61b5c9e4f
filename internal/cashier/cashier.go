// Package cashier is the vertical slice owning the append-only drawer
// log: counter sale and refund entries, deposits, withdrawals and
// per-cashier balances.
package cashier

import (
	"github.com/go-chi/chi/v5"

	"github.com/transgare/backoffice/internal/cashier/application"
	"github.com/transgare/backoffice/internal/cashier/domain"
	"github.com/transgare/backoffice/internal/cashier/infrastructure"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type CashierSlice struct {
	httpHandler *infrastructure.CashierHTTPHandler
}

func NewCashierSlice(
	depositBus pkgApp.CommandBus[pkgDomain.Command[application.DepositData], application.DepositData],
	withdrawBus pkgApp.CommandBus[pkgDomain.Command[application.WithdrawData], application.WithdrawData],
	balanceBus pkgApp.QueryBus[pkgDomain.Query[application.BalanceData], application.BalanceData, int64],
	listBus pkgApp.QueryBus[pkgDomain.Query[application.ListTransactionsData], application.ListTransactionsData, []domain.Transaction],
	ledger *application.Ledger,
	transactionRepo domain.TransactionRepository,
	logger pkgApp.AppLogger,
) *CashierSlice {
	depositBus.RegisterHandler("DepositCash", application.NewDepositHandler(ledger))
	withdrawBus.RegisterHandler("WithdrawCash", application.NewWithdrawHandler(ledger))
	balanceBus.RegisterHandler("CashierBalance", application.NewBalanceHandler(ledger))
	listBus.RegisterHandler("ListCashierTransactions", application.NewListTransactionsHandler(transactionRepo, logger))

	return &CashierSlice{
		httpHandler: infrastructure.NewCashierHTTPHandler(depositBus, withdrawBus, balanceBus, listBus),
	}
}

func (s *CashierSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
