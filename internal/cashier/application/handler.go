package application

import (
	"context"

	"github.com/transgare/backoffice/internal/cashier/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
)

type depositHandler struct {
	ledger *Ledger
}

func NewDepositHandler(ledger *Ledger) pkgApp.CommandHandler[pkgDomain.Command[DepositData], DepositData] {
	return &depositHandler{ledger: ledger}
}

func (h *depositHandler) Handle(ctx context.Context, command pkgDomain.Command[DepositData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := command.Payload()
	return h.ledger.Deposit(ctx, data.CashierID, data.Amount, data.Note)
}

type withdrawHandler struct {
	ledger *Ledger
}

func NewWithdrawHandler(ledger *Ledger) pkgApp.CommandHandler[pkgDomain.Command[WithdrawData], WithdrawData] {
	return &withdrawHandler{ledger: ledger}
}

func (h *withdrawHandler) Handle(ctx context.Context, command pkgDomain.Command[WithdrawData]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := command.Payload()
	return h.ledger.Withdraw(ctx, data.CashierID, data.Amount, data.Note)
}

type balanceHandler struct {
	ledger *Ledger
}

func NewBalanceHandler(ledger *Ledger) pkgApp.QueryHandler[pkgDomain.Query[BalanceData], BalanceData, int64] {
	return &balanceHandler{ledger: ledger}
}

func (h *balanceHandler) Handle(ctx context.Context, query pkgDomain.Query[BalanceData]) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data := query.Payload()
	return h.ledger.Balance(ctx, data.CashierID, data.From, data.To)
}

type listTransactionsHandler struct {
	repository domain.TransactionRepository
	logger     pkgApp.AppLogger
}

func NewListTransactionsHandler(repo domain.TransactionRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListTransactionsData], ListTransactionsData, []domain.Transaction] {
	return &listTransactionsHandler{repository: repo, logger: logger}
}

func (h *listTransactionsHandler) Handle(ctx context.Context, query pkgDomain.Query[ListTransactionsData]) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := query.Payload()
	transactions, err := h.repository.ListByCashier(ctx, data.CashierID, data.From, data.To)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to list drawer transactions", err, map[string]interface{}{
			"cashier_id": data.CashierID,
		})
		return nil, err
	}
	return transactions, nil
}
