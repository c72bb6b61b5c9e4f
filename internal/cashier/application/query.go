package application

import (
	"time"

	"github.com/transgare/backoffice/pkg/domain"
)

// BalanceData asks for a cashier's drawer balance, optionally bounded to
// a [From, To) window such as one business day.
type BalanceData struct {
	CashierID string    `json:"cashierId" validate:"required"`
	From      time.Time `json:"from,omitempty"`
	To        time.Time `json:"to,omitempty"`
}

type balanceQuery struct {
	data BalanceData
}

func (q balanceQuery) QueryName() string {
	return "CashierBalance"
}

func (q balanceQuery) Payload() BalanceData {
	return q.data
}

func NewBalanceQuery(data BalanceData) domain.Query[BalanceData] {
	return balanceQuery{data: data}
}

// ListTransactionsData asks for a cashier's drawer log, optionally
// bounded the same way as BalanceData.
type ListTransactionsData struct {
	CashierID string    `json:"cashierId" validate:"required"`
	From      time.Time `json:"from,omitempty"`
	To        time.Time `json:"to,omitempty"`
}

type listTransactionsQuery struct {
	data ListTransactionsData
}

func (q listTransactionsQuery) QueryName() string {
	return "ListCashierTransactions"
}

func (q listTransactionsQuery) Payload() ListTransactionsData {
	return q.data
}

func NewListTransactionsQuery(data ListTransactionsData) domain.Query[ListTransactionsData] {
	return listTransactionsQuery{data: data}
}
