package application

import (
	"github.com/transgare/backoffice/pkg/domain"
)

// DepositData asks for a cash deposit into a cashier's drawer, such as
// the opening float.
type DepositData struct {
	CashierID string `json:"cashierId" validate:"required"`
	Amount    int64  `json:"amount" validate:"gt=0"`
	Note      string `json:"note"`
}

type depositCommand struct {
	data DepositData
}

func (c depositCommand) CommandName() string {
	return "DepositCash"
}

func (c depositCommand) Payload() DepositData {
	return c.data
}

func NewDepositCommand(data DepositData) domain.Command[DepositData] {
	return depositCommand{data: data}
}

// WithdrawData asks for a cash withdrawal from a cashier's drawer.
// Refused when the drawer balance does not cover the amount.
type WithdrawData struct {
	CashierID string `json:"cashierId" validate:"required"`
	Amount    int64  `json:"amount" validate:"gt=0"`
	Note      string `json:"note"`
}

type withdrawCommand struct {
	data WithdrawData
}

func (c withdrawCommand) CommandName() string {
	return "WithdrawCash"
}

func (c withdrawCommand) Payload() WithdrawData {
	return c.data
}

func NewWithdrawCommand(data WithdrawData) domain.Command[WithdrawData] {
	return withdrawCommand{data: data}
}
