package infrastructure

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/transgare/backoffice/internal/cashier/application"
	"github.com/transgare/backoffice/internal/cashier/domain"
	pkgApp "github.com/transgare/backoffice/pkg/application"
	pkgDomain "github.com/transgare/backoffice/pkg/domain"
	"github.com/transgare/backoffice/pkg/infrastructure/httperr"
)

type CashierHTTPHandler struct {
	depositBus  pkgApp.CommandBus[pkgDomain.Command[application.DepositData], application.DepositData]
	withdrawBus pkgApp.CommandBus[pkgDomain.Command[application.WithdrawData], application.WithdrawData]
	balanceBus  pkgApp.QueryBus[pkgDomain.Query[application.BalanceData], application.BalanceData, int64]
	listBus     pkgApp.QueryBus[pkgDomain.Query[application.ListTransactionsData], application.ListTransactionsData, []domain.Transaction]
	validate    *validator.Validate
}

func NewCashierHTTPHandler(
	depositBus pkgApp.CommandBus[pkgDomain.Command[application.DepositData], application.DepositData],
	withdrawBus pkgApp.CommandBus[pkgDomain.Command[application.WithdrawData], application.WithdrawData],
	balanceBus pkgApp.QueryBus[pkgDomain.Query[application.BalanceData], application.BalanceData, int64],
	listBus pkgApp.QueryBus[pkgDomain.Query[application.ListTransactionsData], application.ListTransactionsData, []domain.Transaction],
) *CashierHTTPHandler {
	return &CashierHTTPHandler{
		depositBus:  depositBus,
		withdrawBus: withdrawBus,
		balanceBus:  balanceBus,
		listBus:     listBus,
		validate:    validator.New(),
	}
}

func (h *CashierHTTPHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	var data application.DepositData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	data.CashierID = chi.URLParam(r, "cashierID")
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid deposit request", Err: err})
		return
	}

	if err := h.depositBus.Dispatch(r.Context(), application.NewDepositCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "deposit recorded"})
}

func (h *CashierHTTPHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	var data application.WithdrawData
	if err := httperr.DecodeJSON(r, &data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid request body", Err: err})
		return
	}
	data.CashierID = chi.URLParam(r, "cashierID")
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid withdrawal request", Err: err})
		return
	}

	if err := h.withdrawBus.Dispatch(r.Context(), application.NewWithdrawCommand(data)); err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "withdrawal recorded"})
}

// dayWindow reads the optional ?date=YYYY-MM-DD query parameter and
// turns it into balance bounds. Absent means the full log.
func dayWindow(r *http.Request) (from, to time.Time, err error) {
	day := r.URL.Query().Get("date")
	if day == "" {
		return from, to, nil
	}
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return from, to, err
	}
	from, to = domain.DayWindow(parsed)
	return from, to, nil
}

func (h *CashierHTTPHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	data := application.BalanceData{CashierID: chi.URLParam(r, "cashierID")}
	var err error
	if data.From, data.To, err = dayWindow(r); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "date must be YYYY-MM-DD", Err: err})
		return
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid balance request", Err: err})
		return
	}

	balance, err := h.balanceBus.Dispatch(r.Context(), application.NewBalanceQuery(data))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}

func (h *CashierHTTPHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	data := application.ListTransactionsData{CashierID: chi.URLParam(r, "cashierID")}
	var err error
	if data.From, data.To, err = dayWindow(r); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "date must be YYYY-MM-DD", Err: err})
		return
	}
	if err := h.validate.Struct(data); err != nil {
		httperr.Write(w, &pkgDomain.Fault{Kind: pkgDomain.FaultValidation, Msg: "invalid transaction listing request", Err: err})
		return
	}

	transactions, err := h.listBus.Dispatch(r.Context(), application.NewListTransactionsQuery(data))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	httperr.WriteJSON(w, http.StatusOK, transactions)
}

func (h *CashierHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/cashiers/{cashierID}/deposits", h.HandleDeposit)
	router.Post("/cashiers/{cashierID}/withdrawals", h.HandleWithdraw)
	router.Get("/cashiers/{cashierID}/balance", h.HandleBalance)
	router.Get("/cashiers/{cashierID}/transactions", h.HandleListTransactions)
}
