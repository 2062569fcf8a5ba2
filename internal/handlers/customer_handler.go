package handler

import (
	"time"

	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/repository"
	ledgerservice "courier-billing-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CustomerHandler struct {
	customers *repository.CustomerRepository
	ledger    *ledgerservice.Service
}

func NewCustomerHandler(customers *repository.CustomerRepository, ledger *ledgerservice.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers, ledger: ledger}
}

func (h *CustomerHandler) List(c *gin.Context) {
	accounts, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, accounts)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var payload struct {
		AccountCode string `json:"account_code"`
		Name        string `json:"name"`
		Email       string `json:"email"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if payload.AccountCode == "" || payload.Name == "" {
		badRequest(c, "account_code and name are required")
		return
	}

	account := &models.CustomerAccount{
		ID:          uuid.New(),
		AccountCode: payload.AccountCode,
		Name:        payload.Name,
		Email:       payload.Email,
		Balance:     decimal.Zero,
		CreatedAt:   time.Now(),
	}
	if err := h.customers.Create(c.Request.Context(), account); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, account)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	account, err := h.customers.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, account)
}

type ledgerEntryDTO struct {
	EntryType    string          `json:"entry_type"`
	ReferenceID  string          `json:"reference_id"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (h *CustomerHandler) Ledger(c *gin.Context) {
	entries, err := h.ledger.History(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, lo.Map(entries, func(e models.LedgerEntry, _ int) ledgerEntryDTO {
		return ledgerEntryDTO{
			EntryType:    e.EntryType,
			ReferenceID:  e.ReferenceID,
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt,
		}
	}))
}

// Balance returns the stored balance alongside a replay of the full entry
// history; the two must agree for a healthy account.
func (h *CustomerHandler) Balance(c *gin.Context) {
	code := c.Param("code")
	account, err := h.customers.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	replayed, err := h.ledger.Replay(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"account_code":     account.AccountCode,
		"balance":          account.Balance,
		"replayed_balance": replayed,
		"consistent":       account.Balance.Equal(replayed),
	})
}
