package handler

import (
	"time"

	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/repository"
	billingservice "courier-billing-backend/internal/services/billing"
	ledgerservice "courier-billing-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillingHandler struct {
	billing       *billingservice.Service
	ledger        *ledgerservice.Service
	invoices      *repository.InvoiceRepository
	notifications *repository.NotificationRepository
}

func NewBillingHandler(
	billing *billingservice.Service,
	ledger *ledgerservice.Service,
	invoices *repository.InvoiceRepository,
	notifications *repository.NotificationRepository,
) *BillingHandler {
	return &BillingHandler{billing: billing, ledger: ledger, invoices: invoices, notifications: notifications}
}

// BuildInvoice prices a set of AWBs for one customer and billing date.
// All-or-nothing: any unpriceable shipment fails the whole build.
func (h *BillingHandler) BuildInvoice(c *gin.Context) {
	var payload struct {
		AccountCode string   `json:"account_code"`
		AWBs        []string `json:"awbs"`
		BillingDate string   `json:"billing_date"` // yyyy-mm-dd
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	billingDate, err := time.Parse("2006-01-02", payload.BillingDate)
	if err != nil {
		badRequest(c, "invalid billing_date, expected yyyy-mm-dd")
		return
	}

	invoice, err := h.billing.BuildInvoice(c.Request.Context(), payload.AccountCode, payload.AWBs, billingDate)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, invoice)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	code := c.Query("account_code")
	if code == "" {
		badRequest(c, "account_code is required")
		return
	}
	invoices, err := h.invoices.ListByAccount(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, invoices)
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.billing.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, invoice)
}

func (h *BillingHandler) ApplyInvoice(c *gin.Context) {
	number := c.Param("number")
	newBalance, err := h.ledger.ApplyInvoice(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"invoice_number": number, "new_balance": newBalance})
}

func (h *BillingHandler) VoidInvoice(c *gin.Context) {
	number := c.Param("number")
	if err := h.billing.VoidInvoice(c.Request.Context(), number); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"invoice_number": number, "status": models.InvoiceVoid})
}

func (h *BillingHandler) ApplyReceipt(c *gin.Context) {
	var payload struct {
		AccountCode string          `json:"account_code"`
		Reference   string          `json:"reference"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}

	newBalance, err := h.ledger.ApplyReceipt(c.Request.Context(), payload.AccountCode, payload.Reference, payload.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"reference": payload.Reference, "new_balance": newBalance})
}

func (h *BillingHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.notifications.List(c.Request.Context(), c.Query("account_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, notifications)
}

func (h *BillingHandler) CreateNotification(c *gin.Context) {
	var payload struct {
		AccountCode string `json:"account_code"`
		Subject     string `json:"subject"`
		Body        string `json:"body"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if payload.Subject == "" {
		badRequest(c, "subject is required")
		return
	}

	n := &models.Notification{
		ID:          uuid.New(),
		AccountCode: payload.AccountCode,
		Subject:     payload.Subject,
		Body:        payload.Body,
		CreatedAt:   time.Now(),
	}
	if err := h.notifications.Create(c.Request.Context(), n); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, n)
}
