package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store commits one balance-affecting event atomically: the ledger entry,
// the versioned balance write, and (for invoices) the status flip. It
// returns ErrAlreadyApplied for a duplicate reference and ErrConflict when
// the balance version moved under the caller.
type Store interface {
	Apply(ctx context.Context, entry *models.LedgerEntry, expectVersion int64, invoiceID *uuid.UUID) error
	Entries(ctx context.Context, accountCode string) ([]models.LedgerEntry, error)
}

type AccountStore interface {
	GetByCode(ctx context.Context, code string) (*models.CustomerAccount, error)
}

type InvoiceSource interface {
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
}

// maxApplyAttempts bounds the optimistic retry on balance version conflicts.
const maxApplyAttempts = 3

// Service maintains customer running balances. Every mutation derives from
// exactly one invoice or receipt record; there is no ad hoc balance write.
type Service struct {
	store    Store
	accounts AccountStore
	invoices InvoiceSource
	log      *zap.Logger
}

func NewService(store Store, accounts AccountStore, invoices InvoiceSource, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		accounts: accounts,
		invoices: invoices,
		log:      log.Named("ledger"),
	}
}

// ApplyInvoice debits a built invoice onto its account balance and flips the
// invoice to applied. Idempotent: a second call returns ErrAlreadyApplied
// and leaves the balance unchanged.
func (s *Service) ApplyInvoice(ctx context.Context, invoiceNumber string) (decimal.Decimal, error) {
	invoice, err := s.invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return decimal.Zero, err
	}
	switch invoice.Status {
	case models.InvoiceBuilt:
	case models.InvoiceApplied:
		return decimal.Zero, billingerr.ErrAlreadyApplied
	default:
		return decimal.Zero, fmt.Errorf("%w: invoice %s is %s, expected built", billingerr.ErrValidation, invoiceNumber, invoice.Status)
	}

	return s.apply(ctx, invoice.AccountCode, &models.LedgerEntry{
		EntryType:   models.EntryInvoice,
		ReferenceID: invoice.ID.String(),
		Amount:      invoice.Total,
		Description: "invoice " + invoice.InvoiceNumber,
	}, &invoice.ID)
}

// ApplyReceipt credits a payment against the account balance. The reference
// makes retried requests idempotent.
func (s *Service) ApplyReceipt(ctx context.Context, accountCode, reference string, amount decimal.Decimal) (decimal.Decimal, error) {
	if reference == "" {
		return decimal.Zero, fmt.Errorf("%w: receipt reference is required", billingerr.ErrValidation)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: receipt amount must be positive", billingerr.ErrValidation)
	}

	return s.apply(ctx, accountCode, &models.LedgerEntry{
		EntryType:   models.EntryReceipt,
		ReferenceID: reference,
		Amount:      amount.Neg(),
		Description: "receipt " + reference,
	}, nil)
}

// apply runs the optimistic-retry loop: read the account, compute the new
// balance, attempt the conditional commit, and re-read on a version race.
// Duplicate references short-circuit before any balance effect.
func (s *Service) apply(ctx context.Context, accountCode string, entry *models.LedgerEntry, invoiceID *uuid.UUID) (decimal.Decimal, error) {
	entry.AccountCode = accountCode

	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		account, err := s.accounts.GetByCode(ctx, accountCode)
		if err != nil {
			return decimal.Zero, err
		}

		attemptEntry := *entry
		attemptEntry.ID = uuid.New()
		attemptEntry.BalanceAfter = account.Balance.Add(entry.Amount)
		attemptEntry.CreatedAt = time.Now()

		err = s.store.Apply(ctx, &attemptEntry, account.BalanceVersion, invoiceID)
		if errors.Is(err, billingerr.ErrConflict) {
			s.log.Debug("balance version conflict, retrying",
				zap.String("account", accountCode),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		return attemptEntry.BalanceAfter, nil
	}
	return decimal.Zero, billingerr.ErrConflict
}

// History returns the ordered balance history for an account.
func (s *Service) History(ctx context.Context, accountCode string) ([]models.LedgerEntry, error) {
	return s.store.Entries(ctx, accountCode)
}

// Replay folds the full entry history from zero; the result must equal the
// stored balance for a healthy account.
func (s *Service) Replay(ctx context.Context, accountCode string) (decimal.Decimal, error) {
	entries, err := s.store.Entries(ctx, accountCode)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Amount)
	}
	return balance, nil
}
