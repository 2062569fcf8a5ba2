package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend emulates the repository's transactional Apply: duplicate
// (type, reference) pairs are rejected, and the balance write is conditional
// on the version the caller read.
type fakeBackend struct {
	mu       sync.Mutex
	balance  decimal.Decimal
	version  int64
	entries  []models.LedgerEntry
	refs     map[string]bool
	invoices map[string]*models.Invoice
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		refs:     make(map[string]bool),
		invoices: make(map[string]*models.Invoice),
	}
}

func (f *fakeBackend) Apply(_ context.Context, entry *models.LedgerEntry, expectVersion int64, invoiceID *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := entry.EntryType + "|" + entry.ReferenceID
	if f.refs[key] {
		return billingerr.ErrAlreadyApplied
	}
	if f.version != expectVersion {
		return billingerr.ErrConflict
	}
	if invoiceID != nil {
		for _, inv := range f.invoices {
			if inv.ID == *invoiceID {
				switch inv.Status {
				case models.InvoiceBuilt:
					inv.Status = models.InvoiceApplied
				case models.InvoiceApplied:
					return billingerr.ErrAlreadyApplied
				default:
					return billingerr.ErrConflict
				}
			}
		}
	}
	f.refs[key] = true
	f.entries = append(f.entries, *entry)
	f.balance = entry.BalanceAfter
	f.version++
	return nil
}

func (f *fakeBackend) Entries(_ context.Context, _ string) ([]models.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LedgerEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeBackend) GetByCode(_ context.Context, code string) (*models.CustomerAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.CustomerAccount{
		AccountCode:    code,
		Balance:        f.balance,
		BalanceVersion: f.version,
	}, nil
}

func (f *fakeBackend) GetByNumber(_ context.Context, number string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.invoices[number]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, billingerr.ErrInvoiceNotFound
}

func (f *fakeBackend) addInvoice(number string, total float64, status string) *models.Invoice {
	inv := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		AccountCode:   "ACME",
		Status:        status,
		Total:         decimal.NewFromFloat(total),
		BillingDate:   time.Now(),
	}
	f.invoices[number] = inv
	return inv
}

func newTestService(backend *fakeBackend) *Service {
	return NewService(backend, backend, backend, zap.NewNop())
}

func TestApplyInvoice(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 150, models.InvoiceBuilt)
	svc := newTestService(backend)

	balance, err := svc.ApplyInvoice(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, models.InvoiceApplied, backend.invoices["INV-1"].Status)
}

func TestApplyInvoiceIdempotent(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 150, models.InvoiceBuilt)
	svc := newTestService(backend)

	_, err := svc.ApplyInvoice(context.Background(), "INV-1")
	require.NoError(t, err)

	// Second application: rejected, balance untouched.
	_, err = svc.ApplyInvoice(context.Background(), "INV-1")
	assert.ErrorIs(t, err, billingerr.ErrAlreadyApplied)
	assert.True(t, backend.balance.Equal(decimal.NewFromInt(150)))
	assert.Len(t, backend.entries, 1)
}

func TestApplyInvoiceWrongState(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-V", 80, models.InvoiceVoid)
	svc := newTestService(backend)

	_, err := svc.ApplyInvoice(context.Background(), "INV-V")
	assert.ErrorIs(t, err, billingerr.ErrValidation)
	assert.Empty(t, backend.entries)
}

func TestApplyInvoiceNotFound(t *testing.T) {
	svc := newTestService(newFakeBackend())
	_, err := svc.ApplyInvoice(context.Background(), "NOPE")
	assert.ErrorIs(t, err, billingerr.ErrInvoiceNotFound)
}

func TestApplyReceipt(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 200, models.InvoiceBuilt)
	svc := newTestService(backend)

	_, err := svc.ApplyInvoice(context.Background(), "INV-1")
	require.NoError(t, err)

	balance, err := svc.ApplyReceipt(context.Background(), "ACME", "RCPT-1", decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(80)))

	// Retried receipt with the same reference is a no-op.
	_, err = svc.ApplyReceipt(context.Background(), "ACME", "RCPT-1", decimal.NewFromInt(120))
	assert.ErrorIs(t, err, billingerr.ErrAlreadyApplied)
	assert.True(t, backend.balance.Equal(decimal.NewFromInt(80)))
}

func TestApplyReceiptValidation(t *testing.T) {
	svc := newTestService(newFakeBackend())

	_, err := svc.ApplyReceipt(context.Background(), "ACME", "", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, billingerr.ErrValidation)

	_, err = svc.ApplyReceipt(context.Background(), "ACME", "RCPT-1", decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, billingerr.ErrValidation)
}

func TestReplayReproducesBalance(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 100, models.InvoiceBuilt)
	backend.addInvoice("INV-2", 250, models.InvoiceBuilt)
	svc := newTestService(backend)

	_, err := svc.ApplyInvoice(context.Background(), "INV-1")
	require.NoError(t, err)
	_, err = svc.ApplyInvoice(context.Background(), "INV-2")
	require.NoError(t, err)
	_, err = svc.ApplyReceipt(context.Background(), "ACME", "RCPT-1", decimal.NewFromInt(300))
	require.NoError(t, err)

	replayed, err := svc.Replay(context.Background(), "ACME")
	require.NoError(t, err)
	assert.True(t, replayed.Equal(backend.balance),
		"replayed %s, stored %s", replayed, backend.balance)
	assert.True(t, replayed.Equal(decimal.NewFromInt(50)))
}

func TestConcurrentApplyNoLostUpdate(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-A", 100, models.InvoiceBuilt)
	backend.addInvoice("INV-B", 60, models.InvoiceBuilt)
	svc := newTestService(backend)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, number := range []string{"INV-A", "INV-B"} {
		wg.Add(1)
		go func(i int, number string) {
			defer wg.Done()
			_, errs[i] = svc.ApplyInvoice(context.Background(), number)
		}(i, number)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.True(t, backend.balance.Equal(decimal.NewFromInt(160)),
		"both applications must land, got %s", backend.balance)
	assert.Len(t, backend.entries, 2)
}

// staleInvoiceSource reports the invoice as still built even though the
// backing store holds a later state, emulating a void landing between the
// status read and the commit.
type staleInvoiceSource struct {
	inner *fakeBackend
}

func (s *staleInvoiceSource) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	inv, err := s.inner.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	inv.Status = models.InvoiceBuilt
	return inv, nil
}

func TestApplyInvoiceVoidedConcurrently(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 100, models.InvoiceVoid)
	svc := NewService(backend, backend, &staleInvoiceSource{inner: backend}, zap.NewNop())

	_, err := svc.ApplyInvoice(context.Background(), "INV-1")
	assert.ErrorIs(t, err, billingerr.ErrConflict)
	assert.Empty(t, backend.entries)
	assert.True(t, backend.balance.IsZero())
}

func TestConflictRetryExhaustion(t *testing.T) {
	backend := newFakeBackend()
	backend.addInvoice("INV-1", 100, models.InvoiceBuilt)
	// Force a version mismatch on every attempt.
	conflicting := &conflictBackend{fakeBackend: backend}
	svc := NewService(conflicting, backend, backend, zap.NewNop())

	_, err := svc.ApplyInvoice(context.Background(), "INV-1")
	assert.ErrorIs(t, err, billingerr.ErrConflict)
	assert.Equal(t, maxApplyAttempts, conflicting.attempts)
}

type conflictBackend struct {
	*fakeBackend
	attempts int
}

func (c *conflictBackend) Apply(_ context.Context, _ *models.LedgerEntry, _ int64, _ *uuid.UUID) error {
	c.attempts++
	return billingerr.ErrConflict
}
