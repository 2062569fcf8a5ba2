package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ShipmentStore interface {
	GetByAWB(ctx context.Context, awb string) (*models.Shipment, error)
}

type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	MarkVoid(ctx context.Context, number string) error
}

// Rater resolves base rates and time-effective surcharge percents.
type Rater interface {
	LookupRate(ctx context.Context, sector, destinationZone string) (decimal.Decimal, error)
	Resolve(ctx context.Context, kind models.SurchargeKind, accountCode, service string, billingDate time.Time) (decimal.Decimal, error)
}

type WeightSource interface {
	BillableWeight(ctx context.Context, shipment *models.Shipment) (decimal.Decimal, error)
}

// Notifier is a fire-and-forget side channel; failures there never fail a
// billing operation.
type Notifier interface {
	Notify(accountCode, subject, body string)
}

// Service builds and voids invoices. Building never touches the customer
// balance. Settlement is the ledger's job, so pricing stays independently
// retryable.
type Service struct {
	shipments ShipmentStore
	invoices  InvoiceStore
	rater     Rater
	weights   WeightSource
	notifier  Notifier
	ids       *snowflake.Node
	log       *zap.Logger
}

func NewService(
	shipments ShipmentStore,
	invoices InvoiceStore,
	rater Rater,
	weights WeightSource,
	notifier Notifier,
	ids *snowflake.Node,
	log *zap.Logger,
) *Service {
	return &Service{
		shipments: shipments,
		invoices:  invoices,
		rater:     rater,
		weights:   weights,
		notifier:  notifier,
		ids:       ids,
		log:       log.Named("billing"),
	}
}

var hundred = decimal.NewFromInt(100)

// BuildInvoice prices every AWB and persists the invoice in built state.
// All-or-nothing: if any shipment cannot be priced, nothing is persisted.
// Line math: base = rate * weight; fuel = base * fuelPct; tax on the
// base+fuel subtotal.
func (s *Service) BuildInvoice(ctx context.Context, accountCode string, awbs []string, billingDate time.Time) (*models.Invoice, error) {
	if accountCode == "" {
		return nil, fmt.Errorf("%w: account code is required", billingerr.ErrValidation)
	}
	if len(awbs) == 0 {
		return nil, fmt.Errorf("%w: at least one AWB is required", billingerr.ErrValidation)
	}

	lines := make([]models.InvoiceLine, 0, len(awbs))
	total := decimal.Zero

	for _, awb := range awbs {
		// Build is cancellable up to the point of persistence.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shipment, err := s.shipments.GetByAWB(ctx, awb)
		if err != nil {
			return nil, err
		}
		if shipment.AccountCode != accountCode {
			return nil, fmt.Errorf("%w: awb %s belongs to account %s", billingerr.ErrValidation, awb, shipment.AccountCode)
		}

		weight, err := s.weights.BillableWeight(ctx, shipment)
		if err != nil {
			return nil, err
		}
		rate, err := s.rater.LookupRate(ctx, shipment.Sector, shipment.DestinationZone)
		if err != nil {
			return nil, err
		}
		fuelPct, err := s.rater.Resolve(ctx, models.SurchargeFuel, accountCode, shipment.Service, billingDate)
		if err != nil {
			return nil, err
		}
		taxPct, err := s.rater.Resolve(ctx, models.SurchargeTax, accountCode, shipment.Service, billingDate)
		if err != nil {
			return nil, err
		}

		base := rate.Mul(weight).Round(2)
		fuel := base.Mul(fuelPct).Div(hundred).Round(2)
		tax := base.Add(fuel).Mul(taxPct).Div(hundred).Round(2)
		lineTotal := base.Add(fuel).Add(tax)

		lines = append(lines, models.InvoiceLine{
			AWB:           awb,
			Weight:        weight,
			Rate:          rate,
			Base:          base,
			FuelSurcharge: fuel,
			Tax:           tax,
			Total:         lineTotal,
		})
		total = total.Add(lineTotal)
	}

	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice lines: %w", err)
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-" + s.ids.Generate().String(),
		AccountCode:   accountCode,
		BillingDate:   billingDate,
		Status:        models.InvoiceBuilt,
		Lines:         linesJSON,
		Total:         total,
		CreatedAt:     time.Now(),
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice: %w", err)
	}

	s.log.Info("invoice built",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("account", accountCode),
		zap.Int("line_count", len(lines)),
		zap.String("total", total.String()))
	s.notifier.Notify(accountCode, "Invoice "+invoice.InvoiceNumber,
		fmt.Sprintf("Invoice %s built for %d shipments, total %s", invoice.InvoiceNumber, len(lines), total.StringFixed(2)))

	return invoice, nil
}

// VoidInvoice cancels a built invoice before balance application. Applied
// invoices are rejected; they need a compensating credit instead.
func (s *Service) VoidInvoice(ctx context.Context, invoiceNumber string) error {
	if err := s.invoices.MarkVoid(ctx, invoiceNumber); err != nil {
		return err
	}
	s.log.Info("invoice voided", zap.String("invoice_number", invoiceNumber))
	return nil
}

func (s *Service) GetInvoice(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.invoices.GetByNumber(ctx, invoiceNumber)
}
