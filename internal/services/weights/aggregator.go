package weights

import (
	"context"
	"fmt"

	"courier-billing-backend/internal/models"

	"github.com/shopspring/decimal"
)

// ClubbingStore returns the batch containing an AWB, or nil when the
// shipment travels unclubbed. Implementations must read fresh: unlocked
// batch weights may change until the batch locks.
type ClubbingStore interface {
	FindBatchForAWB(ctx context.Context, awb string) (*models.ClubbingBatch, error)
}

// ShipmentSource resolves co-clubbed shipments so their declared weights
// can drive the bag distribution.
type ShipmentSource interface {
	GetByAWB(ctx context.Context, awb string) (*models.Shipment, error)
}

// Aggregator computes the billable weight for a shipment.
type Aggregator struct {
	clubbing  ClubbingStore
	shipments ShipmentSource
}

func NewAggregator(clubbing ClubbingStore, shipments ShipmentSource) *Aggregator {
	return &Aggregator{clubbing: clubbing, shipments: shipments}
}

// BillableWeight applies the clubbing reconciliation policy:
//   - clubbed shipment: member weight plus a share of the bag weight,
//     distributed across the batch proportionally to the members' declared
//     weights (bag * declared_i / sum(declared)), counted once per batch;
//   - unclubbed shipment: the declared weight.
//
// No caching across billing runs. An unlocked batch may be amended between
// calls, and the lock flag is what freezes the numbers.
func (a *Aggregator) BillableWeight(ctx context.Context, shipment *models.Shipment) (decimal.Decimal, error) {
	batch, err := a.clubbing.FindBatchForAWB(ctx, shipment.AWB)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lookup clubbing batch for %s: %w", shipment.AWB, err)
	}
	if batch == nil {
		return shipment.DeclaredWeight, nil
	}

	var memberWeight, totalDeclared decimal.Decimal
	found := false
	for _, m := range batch.Members {
		if m.AWB == shipment.AWB {
			memberWeight = m.Weight
			found = true
			totalDeclared = totalDeclared.Add(shipment.DeclaredWeight)
			continue
		}
		peer, err := a.shipments.GetByAWB(ctx, m.AWB)
		if err != nil {
			return decimal.Zero, fmt.Errorf("lookup clubbed shipment %s: %w", m.AWB, err)
		}
		totalDeclared = totalDeclared.Add(peer.DeclaredWeight)
	}
	if !found {
		return decimal.Zero, fmt.Errorf("awb %s missing from batch %s members", shipment.AWB, batch.ID)
	}

	if batch.BagWeight.IsZero() || totalDeclared.IsZero() {
		return memberWeight, nil
	}
	bagShare := batch.BagWeight.Mul(shipment.DeclaredWeight).Div(totalDeclared)
	return memberWeight.Add(bagShare), nil
}
