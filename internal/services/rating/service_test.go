package rating

import (
	"context"
	"testing"
	"time"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockZoneStore struct {
	rates map[string]decimal.Decimal // "sector|zone" -> rate
	calls int
}

func (m *mockZoneStore) GetRate(_ context.Context, sector, destinationZone string) (decimal.Decimal, error) {
	m.calls++
	if rate, ok := m.rates[sector+"|"+destinationZone]; ok {
		return rate, nil
	}
	return decimal.Zero, billingerr.ErrRateNotFound
}

type mockSurchargeStore struct {
	records []models.SurchargeSetting
	err     error
}

func (m *mockSurchargeStore) ListFor(_ context.Context, kind models.SurchargeKind, accountCode, service string) ([]models.SurchargeSetting, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.SurchargeSetting
	for _, rec := range m.records {
		if rec.Kind == kind && rec.Service == service && (rec.AccountCode == accountCode || rec.AccountCode == "") {
			out = append(out, rec)
		}
	}
	return out, nil
}

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func setting(account string, percent float64, effective, created string) models.SurchargeSetting {
	return models.SurchargeSetting{
		Kind:          models.SurchargeFuel,
		AccountCode:   account,
		Service:       "express",
		Percent:       decimal.NewFromFloat(percent),
		EffectiveDate: day(effective),
		CreatedAt:     day(created),
	}
}

func TestLookupRate(t *testing.T) {
	zones := &mockZoneStore{rates: map[string]decimal.Decimal{
		"DEL|Z1": decimal.NewFromInt(120),
	}}
	svc := NewService(zones, &mockSurchargeStore{}, zap.NewNop())

	rate, err := svc.LookupRate(context.Background(), "DEL", "Z1")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(120)))

	// Same sector, unknown destination zone: sector alone is not enough.
	_, err = svc.LookupRate(context.Background(), "DEL", "Z9")
	assert.ErrorIs(t, err, billingerr.ErrRateNotFound)
}

func TestLookupRateCaches(t *testing.T) {
	zones := &mockZoneStore{rates: map[string]decimal.Decimal{
		"BOM|Z2": decimal.NewFromInt(95),
	}}
	svc := NewService(zones, &mockSurchargeStore{}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.LookupRate(context.Background(), "BOM", "Z2")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, zones.calls, "repeat lookups within the TTL should hit the cache")

	svc.InvalidateRates()
	_, err := svc.LookupRate(context.Background(), "BOM", "Z2")
	require.NoError(t, err)
	assert.Equal(t, 2, zones.calls)
}

func TestResolveSurcharge(t *testing.T) {
	tests := []struct {
		name        string
		records     []models.SurchargeSetting
		account     string
		billingDate string
		wantPercent float64
		wantErr     error
	}{
		{
			name: "latest effective date not after billing date wins",
			records: []models.SurchargeSetting{
				setting("", 5, "2024-01-01", "2024-01-01"),
				setting("", 8, "2024-03-01", "2024-03-01"),
				setting("", 12, "2024-06-01", "2024-06-01"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantPercent: 8,
		},
		{
			name: "future dated setting does not affect earlier billing dates",
			records: []models.SurchargeSetting{
				setting("", 5, "2024-01-01", "2024-01-01"),
				setting("", 20, "2025-01-01", "2024-02-01"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantPercent: 5,
		},
		{
			name: "equal effective dates break ties by latest creation time",
			records: []models.SurchargeSetting{
				setting("", 5, "2024-03-01", "2024-03-01"),
				setting("", 7, "2024-03-01", "2024-03-02"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantPercent: 7,
		},
		{
			name: "account specific record beats global default",
			records: []models.SurchargeSetting{
				setting("", 10, "2024-01-01", "2024-01-01"),
				setting("ACME", 6, "2024-01-01", "2024-01-01"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantPercent: 6,
		},
		{
			name: "falls back to global when account record is not yet effective",
			records: []models.SurchargeSetting{
				setting("", 10, "2024-01-01", "2024-01-01"),
				setting("ACME", 6, "2024-06-01", "2024-01-01"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantPercent: 10,
		},
		{
			name:        "no applicable setting is an error, never a silent zero",
			records:     nil,
			account:     "ACME",
			billingDate: "2024-04-15",
			wantErr:     billingerr.ErrNoApplicableSetting,
		},
		{
			name: "all settings in the future",
			records: []models.SurchargeSetting{
				setting("", 10, "2030-01-01", "2024-01-01"),
			},
			account:     "ACME",
			billingDate: "2024-04-15",
			wantErr:     billingerr.ErrNoApplicableSetting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockZoneStore{}, &mockSurchargeStore{records: tt.records}, zap.NewNop())
			percent, err := svc.Resolve(context.Background(), models.SurchargeFuel, tt.account, "express", day(tt.billingDate))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, percent.Equal(decimal.NewFromFloat(tt.wantPercent)),
				"expected %v, got %s", tt.wantPercent, percent)
		})
	}
}
