package rating

import (
	"context"
	"sync"
	"time"

	"courier-billing-backend/internal/billingerr"
	"courier-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ZoneStore is the read side of the zone rate card.
type ZoneStore interface {
	GetRate(ctx context.Context, sector, destinationZone string) (decimal.Decimal, error)
}

// SurchargeStore lists the surcharge time series for one key. Returns the
// account-specific records plus the global ("") defaults.
type SurchargeStore interface {
	ListFor(ctx context.Context, kind models.SurchargeKind, accountCode, service string) ([]models.SurchargeSetting, error)
}

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// Service resolves base rates and time-effective surcharges. Zone rates are
// read-mostly and cached with a short TTL; surcharge settings are read fresh
// per resolution since the set per key is small.
type Service struct {
	zones      ZoneStore
	surcharges SurchargeStore
	log        *zap.Logger

	rateTTL   time.Duration
	rateCache sync.Map // "sector|zone" -> cachedRate
}

func NewService(zones ZoneStore, surcharges SurchargeStore, log *zap.Logger) *Service {
	return &Service{
		zones:      zones,
		surcharges: surcharges,
		log:        log.Named("rating"),
		rateTTL:    30 * time.Second,
	}
}

// LookupRate resolves the base rate per kg for a (sector, destination zone)
// pair. Pure lookup, no side effects beyond the cache.
func (s *Service) LookupRate(ctx context.Context, sector, destinationZone string) (decimal.Decimal, error) {
	key := sector + "|" + destinationZone
	if val, ok := s.rateCache.Load(key); ok {
		cached := val.(cachedRate)
		if time.Since(cached.fetchedAt) < s.rateTTL {
			return cached.rate, nil
		}
	}

	rate, err := s.zones.GetRate(ctx, sector, destinationZone)
	if err != nil {
		return decimal.Zero, err
	}
	s.rateCache.Store(key, cachedRate{rate: rate, fetchedAt: time.Now()})
	return rate, nil
}

// InvalidateRates drops the zone cache after a rate card write.
func (s *Service) InvalidateRates() {
	s.rateCache.Range(func(key, _ interface{}) bool {
		s.rateCache.Delete(key)
		return true
	})
}

// Resolve picks the surcharge percent effective on the billing date.
// Account-specific records beat global defaults; within a set, the latest
// effective date not after the billing date wins, ties broken by creation
// time. No record means ErrNoApplicableSetting; the caller decides policy,
// never a silent zero.
func (s *Service) Resolve(ctx context.Context, kind models.SurchargeKind, accountCode, service string, billingDate time.Time) (decimal.Decimal, error) {
	records, err := s.surcharges.ListFor(ctx, kind, accountCode, service)
	if err != nil {
		return decimal.Zero, err
	}

	var specific, global []models.SurchargeSetting
	for _, rec := range records {
		if rec.AccountCode == accountCode && accountCode != "" {
			specific = append(specific, rec)
		} else if rec.AccountCode == "" {
			global = append(global, rec)
		}
	}

	if hit := newSettingIndex(specific).latest(billingDate); hit != nil {
		return hit.Percent, nil
	}
	if hit := newSettingIndex(global).latest(billingDate); hit != nil {
		return hit.Percent, nil
	}

	s.log.Warn("no applicable surcharge setting",
		zap.String("kind", string(kind)),
		zap.String("account", accountCode),
		zap.String("service", service),
		zap.Time("billing_date", billingDate))
	return decimal.Zero, billingerr.ErrNoApplicableSetting
}
