package rating

import (
	"sort"
	"time"

	"courier-billing-backend/internal/models"
)

// settingIndex answers "latest setting effective on or before a date" for one
// (account, service, kind) key. Records are kept sorted by effective date,
// then creation time, so ties on effective date resolve to the most recently
// created record.
type settingIndex struct {
	records []models.SurchargeSetting
}

func newSettingIndex(records []models.SurchargeSetting) *settingIndex {
	sorted := make([]models.SurchargeSetting, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].EffectiveDate.Equal(sorted[j].EffectiveDate) {
			return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return &settingIndex{records: sorted}
}

// latest returns the authoritative record for the billing date, or nil when
// no record is effective yet.
func (idx *settingIndex) latest(billingDate time.Time) *models.SurchargeSetting {
	// First record with EffectiveDate > billingDate; everything before it
	// qualifies, and the slice ordering makes the last qualifier the winner.
	i := sort.Search(len(idx.records), func(i int) bool {
		return idx.records[i].EffectiveDate.After(billingDate)
	})
	if i == 0 {
		return nil
	}
	return &idx.records[i-1]
}
