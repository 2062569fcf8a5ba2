package handler

import (
	"time"

	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/repository"
	"courier-billing-backend/internal/services/rating"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogHandler covers the rate card and surcharge settings: zones,
// fuel/tax time series, and run entries.
type CatalogHandler struct {
	zones      *repository.ZoneRepository
	surcharges *repository.SurchargeRepository
	runs       *repository.RunEntryRepository
	rater      *rating.Service
}

func NewCatalogHandler(
	zones *repository.ZoneRepository,
	surcharges *repository.SurchargeRepository,
	runs *repository.RunEntryRepository,
	rater *rating.Service,
) *CatalogHandler {
	return &CatalogHandler{zones: zones, surcharges: surcharges, runs: runs, rater: rater}
}

func (h *CatalogHandler) ListZones(c *gin.Context) {
	zones, err := h.zones.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, zones)
}

func (h *CatalogHandler) ListZonesBySector(c *gin.Context) {
	zones, err := h.zones.ListBySector(c.Request.Context(), c.Param("sector"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, zones)
}

func (h *CatalogHandler) CreateZone(c *gin.Context) {
	var payload struct {
		Sector          string          `json:"sector"`
		DestinationZone string          `json:"destination_zone"`
		RatePerKg       decimal.Decimal `json:"rate_per_kg"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if payload.Sector == "" || payload.DestinationZone == "" {
		badRequest(c, "sector and destination_zone are required")
		return
	}

	zone := &models.Zone{
		ID:              uuid.New(),
		Sector:          payload.Sector,
		DestinationZone: payload.DestinationZone,
		RatePerKg:       payload.RatePerKg,
		CreatedAt:       time.Now(),
	}
	if err := h.zones.Create(c.Request.Context(), zone); err != nil {
		respondError(c, err)
		return
	}
	// Rate card changed; drop the short-TTL cache.
	h.rater.InvalidateRates()
	respondOK(c, zone)
}

func (h *CatalogHandler) listSettings(c *gin.Context, kind models.SurchargeKind) {
	settings, err := h.surcharges.List(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, settings)
}

func (h *CatalogHandler) createSetting(c *gin.Context, kind models.SurchargeKind) {
	var payload struct {
		AccountCode   string          `json:"account_code"`
		Service       string          `json:"service"`
		Percent       decimal.Decimal `json:"percent"`
		EffectiveDate string          `json:"effective_date"` // yyyy-mm-dd
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	effective, err := time.Parse("2006-01-02", payload.EffectiveDate)
	if err != nil {
		badRequest(c, "invalid effective_date, expected yyyy-mm-dd")
		return
	}
	if payload.Service == "" {
		badRequest(c, "service is required")
		return
	}

	setting := &models.SurchargeSetting{
		ID:            uuid.New(),
		Kind:          kind,
		AccountCode:   payload.AccountCode,
		Service:       payload.Service,
		Percent:       payload.Percent,
		EffectiveDate: effective,
		CreatedAt:     time.Now(),
	}
	if err := h.surcharges.Create(c.Request.Context(), setting); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, setting)
}

func (h *CatalogHandler) ListFuelSettings(c *gin.Context)  { h.listSettings(c, models.SurchargeFuel) }
func (h *CatalogHandler) CreateFuelSetting(c *gin.Context) { h.createSetting(c, models.SurchargeFuel) }
func (h *CatalogHandler) ListTaxSettings(c *gin.Context)   { h.listSettings(c, models.SurchargeTax) }
func (h *CatalogHandler) CreateTaxSetting(c *gin.Context)  { h.createSetting(c, models.SurchargeTax) }

func (h *CatalogHandler) ListRuns(c *gin.Context) {
	runs, err := h.runs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, runs)
}

func (h *CatalogHandler) CreateRun(c *gin.Context) {
	var payload struct {
		RunNo   string `json:"run_no"`
		Route   string `json:"route"`
		RunDate string `json:"run_date"` // yyyy-mm-dd
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	runDate, err := time.Parse("2006-01-02", payload.RunDate)
	if err != nil {
		badRequest(c, "invalid run_date, expected yyyy-mm-dd")
		return
	}

	run := &models.RunEntry{
		ID:        uuid.New(),
		RunNo:     payload.RunNo,
		Route:     payload.Route,
		RunDate:   runDate,
		CreatedAt: time.Now(),
	}
	if err := h.runs.Create(c.Request.Context(), run); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, run)
}
