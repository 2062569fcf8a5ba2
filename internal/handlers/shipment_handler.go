package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShipmentHandler struct {
	shipments *repository.ShipmentRepository
	manifests *repository.ManifestRepository
}

func NewShipmentHandler(shipments *repository.ShipmentRepository, manifests *repository.ManifestRepository) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments, manifests: manifests}
}

func (h *ShipmentHandler) List(c *gin.Context) {
	if code := c.Query("account_code"); code != "" {
		shipments, err := h.shipments.ListByAccount(c.Request.Context(), code)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, shipments)
		return
	}
	shipments, err := h.shipments.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, shipments)
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	shipment, err := h.shipments.GetByAWB(c.Request.Context(), c.Param("awb"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, shipment)
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	var payload struct {
		AWB             string          `json:"awb"`
		AccountCode     string          `json:"account_code"`
		Origin          string          `json:"origin"`
		Sector          string          `json:"sector"`
		DestinationZone string          `json:"destination_zone"`
		Service         string          `json:"service"`
		DeclaredWeight  decimal.Decimal `json:"declared_weight"`
		ShipmentDate    string          `json:"shipment_date"` // yyyy-mm-dd
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if payload.AWB == "" || payload.AccountCode == "" || payload.Sector == "" {
		badRequest(c, "awb, account_code and sector are required")
		return
	}
	shipmentDate, err := time.Parse("2006-01-02", payload.ShipmentDate)
	if err != nil {
		badRequest(c, "invalid shipment_date, expected yyyy-mm-dd")
		return
	}

	shipment := &models.Shipment{
		ID:              uuid.New(),
		AWB:             payload.AWB,
		AccountCode:     payload.AccountCode,
		Origin:          payload.Origin,
		Sector:          payload.Sector,
		DestinationZone: payload.DestinationZone,
		Service:         payload.Service,
		DeclaredWeight:  payload.DeclaredWeight,
		ShipmentDate:    shipmentDate,
		CreatedAt:       time.Now(),
	}
	if err := h.shipments.Create(c.Request.Context(), shipment); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, shipment)
}

func (h *ShipmentHandler) ListManifests(c *gin.Context) {
	manifests, err := h.manifests.List(c.Request.Context(), c.Query("account_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, manifests)
}

func (h *ShipmentHandler) CreateManifest(c *gin.Context) {
	var payload struct {
		ManifestNo  string   `json:"manifest_no"`
		AccountCode string   `json:"account_code"`
		AWBs        []string `json:"awbs"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if payload.ManifestNo == "" || payload.AccountCode == "" {
		badRequest(c, "manifest_no and account_code are required")
		return
	}

	awbsJSON, err := json.Marshal(payload.AWBs)
	if err != nil {
		respondError(c, err)
		return
	}
	manifest := &models.Manifest{
		ID:          uuid.New(),
		ManifestNo:  payload.ManifestNo,
		AccountCode: payload.AccountCode,
		Status:      models.ManifestActive,
		AWBs:        awbsJSON,
		CreatedAt:   time.Now(),
	}
	if err := h.manifests.Create(c.Request.Context(), manifest); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, manifest)
}

func (h *ShipmentHandler) CloseManifest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid manifest ID")
		return
	}
	if err := h.manifests.Close(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrManifestNotActive) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"manifest_id": id, "status": models.ManifestClosed})
}
