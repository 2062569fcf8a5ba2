package handler

import (
	"time"

	"courier-billing-backend/internal/models"
	"courier-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClubbingHandler struct {
	clubbing *repository.ClubbingRepository
}

func NewClubbingHandler(clubbing *repository.ClubbingRepository) *ClubbingHandler {
	return &ClubbingHandler{clubbing: clubbing}
}

func (h *ClubbingHandler) Create(c *gin.Context) {
	var payload struct {
		RunEntryID string          `json:"run_entry_id"`
		BagWeight  decimal.Decimal `json:"bag_weight"`
		Members    []struct {
			AWB    string          `json:"awb"`
			Weight decimal.Decimal `json:"weight"`
		} `json:"members"`
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	runID, err := uuid.Parse(payload.RunEntryID)
	if err != nil {
		badRequest(c, "invalid run_entry_id")
		return
	}
	if len(payload.Members) == 0 {
		badRequest(c, "at least one member is required")
		return
	}

	batch := &models.ClubbingBatch{
		ID:         uuid.New(),
		RunEntryID: runID,
		BagWeight:  payload.BagWeight,
		CreatedAt:  time.Now(),
	}
	for _, m := range payload.Members {
		batch.Members = append(batch.Members, models.ClubbingMember{
			ID:      uuid.New(),
			BatchID: batch.ID,
			AWB:     m.AWB,
			Weight:  m.Weight,
		})
	}
	if err := h.clubbing.CreateBatch(c.Request.Context(), batch); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, batch)
}

func (h *ClubbingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid batch ID")
		return
	}
	batch, err := h.clubbing.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, batch)
}

// UpdateWeights amends member weights on an unlocked batch; locked batches
// respond 409.
func (h *ClubbingHandler) UpdateWeights(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid batch ID")
		return
	}
	var payload struct {
		Weights map[string]decimal.Decimal `json:"weights"` // awb -> weight
	}
	if err := c.BindJSON(&payload); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	if err := h.clubbing.UpdateMemberWeights(c.Request.Context(), id, payload.Weights); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"batch_id": id, "updated": len(payload.Weights)})
}

func (h *ClubbingHandler) Lock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid batch ID")
		return
	}
	if err := h.clubbing.Lock(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"batch_id": id, "locked": true})
}
