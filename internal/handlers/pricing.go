// internal/handlers/pricing.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veloxcommerce/catalog-backend/internal/services"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// GET /pricing/product/:productId
func (h *PricingHandler) GetHistory(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	history, err := h.pricingService.ListHistory(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, history)
}

// GET /pricing/product/:productId/current
//
// An optional as_of query parameter (RFC 3339) resolves the price at an
// arbitrary instant; it defaults to now.
func (h *PricingHandler) GetCurrentPrice(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	asOf := time.Now()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		parsed, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid as_of timestamp", nil)
			return
		}
		asOf = parsed
	}

	pricing, err := h.pricingService.ResolveCurrentPrice(productID, asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, pricing)
}

// POST /pricing
func (h *PricingHandler) UpsertPricing(c *gin.Context) {
	var req services.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	pricing, err := h.pricingService.Upsert(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, pricing)
}

// DELETE /pricing/:id
func (h *PricingHandler) DeletePricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pricing ID", nil)
		return
	}

	if err := h.pricingService.Remove(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}
