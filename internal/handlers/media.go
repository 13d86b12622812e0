// internal/handlers/media.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veloxcommerce/catalog-backend/internal/services"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// GET /products/:id/media
func (h *MediaHandler) GetProductMedia(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	media, err := h.mediaService.FindByProduct(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, media)
}

// POST /media
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	var req services.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	media, err := h.mediaService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, media)
}

// PUT /media/:id
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid media ID", nil)
		return
	}

	var req services.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	media, err := h.mediaService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, media)
}

// DELETE /media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid media ID", nil)
		return
	}

	if err := h.mediaService.Remove(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}

// PUT /media/:id/primary
func (h *MediaHandler) SetPrimaryMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid media ID", nil)
		return
	}

	media, err := h.mediaService.SetPrimary(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, media)
}
