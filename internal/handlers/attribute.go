// internal/handlers/attribute.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veloxcommerce/catalog-backend/internal/services"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

type AttributeHandler struct {
	attributeService *services.AttributeService
}

func NewAttributeHandler(attributeService *services.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

// GET /attributes
func (h *AttributeHandler) GetAttributes(c *gin.Context) {
	attributes, err := h.attributeService.FindAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, attributes)
}

// GET /attributes/:id
func (h *AttributeHandler) GetAttribute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid attribute ID", nil)
		return
	}

	attribute, err := h.attributeService.FindOne(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, attribute)
}

// POST /attributes
func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var req services.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	attribute, err := h.attributeService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, attribute)
}

// PUT /attributes/:id
func (h *AttributeHandler) UpdateAttribute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid attribute ID", nil)
		return
	}

	var req services.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	attribute, err := h.attributeService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, attribute)
}

// GET /products/:id/attributes
func (h *AttributeHandler) GetProductAttributes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	values, err := h.attributeService.GetProductValues(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, values)
}

// PUT /products/:id/attributes/:attributeId
func (h *AttributeHandler) SetProductAttribute(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	attributeID, err := uuid.Parse(c.Param("attributeId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid attribute ID", nil)
		return
	}

	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	value, err := h.attributeService.SetProductValue(productID, attributeID, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, value)
}
