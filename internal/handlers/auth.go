// internal/handlers/auth.go
package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veloxcommerce/catalog-backend/internal/services"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// AuthHandler forwards authentication traffic to the external identity
// service and relays its responses verbatim, status code included.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	h.proxy(c, h.authService.Login)
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	h.proxy(c, h.authService.Register)
}

// GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	result, err := h.authService.GetProfile(parts[1])
	if err != nil {
		utils.ErrorResponse(c, 502, "IDENTITY_UNAVAILABLE", err.Error(), nil)
		return
	}

	c.Data(result.StatusCode, "application/json", result.Body)
}

func (h *AuthHandler) proxy(c *gin.Context, forward func([]byte) (*services.ProxyResult, error)) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	result, err := forward(body)
	if err != nil {
		utils.ErrorResponse(c, 502, "IDENTITY_UNAVAILABLE", err.Error(), nil)
		return
	}

	c.Data(result.StatusCode, "application/json", result.Body)
}
