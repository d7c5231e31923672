package api

import (
	"errors"
	"net/http"

	"couponbot/internal/domain/merchant"
	reqdto "couponbot/internal/handler/dto/request"
	"couponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authUseCase     commands.AuthCommands
	merchantUseCase commands.MerchantCommands
}

func NewAdminHandler(authUseCase commands.AuthCommands, merchantUseCase commands.MerchantCommands) *AdminHandler {
	return &AdminHandler{
		authUseCase:     authUseCase,
		merchantUseCase: merchantUseCase,
	}
}

// @Summary Admin login
// @Description Login with username and password
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} commands.LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, commands.ErrAuthenticationFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Provision merchant
// @Description Create a merchant and return its credentials; the secret is shown exactly once
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ProvisionMerchantRequest true "Merchant request"
// @Success 201 {object} commands.ProvisionMerchantResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/merchants [post]
func (h *AdminHandler) ProvisionMerchant(c *gin.Context) {
	var req reqdto.ProvisionMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.merchantUseCase.Provision(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, merchant.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Merchant name is required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}
