package api

import (
	"errors"
	"net/http"

	reqdto "couponbot/internal/handler/dto/request"
	resdto "couponbot/internal/handler/dto/response"
	"couponbot/internal/handler/middleware"
	"couponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type MerchantHandler struct {
	orderUseCase commands.OrderCommands
}

func NewMerchantHandler(orderUseCase commands.OrderCommands) *MerchantHandler {
	return &MerchantHandler{
		orderUseCase: orderUseCase,
	}
}

// @Summary Redeem coupon
// @Description Burn a completed coupon on behalf of the authenticated merchant
// @Tags merchant
// @Accept json
// @Produce json
// @Param X-Api-Key header string true "Merchant public key"
// @Param X-Signature header string true "HMAC of the raw request body"
// @Param request body reqdto.RedeemRequest true "Redeem request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /merchant/redeem [post]
func (h *MerchantHandler) Redeem(c *gin.Context) {
	identity, ok := middleware.GetMerchantIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
		return
	}

	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.orderUseCase.Redeem(c.Request.Context(), commands.RedeemInput{
		Merchant:     identity,
		CouponCode:   req.CouponCode,
		CustomerInfo: req.CustomerInfo,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		case errors.Is(err, commands.ErrCouponAlreadyRedeemed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon has already been redeemed",
			})
		case errors.Is(err, commands.ErrCouponNotRedeemable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Coupon is not redeemable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.RedeemResponse{Valid: true, Result: result})
}
