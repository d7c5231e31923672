package api

import (
	"errors"
	"net/http"

	reqdto "couponbot/internal/handler/dto/request"
	"couponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	orderUseCase commands.OrderCommands
}

func NewPaymentHandler(orderUseCase commands.OrderCommands) *PaymentHandler {
	return &PaymentHandler{
		orderUseCase: orderUseCase,
	}
}

// @Summary Payment callback
// @Description Gateway redirect after checkout; verifies the signature and completes the order
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentCallbackRequest true "Callback payload"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payment/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid callback payload",
		})
		return
	}

	view, err := h.orderUseCase.ConfirmPayment(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSignatureInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Signature verification failed",
			})
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
