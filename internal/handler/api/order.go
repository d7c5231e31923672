package api

import (
	"errors"
	"net/http"

	"couponbot/internal/domain/order"
	reqdto "couponbot/internal/handler/dto/request"
	resdto "couponbot/internal/handler/dto/response"
	"couponbot/internal/pkg/config"
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderUseCase commands.OrderCommands
	orderQueries *queries.OrderQueries
	gatewayCfg   config.RazorpayConfig
}

func NewOrderHandler(orderUseCase commands.OrderCommands, orderQueries *queries.OrderQueries, gatewayCfg config.RazorpayConfig) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		orderQueries: orderQueries,
		gatewayCfg:   gatewayCfg,
	}
}

// @Summary Create order
// @Description Create a pending order and a hosted checkout for it
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.CreateOrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.orderUseCase.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Amount must be a positive whole number",
			})
		case errors.Is(err, commands.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
		case errors.Is(err, commands.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewCreateOrderResponse(result))
}

// @Summary Get order
// @Description Fetch one order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order id",
		})
		return
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Checkout view
// @Description Data backing the hosted checkout page for a pending order
// @Tags orders
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /checkout/{orderId} [get]
func (h *OrderHandler) GetCheckout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order id",
		})
		return
	}

	view, err := h.orderQueries.GetCheckout(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CheckoutResponse{
		CheckoutView: view,
		GatewayKeyID: h.gatewayCfg.KeyID,
	})
}

// @Summary Expire order
// @Description Force-expire a non-terminal order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} queries.OrderView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/expire [post]
func (h *OrderHandler) Expire(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order id",
		})
		return
	}

	view, err := h.orderUseCase.Expire(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrOrderNotExpirable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is already in a terminal state",
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
