package api

import (
	"errors"
	"net/http"

	"couponbot/internal/domain/account"
	reqdto "couponbot/internal/handler/dto/request"
	resdto "couponbot/internal/handler/dto/response"
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase commands.AccountCommands
	accountQueries *queries.AccountQueries
	orderQueries   *queries.OrderQueries
}

func NewAccountHandler(
	accountUseCase commands.AccountCommands,
	accountQueries *queries.AccountQueries,
	orderQueries *queries.OrderQueries,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		accountQueries: accountQueries,
		orderQueries:   orderQueries,
	}
}

// @Summary Register account
// @Description Register a buyer account on first contact; idempotent per external id
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterAccountRequest true "Register request"
// @Success 201 {object} resdto.AccountResponse
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req reqdto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.accountUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmptyExternalID):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "External id is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.NewAccountResponse(snap))
}

// @Summary Set account email
// @Description Store the buyer's email and move the conversation to idle
// @Tags accounts
// @Accept json
// @Produce json
// @Param externalId path string true "External id"
// @Param request body reqdto.SetEmailRequest true "Email request"
// @Success 200 {object} resdto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{externalId}/email [put]
func (h *AccountHandler) SetEmail(c *gin.Context) {
	var req reqdto.SetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.accountUseCase.SetEmail(c.Request.Context(), c.Param("externalId"), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid email address",
			})
		case errors.Is(err, commands.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewAccountResponse(snap))
}

// @Summary Begin amount entry
// @Description Move the conversation to awaiting_amount so the next message is read as a coupon amount
// @Tags accounts
// @Produce json
// @Param externalId path string true "External id"
// @Success 200 {object} resdto.AccountResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /accounts/{externalId}/awaiting-amount [post]
func (h *AccountHandler) BeginAmountEntry(c *gin.Context) {
	snap, err := h.accountUseCase.BeginAmountEntry(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
		case errors.Is(err, commands.ErrEmailRequired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Email must be set before entering an amount",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewAccountResponse(snap))
}

// @Summary List account orders
// @Description List all orders placed by an account, newest first
// @Tags accounts
// @Produce json
// @Param externalId path string true "External id"
// @Success 200 {object} queries.AccountOrdersView
// @Failure 404 {object} map[string]string
// @Router /accounts/{externalId}/orders [get]
func (h *AccountHandler) ListOrders(c *gin.Context) {
	acct, err := h.accountQueries.GetByExternalID(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		if errors.Is(err, queries.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.orderQueries.ListByAccount(c.Request.Context(), acct.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
