package response

import (
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"
)

type CreateOrderResponse struct {
	Order       *queries.OrderView `json:"order"`
	CheckoutURL string             `json:"checkoutUrl"`
}

func NewCreateOrderResponse(result *commands.CreateOrderResult) CreateOrderResponse {
	return CreateOrderResponse{
		Order:       result.Order,
		CheckoutURL: result.CheckoutURL,
	}
}

// CheckoutResponse adds the public gateway key the hosted page needs to
// open the payment widget.
type CheckoutResponse struct {
	*queries.CheckoutView
	GatewayKeyID string `json:"gatewayKeyId"`
}

type RedeemResponse struct {
	Valid  bool                   `json:"valid"`
	Result *commands.RedeemResult `json:"result"`
}
