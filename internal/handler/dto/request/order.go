package request

import "couponbot/internal/usecase/commands"

type CreateOrderRequest struct {
	ExternalID string `json:"externalId" binding:"required"`
	Amount     int64  `json:"amount" binding:"required"`
}

func (r *CreateOrderRequest) ToInput() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		ExternalID: r.ExternalID,
		Amount:     r.Amount,
	}
}

// PaymentCallbackRequest mirrors the field names the gateway posts back
// after a checkout completes. Both form and JSON submissions occur.
type PaymentCallbackRequest struct {
	OrderRef  string `json:"razorpay_order_id" form:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" form:"razorpay_signature" binding:"required"`
}

func (r *PaymentCallbackRequest) ToInput() commands.ConfirmPaymentInput {
	return commands.ConfirmPaymentInput{
		OrderRef:  r.OrderRef,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
	}
}

type RedeemRequest struct {
	CouponCode   string  `json:"couponCode" binding:"required"`
	CustomerInfo *string `json:"customerInfo"`
}
