//go:build unit || e2e

package builder

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	reqdto "couponbot/internal/handler/dto/request"
)

type OrderBuilder struct {
	ExternalID string
	Amount     int64
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ExternalID: "tg-100001",
		Amount:     500,
	}
}

func (o *OrderBuilder) WithExternalID(externalID string) *OrderBuilder {
	o.ExternalID = externalID
	return o
}

func (o *OrderBuilder) WithAmount(amount int64) *OrderBuilder {
	o.Amount = amount
	return o
}

func (o *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		ExternalID: o.ExternalID,
		Amount:     o.Amount,
	}
}

// CallbackBuilder assembles a post-payment callback with a signature the
// server will accept, computed independently of the production code.
type CallbackBuilder struct {
	OrderRef  string
	PaymentID string
	Secret    string
}

func NewCallbackBuilder(orderRef, secret string) *CallbackBuilder {
	return &CallbackBuilder{
		OrderRef:  orderRef,
		PaymentID: "pay_test001",
		Secret:    secret,
	}
}

func (c *CallbackBuilder) WithPaymentID(paymentID string) *CallbackBuilder {
	c.PaymentID = paymentID
	return c
}

func (c *CallbackBuilder) BuildDTO() reqdto.PaymentCallbackRequest {
	return reqdto.PaymentCallbackRequest{
		OrderRef:  c.OrderRef,
		PaymentID: c.PaymentID,
		Signature: c.Sign(),
	}
}

func (c *CallbackBuilder) Sign() string {
	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(c.OrderRef + "|" + c.PaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
