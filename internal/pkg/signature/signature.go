// Package signature implements the two HMAC checks guarding payment
// confirmation and merchant redemption, plus the outbound webhook token.
// All comparisons are constant time.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

func computeHex(secret string, message []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentCallback checks a gateway callback signature. The gateway
// signs "orderRef|paymentID" with the account secret and sends the hex
// digest alongside the callback.
func VerifyPaymentCallback(secret, orderRef, paymentID, provided string) bool {
	expected := computeHex(secret, []byte(orderRef+"|"+paymentID))
	return hmac.Equal([]byte(expected), []byte(provided))
}

// VerifyBody checks a merchant-asserted hash over the exact raw request
// body bytes against the merchant's shared secret.
func VerifyBody(secret string, body []byte, provided string) bool {
	expected := computeHex(secret, body)
	return hmac.Equal([]byte(expected), []byte(provided))
}

// WebhookToken produces the token sent with redemption webhooks:
// the merchant secret keyed over the decimal order amount.
func WebhookToken(secret string, amount int64) string {
	return computeHex(secret, []byte(strconv.FormatInt(amount, 10)))
}
