package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"couponbot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	headerAPIKey    = "X-Api-Key"
	headerSignature = "X-Signature"

	ctxMerchantKey = "merchant_identity"

	maxMerchantBody = 1 << 20 // 1 MiB
)

// MerchantAuthMiddleware gates merchant endpoints behind the signature
// check. The body is consumed to verify the HMAC and restored so binding
// downstream sees the identical bytes.
type MerchantAuthMiddleware struct {
	authenticator commands.MerchantAuthenticator
}

func NewMerchantAuthMiddleware(authenticator commands.MerchantAuthenticator) *MerchantAuthMiddleware {
	return &MerchantAuthMiddleware{
		authenticator: authenticator,
	}
}

func (m *MerchantAuthMiddleware) RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMerchantBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		identity, err := m.authenticator.Authenticate(
			c.Request.Context(),
			c.GetHeader(headerAPIKey),
			body,
			c.GetHeader(headerSignature),
		)
		if err != nil {
			// One message for every failure mode; nothing to probe.
			if errors.Is(err, commands.ErrMerchantUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(ctxMerchantKey, *identity)
		c.Next()
	}
}

func GetMerchantIdentity(c *gin.Context) (commands.MerchantIdentity, bool) {
	value, exists := c.Get(ctxMerchantKey)
	if !exists {
		return commands.MerchantIdentity{}, false
	}

	identity, ok := value.(commands.MerchantIdentity)
	return identity, ok
}
