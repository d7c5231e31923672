//go:build e2e

package coupon_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"couponbot/internal/usecase/queries"
	"couponbot/tests/common/authtest"
	"couponbot/tests/common/builder"
	"couponbot/tests/common/httptest"
	"couponbot/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	accountsURL    = "/api/accounts"
	ordersURL      = "/api/orders"
	callbackURL    = "/payment/callback"
	redeemURL      = "/api/merchant/redeem"
	merchantsURL   = "/api/admin/merchants"
	setEmailURL    = "/api/accounts/%s/email"
	accountOrders  = "/api/accounts/%s/orders"
	awaitAmountURL = "/api/accounts/%s/awaiting-amount"
)

type CouponSuite struct {
	e2e.SharedSuite
}

func (s *CouponSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCouponSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CouponSuite))
}

type createOrderResponse struct {
	Order       queries.OrderView `json:"order"`
	CheckoutURL string            `json:"checkoutUrl"`
}

type provisionedMerchant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"publicKey"`
	Secret    string    `json:"secret"`
}

func (s *CouponSuite) registerBuyer(externalID, email string) {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, accountsURL,
		builder.NewAccountBuilder().WithExternalID(externalID).BuildRegisterDTO(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(setEmailURL, externalID),
		builder.NewAccountBuilder().WithEmail(email).BuildSetEmailDTO(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *CouponSuite) createOrder(externalID string, amount int64) createOrderResponse {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL,
		builder.NewOrderBuilder().WithExternalID(externalID).WithAmount(amount).BuildCreateRequestDTO(), "")

	var created createOrderResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.NotNil(t, created.Order.PaymentRef, "order should carry the gateway reference")
	return created
}

func (s *CouponSuite) confirmPayment(paymentRef string) queries.OrderView {
	t := s.T()

	dto := builder.NewCallbackBuilder(paymentRef, s.Config.Razorpay.KeySecret).BuildDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, callbackURL, dto, "")

	var view queries.OrderView
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
	return view
}

func (s *CouponSuite) provisionMerchant(name string) provisionedMerchant {
	t := s.T()

	token := authtest.LoginAdmin(t, s.Router, "root", "password123")
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, merchantsURL,
		map[string]string{"name": name}, token)

	var m provisionedMerchant
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &m)
	require.True(t, strings.HasPrefix(m.PublicKey, "mk_"), "public key should carry the mk_ prefix")
	require.NotEmpty(t, m.Secret, "the secret is returned exactly once, at provisioning")
	return m
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *CouponSuite) redeem(m provisionedMerchant, couponCode string) *nethttptest.ResponseRecorder {
	t := s.T()

	body, err := json.Marshal(map[string]string{"couponCode": couponCode})
	require.NoError(t, err)
	return httptest.PerformSignedRequest(t, s.Router, http.MethodPost, redeemURL, body, m.PublicKey, signBody(m.Secret, body))
}

// =============================================================================
// TestPurchaseLifecycle - register, buy, confirm, redeem
// =============================================================================

func (s *CouponSuite) TestPurchaseLifecycle() {
	s.Run("Normal case: full flow from registration to redemption", func() {
		t := s.T()

		s.registerBuyer("tg-500100", "lifecycle@example.com")
		created := s.createOrder("tg-500100", 750)
		require.Equal(t, "pending", created.Order.Status)
		require.Contains(t, created.CheckoutURL, created.Order.ID.String())

		// checkout page data carries the public gateway key
		w0 := httptest.PerformRequest(t, s.Router, http.MethodGet, "/checkout/"+created.Order.ID.String(), nil, "")
		var checkout struct {
			PaymentRef   string `json:"paymentRef"`
			Amount       int64  `json:"amount"`
			GatewayKeyID string `json:"gatewayKeyId"`
		}
		httptest.AssertSuccessResponse(t, w0, http.StatusOK, &checkout)
		require.Equal(t, *created.Order.PaymentRef, checkout.PaymentRef)
		require.Equal(t, s.Config.Razorpay.KeyID, checkout.GatewayKeyID)

		confirmed := s.confirmPayment(*created.Order.PaymentRef)
		require.Equal(t, "completed", confirmed.Status)
		require.NotNil(t, confirmed.CouponCode)
		require.True(t, strings.HasPrefix(*confirmed.CouponCode, "COUPON-"))

		merchant := s.provisionMerchant("Chai Stall")
		w := s.redeem(merchant, *confirmed.CouponCode)

		var redeemed struct {
			Valid  bool `json:"valid"`
			Result struct {
				OrderID    uuid.UUID `json:"orderId"`
				CouponCode string    `json:"couponCode"`
				Amount     int64     `json:"amount"`
				RedeemedAt time.Time `json:"redeemedAt"`
			} `json:"result"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &redeemed)
		require.True(t, redeemed.Valid)
		require.Equal(t, created.Order.ID, redeemed.Result.OrderID)
		require.Equal(t, int64(750), redeemed.Result.Amount)

		// final state is visible on the order itself
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+created.Order.ID.String(), nil, "")
		var final queries.OrderView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &final)
		require.Equal(t, "redeemed", final.Status)
		require.NotNil(t, final.RedeemedBy)
		require.Equal(t, merchant.ID, *final.RedeemedBy)
	})

	s.Run("Normal case: replayed callback is idempotent and keeps the coupon", func() {
		t := s.T()

		s.registerBuyer("tg-500101", "replay@example.com")
		created := s.createOrder("tg-500101", 200)

		first := s.confirmPayment(*created.Order.PaymentRef)
		second := s.confirmPayment(*created.Order.PaymentRef)

		if diff := cmp.Diff(first, second, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("replayed callback changed the order view (-first +second):\n%s", diff)
		}
		require.NotNil(t, second.CouponCode)
		require.Equal(t, *first.CouponCode, *second.CouponCode)
	})

	s.Run("Error case: second redemption of the same coupon is rejected", func() {
		t := s.T()

		s.registerBuyer("tg-500102", "double@example.com")
		created := s.createOrder("tg-500102", 300)
		confirmed := s.confirmPayment(*created.Order.PaymentRef)

		merchant := s.provisionMerchant("Dosa Corner")
		w := s.redeem(merchant, *confirmed.CouponCode)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.redeem(merchant, *confirmed.CouponCode)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already been redeemed")
	})

	s.Run("Error case: a pending order cannot be redeemed", func() {
		t := s.T()

		s.registerBuyer("tg-500103", "pending@example.com")
		s.createOrder("tg-500103", 450)

		merchant := s.provisionMerchant("Juice Bar")
		w := s.redeem(merchant, "COUPON-AAAA11112222")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Coupon not found")
	})
}

// =============================================================================
// TestSignatureGates - HMAC verification on both inbound surfaces
// =============================================================================

func (s *CouponSuite) TestSignatureGates() {
	s.Run("Error case: tampered gateway signature leaves the order pending", func() {
		t := s.T()

		s.registerBuyer("tg-500200", "tamper@example.com")
		created := s.createOrder("tg-500200", 500)

		dto := builder.NewCallbackBuilder(*created.Order.PaymentRef, "wrong-secret").BuildDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, callbackURL, dto, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Signature verification failed")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+created.Order.ID.String(), nil, "")
		var view queries.OrderView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "pending", view.Status)
		require.Nil(t, view.CouponCode)
	})

	s.Run("Error case: unknown merchant key and bad signature are indistinguishable", func() {
		t := s.T()

		s.registerBuyer("tg-500201", "uniform@example.com")
		created := s.createOrder("tg-500201", 500)
		confirmed := s.confirmPayment(*created.Order.PaymentRef)

		merchant := s.provisionMerchant("Tea House")
		body, err := json.Marshal(map[string]string{"couponCode": *confirmed.CouponCode})
		require.NoError(t, err)

		unknownKey := httptest.PerformSignedRequest(t, s.Router, http.MethodPost, redeemURL,
			body, "mk_doesnotexist", signBody(merchant.Secret, body))
		badSig := httptest.PerformSignedRequest(t, s.Router, http.MethodPost, redeemURL,
			body, merchant.PublicKey, signBody("not-the-secret", body))

		require.Equal(t, http.StatusUnauthorized, unknownKey.Code)
		require.Equal(t, http.StatusUnauthorized, badSig.Code)
		require.Equal(t, unknownKey.Body.String(), badSig.Body.String(),
			"the two failure modes must not be distinguishable")
	})

	s.Run("Error case: signature over different bytes is rejected", func() {
		t := s.T()

		s.registerBuyer("tg-500202", "bytes@example.com")
		created := s.createOrder("tg-500202", 500)
		confirmed := s.confirmPayment(*created.Order.PaymentRef)

		merchant := s.provisionMerchant("Snack Cart")
		signed, err := json.Marshal(map[string]string{"couponCode": *confirmed.CouponCode})
		require.NoError(t, err)
		sent := append([]byte(nil), signed...)
		sent[len(sent)-2] = 'X' // mutate one byte after signing

		w := httptest.PerformSignedRequest(t, s.Router, http.MethodPost, redeemURL,
			sent, merchant.PublicKey, signBody(merchant.Secret, signed))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestExpireOrder - admin expiry endpoint
// =============================================================================

func (s *CouponSuite) TestExpireOrder() {
	s.Run("Normal case: admin can expire a pending order", func() {
		t := s.T()

		s.registerBuyer("tg-500300", "expire@example.com")
		created := s.createOrder("tg-500300", 500)

		token := authtest.LoginAdmin(t, s.Router, "root", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			ordersURL+"/"+created.Order.ID.String()+"/expire", nil, token)

		var view queries.OrderView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "expired", view.Status)

		// expiring again hits a terminal state
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			ordersURL+"/"+created.Order.ID.String()+"/expire", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "terminal state")
	})

	s.Run("Error case: expiry requires an admin token", func() {
		t := s.T()

		s.registerBuyer("tg-500301", "noauth@example.com")
		created := s.createOrder("tg-500301", 500)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			ordersURL+"/"+created.Order.ID.String()+"/expire", nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: unknown order returns 404", func() {
		t := s.T()

		token := authtest.LoginAdmin(t, s.Router, "root", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			ordersURL+"/"+uuid.New().String()+"/expire", nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestAccountConversation - registration and conversation state
// =============================================================================

func (s *CouponSuite) TestAccountConversation() {
	s.Run("Normal case: repeated registration is idempotent", func() {
		t := s.T()

		dto := builder.NewAccountBuilder().WithExternalID("tg-500400").BuildRegisterDTO()
		first := httptest.PerformRequest(t, s.Router, http.MethodPost, accountsURL, dto, "")
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, accountsURL, dto, "")
		require.Equal(t, http.StatusCreated, second.Code)

		var a, b struct {
			ID uuid.UUID `json:"id"`
		}
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &a)
		httptest.AssertSuccessResponse(t, second, http.StatusCreated, &b)
		require.Equal(t, a.ID, b.ID, "same external id must map to one account")
	})

	s.Run("Error case: amount entry requires an email on file", func() {
		t := s.T()

		dto := builder.NewAccountBuilder().WithExternalID("tg-500401").BuildRegisterDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, accountsURL, dto, "")
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(awaitAmountURL, "tg-500401"), nil, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Normal case: creating an order lands the conversation back on idle", func() {
		t := s.T()

		s.registerBuyer("tg-500402", "state@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(awaitAmountURL, "tg-500402"), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		s.createOrder("tg-500402", 500)

		var state string
		err := s.DB.QueryRow(t.Context(),
			"SELECT conversation_state FROM accounts WHERE external_id = $1", "tg-500402").Scan(&state)
		require.NoError(t, err)
		require.Equal(t, "idle", state)
	})

	s.Run("Normal case: order history lists newest first", func() {
		t := s.T()

		s.registerBuyer("tg-500403", "history@example.com")
		first := s.createOrder("tg-500403", 100)
		second := s.createOrder("tg-500403", 200)
		s.confirmPayment(*second.Order.PaymentRef)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(accountOrders, "tg-500403"), nil, "")

		var list struct {
			Orders []queries.OrderView `json:"orders"`
			Total  int                 `json:"total"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Equal(t, 2, list.Total)
		require.Len(t, list.Orders, 2)
		require.Equal(t, second.Order.ID, list.Orders[0].ID)
		require.Equal(t, first.Order.ID, list.Orders[1].ID)
		require.Equal(t, "completed", list.Orders[0].Status)
	})
}
