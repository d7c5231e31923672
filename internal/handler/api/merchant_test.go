//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"couponbot/internal/handler/api"
	"couponbot/internal/handler/middleware"
	"couponbot/internal/usecase/commands"
	"couponbot/tests/common/httptest"
	mock_commands "couponbot/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// Exercises the full merchant chain: signature middleware then handler.
type MerchantHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockCtrl          *gomock.Controller
	mockCommands      *mock_commands.MockOrderCommands
	mockAuthenticator *mock_commands.MockMerchantAuthenticator
	merchantID        uuid.UUID
}

func (s *MerchantHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = mock_commands.NewMockOrderCommands(s.mockCtrl)
	s.mockAuthenticator = mock_commands.NewMockMerchantAuthenticator(s.mockCtrl)
	s.merchantID = uuid.New()

	merchantAuth := middleware.NewMerchantAuthMiddleware(s.mockAuthenticator)
	handler := api.NewMerchantHandler(s.mockCommands)

	group := s.router.Group("/api/merchant")
	group.Use(merchantAuth.RequireMerchant())
	group.POST("/redeem", handler.Redeem)
}

func (s *MerchantHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMerchantHandlerSuite(t *testing.T) {
	suite.Run(t, new(MerchantHandlerTestSuite))
}

func (s *MerchantHandlerTestSuite) identity() *commands.MerchantIdentity {
	return &commands.MerchantIdentity{
		ID:     s.merchantID,
		Name:   "Chai Stall",
		Secret: "merchant-secret",
	}
}

func (s *MerchantHandlerTestSuite) TestRedeem() {
	url := "/api/merchant/redeem"
	body, err := json.Marshal(map[string]any{"couponCode": "COUPON-AAAA111122"})
	s.Require().NoError(err)

	s.Run("success: returns 200 OK and redemption result", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "mk_key", body, "good-sig").
			Return(s.identity(), nil).Times(1)
		s.mockCommands.EXPECT().
			Redeem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, input commands.RedeemInput) (*commands.RedeemResult, error) {
				s.Equal(s.merchantID, input.Merchant.ID)
				s.Equal("COUPON-AAAA111122", input.CouponCode)
				return &commands.RedeemResult{
					OrderID:    uuid.New(),
					CouponCode: input.CouponCode,
					Amount:     500,
					RedeemedAt: time.Now(),
				}, nil
			}).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "mk_key", "good-sig")

		var response struct {
			Valid  bool `json:"valid"`
			Result struct {
				CouponCode string `json:"couponCode"`
				Amount     int64  `json:"amount"`
			} `json:"result"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Valid)
		s.Equal(int64(500), response.Result.Amount)
	})

	s.Run("error: 401 Unauthorized when signature rejected", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "mk_key", body, "bad-sig").
			Return(nil, commands.ErrMerchantUnauthorized).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "mk_key", "bad-sig")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 401 Unauthorized when headers missing", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "", body, "").
			Return(nil, commands.ErrMerchantUnauthorized).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "", "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 409 Conflict for double redemption", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "mk_key", body, "good-sig").
			Return(s.identity(), nil).Times(1)
		s.mockCommands.EXPECT().
			Redeem(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrCouponAlreadyRedeemed).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "mk_key", "good-sig")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been redeemed")
	})

	s.Run("error: 404 Not Found for unknown coupon", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "mk_key", body, "good-sig").
			Return(s.identity(), nil).Times(1)
		s.mockCommands.EXPECT().
			Redeem(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrCouponNotFound).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "mk_key", "good-sig")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})

	s.Run("middleware restores body for the handler after verification", func() {
		s.mockAuthenticator.EXPECT().
			Authenticate(gomock.Any(), "mk_key", body, "good-sig").
			Return(s.identity(), nil).Times(1)
		s.mockCommands.EXPECT().
			Redeem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, input commands.RedeemInput) (*commands.RedeemResult, error) {
				// binding only works if the middleware put the bytes back
				s.Equal("COUPON-AAAA111122", input.CouponCode)
				return &commands.RedeemResult{CouponCode: input.CouponCode}, nil
			}).Times(1)

		rec := httptest.PerformSignedRequest(s.T(), s.router, http.MethodPost, url, body, "mk_key", "good-sig")
		s.Equal(http.StatusOK, rec.Code)
	})
}
