//go:build unit

package commands_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"couponbot/internal/domain/account"
	"couponbot/internal/domain/order"
	"couponbot/internal/infra"
	"couponbot/internal/pkg/clock"
	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/couponcode"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/pkg/ptr"
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"
	mock_commands "couponbot/tests/mock/commands"
	mock_queries "couponbot/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testGatewaySecret = "rzp_test_secret"
	asyncWait         = 2 * time.Second
)

var baseTime = time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)

type orderFixture struct {
	orderRepo   *mock_commands.MockOrderRepository
	accountRepo *mock_commands.MockAccountRepository
	gateway     *mock_commands.MockPaymentGateway
	notifier    *mock_commands.MockNotifier
	webhook     *mock_commands.MockWebhookSender
	readStore   *mock_queries.MockOrderReadStore
	clock       *clock.MockClock
	uc          commands.OrderCommands
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &orderFixture{
		orderRepo:   mock_commands.NewMockOrderRepository(ctrl),
		accountRepo: mock_commands.NewMockAccountRepository(ctrl),
		gateway:     mock_commands.NewMockPaymentGateway(ctrl),
		notifier:    mock_commands.NewMockNotifier(ctrl),
		webhook:     mock_commands.NewMockWebhookSender(ctrl),
		readStore:   mock_queries.NewMockOrderReadStore(ctrl),
		clock:       clock.NewMockClock(baseTime),
	}
	f.uc = commands.NewOrderCommands(
		f.orderRepo,
		f.accountRepo,
		f.gateway,
		f.notifier,
		f.webhook,
		queries.NewOrderQueries(f.readStore),
		f.clock,
		config.RazorpayConfig{
			KeySecret:       testGatewaySecret,
			CheckoutBaseURL: "http://pay.local",
		},
		config.WebhookConfig{Timeout: time.Second},
	)
	return f
}

func signCallback(orderRef, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func accountSnap(id uuid.UUID, state account.ConversationState) *commands.AccountSnapshot {
	return &commands.AccountSnapshot{
		ID:         id,
		ExternalID: "123456789",
		Email:      ptr.To("buyer@example.com"),
		FirstName:  ptr.To("Asha"),
		State:      state,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
}

func orderSnap(id, accountID uuid.UUID, status order.Status) *commands.OrderSnapshot {
	return &commands.OrderSnapshot{
		ID:        id,
		AccountID: accountID,
		Amount:    500,
		Status:    status,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("creates pending order with checkout url", func(t *testing.T) {
		f := newOrderFixture(t)
		accountID := uuid.New()

		var createdID uuid.UUID
		f.accountRepo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
			Return(accountSnap(accountID, account.StateAwaitingAmount), nil)
		f.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *order.Order) error {
				createdID = o.ID()
				assert.Equal(t, order.StatusPending, o.Status())
				return nil
			})
		f.gateway.EXPECT().CreateHostedOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params commands.GatewayOrderParams) (string, error) {
				assert.Equal(t, int64(500), params.AmountUnits)
				return "order_rzp001", nil
			})
		f.orderRepo.EXPECT().AttachPaymentRef(gomock.Any(), gomock.Any(), "order_rzp001").Return(nil)
		f.accountRepo.EXPECT().UpdateConversationState(gomock.Any(), accountID, account.StateIdle).Return(nil)
		f.readStore.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
				return &queries.OrderView{ID: id, AccountID: accountID, Amount: 500, Status: "pending"}, nil
			})

		result, err := f.uc.CreateOrder(context.Background(), commands.CreateOrderInput{
			ExternalID: "123456789",
			Amount:     500,
		})
		require.NoError(t, err)
		assert.Equal(t, createdID, result.Order.ID)
		assert.Equal(t, "http://pay.local/checkout/"+createdID.String(), result.CheckoutURL)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newOrderFixture(t)
		f.accountRepo.EXPECT().FindByExternalID(gomock.Any(), "nobody").
			Return(nil, infra.WrapRepoErr("find account", errs.New("no rows"), infra.KindNotFound))

		_, err := f.uc.CreateOrder(context.Background(), commands.CreateOrderInput{ExternalID: "nobody", Amount: 500})
		assert.ErrorIs(t, err, commands.ErrAccountNotFound)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newOrderFixture(t)
		f.accountRepo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
			Return(accountSnap(uuid.New(), account.StateAwaitingAmount), nil)

		_, err := f.uc.CreateOrder(context.Background(), commands.CreateOrderInput{ExternalID: "123456789", Amount: 0})
		assert.ErrorIs(t, err, order.ErrInvalidAmount)
	})

	t.Run("empty gateway ref never reaches the repository", func(t *testing.T) {
		f := newOrderFixture(t)
		f.accountRepo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
			Return(accountSnap(uuid.New(), account.StateAwaitingAmount), nil)
		f.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.gateway.EXPECT().CreateHostedOrder(gomock.Any(), gomock.Any()).Return("", nil)

		_, err := f.uc.CreateOrder(context.Background(), commands.CreateOrderInput{ExternalID: "123456789", Amount: 500})
		assert.ErrorIs(t, err, order.ErrEmptyPaymentRef)
	})

	t.Run("gateway failure surfaces as unavailable", func(t *testing.T) {
		f := newOrderFixture(t)
		f.accountRepo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
			Return(accountSnap(uuid.New(), account.StateAwaitingAmount), nil)
		f.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.gateway.EXPECT().CreateHostedOrder(gomock.Any(), gomock.Any()).
			Return("", errs.New("connection refused"))

		_, err := f.uc.CreateOrder(context.Background(), commands.CreateOrderInput{ExternalID: "123456789", Amount: 500})
		assert.ErrorIs(t, err, commands.ErrGatewayUnavailable)
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("rejects tampered signature before touching state", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.uc.ConfirmPayment(context.Background(), commands.ConfirmPaymentInput{
			OrderRef:  "order_rzp001",
			PaymentID: "pay_001",
			Signature: "deadbeef",
		})
		assert.ErrorIs(t, err, commands.ErrSignatureInvalid)
	})

	t.Run("issues coupon and notifies buyer", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID, accountID := uuid.New(), uuid.New()

		snap := orderSnap(orderID, accountID, order.StatusCompleted)
		snap.PaymentRef = ptr.To("order_rzp001")

		var issuedCode string
		f.orderRepo.EXPECT().MarkCompleted(gomock.Any(), "order_rzp001", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, code string) (bool, error) {
				issuedCode = code
				snap.CouponCode = &code
				return true, nil
			})
		f.orderRepo.EXPECT().FindByPaymentRef(gomock.Any(), "order_rzp001").Return(snap, nil)
		f.readStore.EXPECT().FindByID(gomock.Any(), orderID).
			Return(&queries.OrderView{ID: orderID, Status: "completed"}, nil)

		notified := make(chan commands.NotifyTarget, 1)
		f.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).
			Return(accountSnap(accountID, account.StateIdle), nil)
		f.notifier.EXPECT().CouponIssued(gomock.Any(), gomock.Any(), gomock.Any(), int64(500)).
			DoAndReturn(func(_ context.Context, to commands.NotifyTarget, code string, _ int64) error {
				assert.Equal(t, issuedCode, code)
				notified <- to
				return nil
			})

		view, err := f.uc.ConfirmPayment(context.Background(), commands.ConfirmPaymentInput{
			OrderRef:  "order_rzp001",
			PaymentID: "pay_001",
			Signature: signCallback("order_rzp001", "pay_001"),
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", view.Status)
		assert.True(t, strings.HasPrefix(issuedCode, couponcode.Prefix))
		assert.True(t, couponcode.IsWellFormed(issuedCode))

		select {
		case to := <-notified:
			assert.Equal(t, "123456789", to.ExternalID)
			require.NotNil(t, to.Email)
			assert.Equal(t, "buyer@example.com", *to.Email)
		case <-time.After(asyncWait):
			t.Fatal("buyer notification never dispatched")
		}
	})

	t.Run("replayed callback is a no-op", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID, accountID := uuid.New(), uuid.New()

		snap := orderSnap(orderID, accountID, order.StatusCompleted)
		snap.CouponCode = ptr.To("COUPON-AAAA111122")

		f.orderRepo.EXPECT().MarkCompleted(gomock.Any(), "order_rzp001", gomock.Any()).Return(false, nil)
		f.orderRepo.EXPECT().FindByPaymentRef(gomock.Any(), "order_rzp001").Return(snap, nil)
		f.readStore.EXPECT().FindByID(gomock.Any(), orderID).
			Return(&queries.OrderView{ID: orderID, Status: "completed", CouponCode: snap.CouponCode}, nil)

		view, err := f.uc.ConfirmPayment(context.Background(), commands.ConfirmPaymentInput{
			OrderRef:  "order_rzp001",
			PaymentID: "pay_001",
			Signature: signCallback("order_rzp001", "pay_001"),
		})
		require.NoError(t, err)
		assert.Equal(t, "COUPON-AAAA111122", *view.CouponCode)
	})

	t.Run("regenerates code on unique collision", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID, accountID := uuid.New(), uuid.New()

		snap := orderSnap(orderID, accountID, order.StatusCompleted)
		snap.CouponCode = ptr.To("COUPON-BBBB22223")

		dupErr := infra.WrapRepoErr("complete order", errs.New("duplicate key"), infra.KindDuplicateKey)
		gomock.InOrder(
			f.orderRepo.EXPECT().MarkCompleted(gomock.Any(), "order_rzp001", gomock.Any()).Return(false, dupErr),
			f.orderRepo.EXPECT().MarkCompleted(gomock.Any(), "order_rzp001", gomock.Any()).Return(true, nil),
		)
		f.orderRepo.EXPECT().FindByPaymentRef(gomock.Any(), "order_rzp001").Return(snap, nil)
		f.readStore.EXPECT().FindByID(gomock.Any(), orderID).
			Return(&queries.OrderView{ID: orderID, Status: "completed"}, nil)

		notified := make(chan struct{}, 1)
		f.accountRepo.EXPECT().FindByID(gomock.Any(), accountID).
			Return(accountSnap(accountID, account.StateIdle), nil)
		f.notifier.EXPECT().CouponIssued(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, commands.NotifyTarget, string, int64) error {
				notified <- struct{}{}
				return nil
			})

		_, err := f.uc.ConfirmPayment(context.Background(), commands.ConfirmPaymentInput{
			OrderRef:  "order_rzp001",
			PaymentID: "pay_001",
			Signature: signCallback("order_rzp001", "pay_001"),
		})
		require.NoError(t, err)

		select {
		case <-notified:
		case <-time.After(asyncWait):
			t.Fatal("buyer notification never dispatched")
		}
	})

	t.Run("unknown payment ref", func(t *testing.T) {
		f := newOrderFixture(t)

		f.orderRepo.EXPECT().MarkCompleted(gomock.Any(), "order_unknown", gomock.Any()).Return(false, nil)
		f.orderRepo.EXPECT().FindByPaymentRef(gomock.Any(), "order_unknown").
			Return(nil, infra.WrapRepoErr("find order", errs.New("no rows"), infra.KindNotFound))

		_, err := f.uc.ConfirmPayment(context.Background(), commands.ConfirmPaymentInput{
			OrderRef:  "order_unknown",
			PaymentID: "pay_001",
			Signature: signCallback("order_unknown", "pay_001"),
		})
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestRedeem(t *testing.T) {
	merchantID := uuid.New()

	identity := func(webhookURL *string) commands.MerchantIdentity {
		return commands.MerchantIdentity{
			ID:         merchantID,
			Name:       "Chai Stall",
			Secret:     "merchant-secret",
			WebhookURL: webhookURL,
		}
	}

	t.Run("burns completed coupon and fires webhook", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID, accountID := uuid.New(), uuid.New()

		f.clock.Advance(time.Hour)
		redeemTime := baseTime.Add(time.Hour)

		snap := orderSnap(orderID, accountID, order.StatusRedeemed)
		snap.CouponCode = ptr.To("COUPON-AAAA111122")
		snap.RedeemedAt = ptr.To(redeemTime)
		snap.RedeemedBy = &merchantID

		f.orderRepo.EXPECT().
			MarkRedeemed(gomock.Any(), "COUPON-AAAA111122", merchantID, gomock.Any(), redeemTime).
			Return(true, nil)
		f.orderRepo.EXPECT().FindByCouponCode(gomock.Any(), "COUPON-AAAA111122").Return(snap, nil)

		sent := make(chan commands.WebhookPayload, 1)
		f.webhook.EXPECT().Send(gomock.Any(), "https://merchant.example.com/hook", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, payload commands.WebhookPayload) error {
				sent <- payload
				return nil
			})

		result, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:     identity(ptr.To("https://merchant.example.com/hook")),
			CouponCode:   "coupon-aaaa111122", // lower case normalizes
			CustomerInfo: ptr.To("table 4"),
		})
		require.NoError(t, err)
		assert.Equal(t, orderID, result.OrderID)
		assert.Equal(t, int64(500), result.Amount)
		assert.Equal(t, "Chai Stall", result.MerchantName)
		assert.Equal(t, redeemTime, result.RedeemedAt)

		select {
		case payload := <-sent:
			assert.Equal(t, int64(500), payload.Amount)
			mac := hmac.New(sha256.New, []byte("merchant-secret"))
			mac.Write([]byte("500"))
			assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), payload.Token)
		case <-time.After(asyncWait):
			t.Fatal("redemption webhook never dispatched")
		}
	})

	t.Run("no webhook configured means no outbound call", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID, accountID := uuid.New(), uuid.New()

		snap := orderSnap(orderID, accountID, order.StatusRedeemed)
		snap.CouponCode = ptr.To("COUPON-AAAA111122")

		f.orderRepo.EXPECT().
			MarkRedeemed(gomock.Any(), "COUPON-AAAA111122", merchantID, gomock.Any(), baseTime).
			Return(true, nil)
		f.orderRepo.EXPECT().FindByCouponCode(gomock.Any(), "COUPON-AAAA111122").Return(snap, nil)

		_, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:   identity(nil),
			CouponCode: "COUPON-AAAA111122",
		})
		require.NoError(t, err)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		f := newOrderFixture(t)

		f.orderRepo.EXPECT().
			MarkRedeemed(gomock.Any(), "COUPON-ZZZZ999999", merchantID, gomock.Any(), baseTime).
			Return(false, nil)
		f.orderRepo.EXPECT().FindByCouponCode(gomock.Any(), "COUPON-ZZZZ999999").
			Return(nil, infra.WrapRepoErr("find coupon", errs.New("no rows"), infra.KindNotFound))

		_, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:   identity(nil),
			CouponCode: "COUPON-ZZZZ999999",
		})
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})

	t.Run("already redeemed", func(t *testing.T) {
		f := newOrderFixture(t)
		snap := orderSnap(uuid.New(), uuid.New(), order.StatusRedeemed)
		snap.CouponCode = ptr.To("COUPON-AAAA111122")

		f.orderRepo.EXPECT().
			MarkRedeemed(gomock.Any(), "COUPON-AAAA111122", merchantID, gomock.Any(), baseTime).
			Return(false, nil)
		f.orderRepo.EXPECT().FindByCouponCode(gomock.Any(), "COUPON-AAAA111122").Return(snap, nil)

		_, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:   identity(nil),
			CouponCode: "COUPON-AAAA111122",
		})
		assert.ErrorIs(t, err, commands.ErrCouponAlreadyRedeemed)
	})

	t.Run("pending coupon is not redeemable", func(t *testing.T) {
		f := newOrderFixture(t)
		snap := orderSnap(uuid.New(), uuid.New(), order.StatusPending)
		snap.CouponCode = ptr.To("COUPON-AAAA111122")

		f.orderRepo.EXPECT().
			MarkRedeemed(gomock.Any(), "COUPON-AAAA111122", merchantID, gomock.Any(), baseTime).
			Return(false, nil)
		f.orderRepo.EXPECT().FindByCouponCode(gomock.Any(), "COUPON-AAAA111122").Return(snap, nil)

		_, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:   identity(nil),
			CouponCode: "COUPON-AAAA111122",
		})
		assert.ErrorIs(t, err, commands.ErrCouponNotRedeemable)
	})

	t.Run("malformed code never reaches the repository", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.uc.Redeem(context.Background(), commands.RedeemInput{
			Merchant:   identity(nil),
			CouponCode: "coupon codes have no spaces",
		})
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})
}

func TestExpire(t *testing.T) {
	t.Run("expires a pending order", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := uuid.New()

		f.orderRepo.EXPECT().MarkExpired(gomock.Any(), orderID).Return(true, nil)
		f.readStore.EXPECT().FindByID(gomock.Any(), orderID).
			Return(&queries.OrderView{ID: orderID, Status: "expired"}, nil)

		view, err := f.uc.Expire(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "expired", view.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := uuid.New()

		f.orderRepo.EXPECT().MarkExpired(gomock.Any(), orderID).Return(false, nil)
		f.orderRepo.EXPECT().FindByID(gomock.Any(), orderID).
			Return(nil, infra.WrapRepoErr("find order", errs.New("no rows"), infra.KindNotFound))

		_, err := f.uc.Expire(context.Background(), orderID)
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("terminal order cannot expire", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := uuid.New()

		f.orderRepo.EXPECT().MarkExpired(gomock.Any(), orderID).Return(false, nil)
		f.orderRepo.EXPECT().FindByID(gomock.Any(), orderID).
			Return(orderSnap(orderID, uuid.New(), order.StatusRedeemed), nil)

		_, err := f.uc.Expire(context.Background(), orderID)
		assert.ErrorIs(t, err, commands.ErrOrderNotExpirable)
	})
}

// racingOrderRepo is an in-memory single-order repository whose MarkRedeemed
// has the same winner-takes-all semantics as the conditional SQL update.
type racingOrderRepo struct {
	mu   sync.Mutex
	snap commands.OrderSnapshot
}

func (r *racingOrderRepo) MarkRedeemed(_ context.Context, code string, merchantID uuid.UUID, customerInfo *string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap.CouponCode == nil || *r.snap.CouponCode != code || r.snap.Status != order.StatusCompleted {
		return false, nil
	}
	r.snap.Status = order.StatusRedeemed
	r.snap.RedeemedAt = &at
	r.snap.RedeemedBy = &merchantID
	r.snap.CustomerInfo = customerInfo
	return true, nil
}

func (r *racingOrderRepo) FindByCouponCode(_ context.Context, code string) (*commands.OrderSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap.CouponCode == nil || *r.snap.CouponCode != code {
		return nil, infra.WrapRepoErr("find coupon", errs.New("no rows"), infra.KindNotFound)
	}
	copied := r.snap
	return &copied, nil
}

func (r *racingOrderRepo) Create(context.Context, *order.Order) error { panic("not used") }
func (r *racingOrderRepo) AttachPaymentRef(context.Context, uuid.UUID, string) error {
	panic("not used")
}
func (r *racingOrderRepo) FindByID(context.Context, uuid.UUID) (*commands.OrderSnapshot, error) {
	panic("not used")
}
func (r *racingOrderRepo) FindByPaymentRef(context.Context, string) (*commands.OrderSnapshot, error) {
	panic("not used")
}
func (r *racingOrderRepo) MarkCompleted(context.Context, string, string) (bool, error) {
	panic("not used")
}
func (r *racingOrderRepo) MarkExpired(context.Context, uuid.UUID) (bool, error) {
	panic("not used")
}

func TestRedeemConcurrency(t *testing.T) {
	code := "COUPON-RACE123456"
	repo := &racingOrderRepo{
		snap: commands.OrderSnapshot{
			ID:         uuid.New(),
			AccountID:  uuid.New(),
			Amount:     500,
			CouponCode: &code,
			Status:     order.StatusCompleted,
			CreatedAt:  baseTime,
			UpdatedAt:  baseTime,
		},
	}

	ctrl := gomock.NewController(t)
	uc := commands.NewOrderCommands(
		repo,
		mock_commands.NewMockAccountRepository(ctrl),
		mock_commands.NewMockPaymentGateway(ctrl),
		mock_commands.NewMockNotifier(ctrl),
		mock_commands.NewMockWebhookSender(ctrl),
		queries.NewOrderQueries(mock_queries.NewMockOrderReadStore(ctrl)),
		clock.NewMockClock(baseTime),
		config.RazorpayConfig{KeySecret: testGatewaySecret, CheckoutBaseURL: "http://pay.local"},
		config.WebhookConfig{Timeout: time.Second},
	)

	const workers = 16
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Redeem(context.Background(), commands.RedeemInput{
				Merchant:   commands.MerchantIdentity{ID: uuid.New(), Name: "Racer", Secret: "s"},
				CouponCode: code,
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, commands.ErrCouponAlreadyRedeemed)
	}
	assert.Equal(t, 1, winners, "exactly one redemption must win")
}
