package commands

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/mock_order.go -package=mock_commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"couponbot/internal/domain/account"
	"couponbot/internal/domain/order"
	"couponbot/internal/infra"
	"couponbot/internal/pkg/clock"
	"couponbot/internal/pkg/config"
	"couponbot/internal/pkg/couponcode"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/pkg/signature"
	"couponbot/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound       = errs.New("account not found")
	ErrOrderNotFound         = errs.New("order not found")
	ErrSignatureInvalid      = errs.New("signature verification failed")
	ErrCouponNotFound        = errs.New("coupon not found")
	ErrCouponAlreadyRedeemed = errs.New("coupon already redeemed")
	ErrCouponNotRedeemable   = errs.New("coupon not redeemable")
	ErrOrderNotExpirable     = errs.New("order cannot be expired")
	ErrGatewayUnavailable    = errs.New("payment gateway unavailable")
)

// maxCodeAttempts bounds coupon-code regeneration on unique-index collisions.
const maxCodeAttempts = 5

// notifyTimeout bounds the detached buyer-notification goroutine.
const notifyTimeout = 10 * time.Second

type CreateOrderInput struct {
	ExternalID string
	Amount     int64
}

type CreateOrderResult struct {
	Order       *queries.OrderView
	CheckoutURL string
}

type ConfirmPaymentInput struct {
	OrderRef  string
	PaymentID string
	Signature string
}

type RedeemInput struct {
	Merchant     MerchantIdentity
	CouponCode   string
	CustomerInfo *string
}

type RedeemResult struct {
	OrderID      uuid.UUID `json:"orderId"`
	CouponCode   string    `json:"couponCode"`
	Amount       int64     `json:"amount"`
	MerchantName string    `json:"merchantName"`
	RedeemedAt   time.Time `json:"redeemedAt"`
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*queries.OrderView, error)
	Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error)
	Expire(ctx context.Context, orderID uuid.UUID) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	orderRepo   OrderRepository
	accountRepo AccountRepository
	gateway     PaymentGateway
	notifier    Notifier
	webhook     WebhookSender
	orderQuery  *queries.OrderQueries
	clock       clock.Clock
	gatewayCfg  config.RazorpayConfig
	webhookCfg  config.WebhookConfig
}

func NewOrderCommands(
	orderRepo OrderRepository,
	accountRepo AccountRepository,
	gateway PaymentGateway,
	notifier Notifier,
	webhook WebhookSender,
	orderQuery *queries.OrderQueries,
	clk clock.Clock,
	gatewayCfg config.RazorpayConfig,
	webhookCfg config.WebhookConfig,
) OrderCommands {
	return &orderCommandsImpl{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		gateway:     gateway,
		notifier:    notifier,
		webhook:     webhook,
		orderQuery:  orderQuery,
		clock:       clk,
		gatewayCfg:  gatewayCfg,
		webhookCfg:  webhookCfg,
	}
}

func (u *orderCommandsImpl) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	acct, err := u.accountRepo.FindByExternalID(ctx, input.ExternalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAccountNotFound)
		}
		return nil, errs.Wrap(err, "failed to find account")
	}

	amount, err := order.NewAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(acct.ID, amount, u.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "failed to build order")
	}

	if err := u.orderRepo.Create(ctx, o); err != nil {
		return nil, errs.Wrap(err, "failed to create order")
	}

	paymentRef, err := u.gateway.CreateHostedOrder(ctx, GatewayOrderParams{
		OrderID:     o.ID(),
		ExternalID:  acct.ExternalID,
		AmountUnits: amount.Units(),
	})
	if err != nil {
		// The pending row stays behind without a payment ref; the expiry
		// sweep reaps it.
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	if err := o.AttachPaymentRef(paymentRef, u.clock.Now()); err != nil {
		return nil, errs.Wrap(err, "gateway returned an unusable payment ref")
	}
	if err := u.orderRepo.AttachPaymentRef(ctx, o.ID(), o.PaymentRef()); err != nil {
		return nil, errs.Wrap(err, "failed to attach payment ref")
	}

	// The amount dialogue is finished once the order exists.
	if acct.State == account.StateAwaitingAmount {
		if err := u.accountRepo.UpdateConversationState(ctx, acct.ID, account.StateIdle); err != nil {
			slog.Warn("failed to reset conversation state", "account_id", acct.ID, "error", err)
		}
	}

	view, err := u.orderQuery.GetOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		Order:       view,
		CheckoutURL: fmt.Sprintf("%s/checkout/%s", u.gatewayCfg.CheckoutBaseURL, o.ID()),
	}, nil
}

// ConfirmPayment is the only path from pending to completed. The signature
// gate runs before any state is touched, and replays of the same callback
// return the current view without side effects.
func (u *orderCommandsImpl) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*queries.OrderView, error) {
	if !signature.VerifyPaymentCallback(u.gatewayCfg.KeySecret, input.OrderRef, input.PaymentID, input.Signature) {
		return nil, ErrSignatureInvalid
	}

	issued := false
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := couponcode.Generate()
		if err != nil {
			return nil, errs.Wrap(err, "failed to generate coupon code")
		}
		ok, err := u.orderRepo.MarkCompleted(ctx, input.OrderRef, code)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				continue // code collision, try a fresh one
			}
			return nil, errs.Wrap(err, "failed to complete order")
		}
		if !ok {
			break
		}
		issued = true
		break
	}

	snap, err := u.orderRepo.FindByPaymentRef(ctx, input.OrderRef)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, errs.Wrap(err, "failed to find order")
	}

	if issued {
		u.notifyCouponIssued(snap)
	} else if snap.Status == order.StatusPending {
		// Still pending but never updated: every generated code collided.
		return nil, errs.New("could not issue a unique coupon code")
	}

	return u.orderQuery.GetOrder(ctx, snap.ID)
}

// Redeem burns a completed coupon. The conditional update is the whole
// race-safety story: exactly one caller sees rows=1, everyone else gets
// classified by a follow-up read.
func (u *orderCommandsImpl) Redeem(ctx context.Context, input RedeemInput) (*RedeemResult, error) {
	code, err := order.NewCode(input.CouponCode)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponNotFound)
	}

	now := u.clock.Now()
	ok, err := u.orderRepo.MarkRedeemed(ctx, code.String(), input.Merchant.ID, input.CustomerInfo, now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to redeem coupon")
	}

	if !ok {
		snap, err := u.orderRepo.FindByCouponCode(ctx, code.String())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrCouponNotFound
			}
			return nil, errs.Wrap(err, "failed to find coupon")
		}
		if snap.Status == order.StatusRedeemed {
			return nil, ErrCouponAlreadyRedeemed
		}
		return nil, ErrCouponNotRedeemable
	}

	snap, err := u.orderRepo.FindByCouponCode(ctx, code.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to reload redeemed order")
	}

	if input.Merchant.WebhookURL != nil {
		u.sendRedemptionWebhook(*input.Merchant.WebhookURL, input.Merchant.Secret, snap.Amount)
	}

	return &RedeemResult{
		OrderID:      snap.ID,
		CouponCode:   code.String(),
		Amount:       snap.Amount,
		MerchantName: input.Merchant.Name,
		RedeemedAt:   now,
	}, nil
}

func (u *orderCommandsImpl) Expire(ctx context.Context, orderID uuid.UUID) (*queries.OrderView, error) {
	ok, err := u.orderRepo.MarkExpired(ctx, orderID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to expire order")
	}

	if !ok {
		if _, err := u.orderRepo.FindByID(ctx, orderID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrOrderNotFound)
			}
			return nil, errs.Wrap(err, "failed to find order")
		}
		return nil, ErrOrderNotExpirable
	}

	return u.orderQuery.GetOrder(ctx, orderID)
}

// notifyCouponIssued delivers the coupon to the buyer off the request path.
func (u *orderCommandsImpl) notifyCouponIssued(snap *OrderSnapshot) {
	if snap.CouponCode == nil {
		return
	}
	code := *snap.CouponCode
	amount := snap.Amount
	accountID := snap.AccountID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		acct, err := u.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			slog.Error("coupon notification skipped: account lookup failed",
				"account_id", accountID, "error", err)
			return
		}

		target := NotifyTarget{ExternalID: acct.ExternalID, Email: acct.Email}
		if err := u.notifier.CouponIssued(ctx, target, code, amount); err != nil {
			slog.Error("coupon notification failed",
				"account_id", accountID, "error", err)
		}
	}()
}

func (u *orderCommandsImpl) sendRedemptionWebhook(url, secret string, amount int64) {
	payload := WebhookPayload{
		Amount: amount,
		Token:  signature.WebhookToken(secret, amount),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.webhookCfg.Timeout)
		defer cancel()

		if err := u.webhook.Send(ctx, url, payload); err != nil {
			slog.Error("redemption webhook failed", "url", url, "error", err)
		}
	}()
}
