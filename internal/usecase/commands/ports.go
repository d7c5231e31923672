package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/mock_ports.go -package=mock_commands

import (
	"context"
	"time"

	"couponbot/internal/domain/account"
	"couponbot/internal/domain/merchant"
	"couponbot/internal/domain/order"

	"github.com/google/uuid"
)

// Snapshots are flat read models handed back by repositories; domain
// entities are reconstructed from them only where a guarded transition
// needs to run in memory.

type OrderSnapshot struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Amount       int64
	PaymentRef   *string
	CouponCode   *string
	Status       order.Status
	RedeemedAt   *time.Time
	RedeemedBy   *uuid.UUID
	CustomerInfo *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AccountSnapshot struct {
	ID         uuid.UUID
	ExternalID string
	Email      *string
	FirstName  *string
	LastName   *string
	State      account.ConversationState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type MerchantSnapshot struct {
	ID         uuid.UUID
	Name       string
	PublicKey  string
	Secret     string
	WebhookURL *string
	CreatedAt  time.Time
}

type AdminSnapshot struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	AttachPaymentRef(ctx context.Context, id uuid.UUID, ref string) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	FindByPaymentRef(ctx context.Context, ref string) (*OrderSnapshot, error)
	FindByCouponCode(ctx context.Context, code string) (*OrderSnapshot, error)
	// MarkCompleted flips pending -> completed and stores the coupon code in
	// one conditional update keyed on the payment ref. Returns false when no
	// pending order matched.
	MarkCompleted(ctx context.Context, paymentRef, couponCode string) (bool, error)
	// MarkRedeemed flips completed -> redeemed in one conditional update
	// keyed on the coupon code. Returns false when no completed order
	// matched, leaving classification to the caller.
	MarkRedeemed(ctx context.Context, couponCode string, merchantID uuid.UUID, customerInfo *string, at time.Time) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
}

type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*AccountSnapshot, error)
	FindByExternalID(ctx context.Context, externalID string) (*AccountSnapshot, error)
	// UpdateEmail stores the address and lands the conversation at idle.
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdateConversationState(ctx context.Context, id uuid.UUID, state account.ConversationState) error
}

type MerchantRepository interface {
	Create(ctx context.Context, m *merchant.Merchant) error
	FindByPublicKey(ctx context.Context, publicKey string) (*MerchantSnapshot, error)
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*AdminSnapshot, error)
}

// PaymentGateway creates the hosted checkout order and returns the
// gateway's opaque reference for it.
type PaymentGateway interface {
	CreateHostedOrder(ctx context.Context, params GatewayOrderParams) (string, error)
}

type GatewayOrderParams struct {
	OrderID     uuid.UUID
	ExternalID  string
	AmountUnits int64
}

type NotifyTarget struct {
	ExternalID string
	Email      *string
}

// Notifier delivers the issued coupon to the buyer (message + email).
// Failures are the sender's problem to log; the lifecycle never waits on it.
type Notifier interface {
	CouponIssued(ctx context.Context, to NotifyTarget, couponCode string, amountUnits int64) error
}

type WebhookPayload struct {
	Amount int64  `json:"amount"`
	Token  string `json:"token"`
}

type WebhookSender interface {
	Send(ctx context.Context, url string, payload WebhookPayload) error
}
