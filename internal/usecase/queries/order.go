package queries

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/mock_order.go -package=mock_queries

import (
	"context"
	"time"

	"couponbot/internal/infra"
	"couponbot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

// OrderView is the read model for a single order, shared by the API
// responses and the checkout page.
type OrderView struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    uuid.UUID  `json:"accountId"`
	Amount       int64      `json:"amount"`
	PaymentRef   *string    `json:"paymentRef,omitempty"`
	CouponCode   *string    `json:"couponCode,omitempty"`
	Status       string     `json:"status"`
	RedeemedAt   *time.Time `json:"redeemedAt,omitempty"`
	RedeemedBy   *uuid.UUID `json:"redeemedBy,omitempty"`
	CustomerInfo *string    `json:"customerInfo,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CheckoutView carries what the hosted payment page needs to render.
type CheckoutView struct {
	OrderID    uuid.UUID `json:"orderId"`
	PaymentRef string    `json:"paymentRef"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	BuyerEmail *string   `json:"buyerEmail,omitempty"`
	BuyerName  *string   `json:"buyerName,omitempty"`
}

type AccountOrdersView struct {
	Orders []OrderView `json:"orders"`
	Total  int         `json:"total"`
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindCheckout(ctx context.Context, id uuid.UUID) (*CheckoutView, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]OrderView, error)
}

type OrderQueries struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) *OrderQueries {
	return &OrderQueries{store: store}
}

func (q *OrderQueries) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, errs.Wrap(err, "failed to get order")
	}
	return view, nil
}

func (q *OrderQueries) GetCheckout(ctx context.Context, id uuid.UUID) (*CheckoutView, error) {
	view, err := q.store.FindCheckout(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, errs.Wrap(err, "failed to get checkout view")
	}
	return view, nil
}

func (q *OrderQueries) ListByAccount(ctx context.Context, accountID uuid.UUID) (*AccountOrdersView, error) {
	orders, err := q.store.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list orders")
	}
	return &AccountOrdersView{Orders: orders, Total: len(orders)}, nil
}
