package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyPaymentRef = errors.New("payment reference cannot be empty")

// Order is the creation side of a coupon purchase: it builds the pending
// row and links the gateway's hosted order to it before anything is
// persisted. The later transitions (completed, redeemed, expired) are
// guarded conditional UPDATEs in the repository, so post-payment state is
// read back as snapshots rather than mutated on this type.
type Order struct {
	id         uuid.UUID
	accountID  uuid.UUID
	amount     Amount
	paymentRef string
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewOrder(accountID uuid.UUID, amount Amount, now time.Time) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, errors.New("order requires an owning account")
	}

	return &Order{
		id:        uuid.New(),
		accountID: accountID,
		amount:    amount,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// AttachPaymentRef links the gateway's hosted order to this one.
func (o *Order) AttachPaymentRef(ref string, now time.Time) error {
	if ref == "" {
		return ErrEmptyPaymentRef
	}
	o.paymentRef = ref
	o.updatedAt = now
	return nil
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) AccountID() uuid.UUID { return o.accountID }
func (o *Order) Amount() Amount       { return o.amount }
func (o *Order) PaymentRef() string   { return o.paymentRef }
func (o *Order) Status() Status       { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
