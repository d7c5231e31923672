package order

import (
	"errors"

	"couponbot/internal/pkg/couponcode"
)

var (
	ErrInvalidAmount     = errors.New("amount must be a positive whole number of currency units")
	ErrInvalidCouponCode = errors.New("invalid coupon code format")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// Amount is a coupon face value in whole currency units. Minor-unit
// conversion (paise) happens only at the gateway boundary, never here.
type Amount int64

func NewAmount(units int64) (Amount, error) {
	if units <= 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(units), nil
}

func (a Amount) Units() int64 {
	return int64(a)
}

type Code string

func NewCode(raw string) (Code, error) {
	normalized := couponcode.Normalize(raw)
	if !couponcode.IsWellFormed(normalized) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(normalized), nil
}

func (c Code) String() string {
	return string(c)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRedeemed  Status = "redeemed"
	StatusExpired   Status = "expired"
)

func NewStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusCompleted, StatusRedeemed, StatusExpired:
		return Status(raw), nil
	default:
		return Status(""), ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}
