//go:build unit

package order_test

import (
	"testing"
	"time"

	"couponbot/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	amount, err := order.NewAmount(500)
	require.NoError(t, err)
	o, err := order.NewOrder(uuid.New(), amount, t0)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending with no payment ref", func(t *testing.T) {
		o := newPendingOrder(t)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Empty(t, o.PaymentRef())
		assert.Equal(t, int64(500), o.Amount().Units())
		assert.Equal(t, t0, o.CreatedAt())
		assert.Equal(t, t0, o.UpdatedAt())
	})

	t.Run("requires an owning account", func(t *testing.T) {
		amount, err := order.NewAmount(500)
		require.NoError(t, err)

		_, err = order.NewOrder(uuid.Nil, amount, t0)
		assert.Error(t, err)
	})
}

func TestAttachPaymentRef(t *testing.T) {
	t.Run("links the hosted order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.AttachPaymentRef("order_Nxxq7Yp2eF", t0.Add(time.Minute)))
		assert.Equal(t, "order_Nxxq7Yp2eF", o.PaymentRef())
		assert.Equal(t, t0.Add(time.Minute), o.UpdatedAt())
	})

	t.Run("rejects an empty ref", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.ErrorIs(t, o.AttachPaymentRef("", t0), order.ErrEmptyPaymentRef)
		assert.Equal(t, t0, o.UpdatedAt())
	})
}
