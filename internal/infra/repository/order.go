package repository

import (
	"context"
	"time"

	"couponbot/internal/domain/order"
	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

const orderColumns = `id, account_id, amount, payment_ref, coupon_code, status,
	redeemed_at, redeemed_by, customer_info, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, account_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID(), o.AccountID(), o.Amount().Units(), o.Status().String(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order", err)
	}
	return nil
}

func (r *OrderRepository) AttachPaymentRef(ctx context.Context, id uuid.UUID, ref string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_ref = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'`,
		id, ref,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment ref", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order is not pending", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.OrderSnapshot, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepository) FindByPaymentRef(ctx context.Context, ref string) (*commands.OrderSnapshot, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_ref = $1`, ref)
}

func (r *OrderRepository) FindByCouponCode(ctx context.Context, code string) (*commands.OrderSnapshot, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE coupon_code = $1`, code)
}

func (r *OrderRepository) findOne(ctx context.Context, query string, arg any) (*commands.OrderSnapshot, error) {
	var snap commands.OrderSnapshot
	var status string

	row := r.db.QueryRow(ctx, query, arg)
	err := row.Scan(
		&snap.ID, &snap.AccountID, &snap.Amount, &snap.PaymentRef, &snap.CouponCode, &status,
		&snap.RedeemedAt, &snap.RedeemedBy, &snap.CustomerInfo, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	snap.Status, err = order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("order row has unknown status", err, infra.KindDBFailure)
	}
	return &snap, nil
}

// MarkCompleted is the pending -> completed transition. The WHERE clause is
// the guard; a replayed callback matches zero rows.
func (r *OrderRepository) MarkCompleted(ctx context.Context, paymentRef, couponCode string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'completed', coupon_code = $2, updated_at = now()
		WHERE payment_ref = $1 AND status = 'pending'`,
		paymentRef, couponCode,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order completed", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkRedeemed is the completed -> redeemed transition. Concurrent callers
// race on the status guard; at most one sees an affected row.
func (r *OrderRepository) MarkRedeemed(ctx context.Context, couponCode string, merchantID uuid.UUID, customerInfo *string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'redeemed', redeemed_at = $3, redeemed_by = $2, customer_info = $4, updated_at = now()
		WHERE coupon_code = $1 AND status = 'completed'`,
		couponCode, merchantID, at, customerInfo,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order redeemed", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'expired', updated_at = now()
		WHERE id = $1 AND status IN ('pending', 'completed')`,
		id,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order expired", err)
	}
	return tag.RowsAffected() > 0, nil
}
