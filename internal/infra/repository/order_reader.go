package repository

import (
	"context"

	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderReader serves the read side directly from SQL; no domain
// reconstruction on query paths.
type OrderReader struct {
	db db.DBTX
}

func NewOrderReader(dbtx db.DBTX) *OrderReader {
	return &OrderReader{db: dbtx}
}

func (r *OrderReader) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, account_id, amount, payment_ref, coupon_code, status,
			redeemed_at, redeemed_by, customer_info, created_at, updated_at
		FROM orders
		WHERE id = $1`,
		id,
	)

	view, err := scanOrderView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}
	return view, nil
}

func (r *OrderReader) FindCheckout(ctx context.Context, id uuid.UUID) (*queries.CheckoutView, error) {
	var view queries.CheckoutView
	var firstName, lastName *string

	row := r.db.QueryRow(ctx, `
		SELECT o.id, o.payment_ref, o.amount, o.status, a.email, a.first_name, a.last_name
		FROM orders o
		JOIN accounts a ON a.id = o.account_id
		WHERE o.id = $1 AND o.payment_ref IS NOT NULL`,
		id,
	)
	err := row.Scan(&view.OrderID, &view.PaymentRef, &view.Amount, &view.Status, &view.BuyerEmail, &firstName, &lastName)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find checkout view", err)
	}

	if name := joinName(firstName, lastName); name != "" {
		view.BuyerName = &name
	}
	return &view, nil
}

func (r *OrderReader) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]queries.OrderView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, amount, payment_ref, coupon_code, status,
			redeemed_at, redeemed_by, customer_info, created_at, updated_at
		FROM orders
		WHERE account_id = $1
		ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	views := make([]queries.OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}
	return views, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var view queries.OrderView
	err := row.Scan(
		&view.ID, &view.AccountID, &view.Amount, &view.PaymentRef, &view.CouponCode, &view.Status,
		&view.RedeemedAt, &view.RedeemedBy, &view.CustomerInfo, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func joinName(first, last *string) string {
	switch {
	case first != nil && last != nil:
		return *first + " " + *last
	case first != nil:
		return *first
	case last != nil:
		return *last
	default:
		return ""
	}
}
