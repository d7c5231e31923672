package repository

import (
	"context"

	"couponbot/internal/domain/merchant"
	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/commands"
)

type MerchantRepository struct {
	db db.DBTX
}

func NewMerchantRepository(dbtx db.DBTX) *MerchantRepository {
	return &MerchantRepository{db: dbtx}
}

func (r *MerchantRepository) Create(ctx context.Context, m *merchant.Merchant) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO merchants (id, name, public_key, secret, webhook_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID(), m.Name(), m.PublicKey(), m.Secret(), m.WebhookURL(), m.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert merchant", err)
	}
	return nil
}

func (r *MerchantRepository) FindByPublicKey(ctx context.Context, publicKey string) (*commands.MerchantSnapshot, error) {
	var snap commands.MerchantSnapshot

	row := r.db.QueryRow(ctx, `
		SELECT id, name, public_key, secret, webhook_url, created_at
		FROM merchants
		WHERE public_key = $1`,
		publicKey,
	)
	err := row.Scan(&snap.ID, &snap.Name, &snap.PublicKey, &snap.Secret, &snap.WebhookURL, &snap.CreatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find merchant", err)
	}
	return &snap, nil
}
