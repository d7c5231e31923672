package repository

import (
	"context"

	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/queries"
)

type AccountReader struct {
	db db.DBTX
}

func NewAccountReader(dbtx db.DBTX) *AccountReader {
	return &AccountReader{db: dbtx}
}

func (r *AccountReader) FindByExternalID(ctx context.Context, externalID string) (*queries.AccountView, error) {
	var view queries.AccountView

	row := r.db.QueryRow(ctx, `
		SELECT id, external_id, email, first_name, last_name, conversation_state, created_at, updated_at
		FROM accounts
		WHERE external_id = $1`,
		externalID,
	)
	err := row.Scan(
		&view.ID, &view.ExternalID, &view.Email, &view.FirstName, &view.LastName,
		&view.State, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find account view", err)
	}
	return &view, nil
}
