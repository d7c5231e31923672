package repository

import (
	"context"

	"couponbot/internal/domain/account"
	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/commands"

	"github.com/google/uuid"
)

type AccountRepository struct {
	db db.DBTX
}

func NewAccountRepository(dbtx db.DBTX) *AccountRepository {
	return &AccountRepository{db: dbtx}
}

const accountColumns = `id, external_id, email, first_name, last_name, conversation_state, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	var email *string
	if a.Email() != nil {
		e := a.Email().String()
		email = &e
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, external_id, email, first_name, last_name, conversation_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID(), a.ExternalID(), email, a.FirstName(), a.LastName(), a.State().String(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert account", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.AccountSnapshot, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) FindByExternalID(ctx context.Context, externalID string) (*commands.AccountSnapshot, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE external_id = $1`, externalID)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*commands.AccountSnapshot, error) {
	var snap commands.AccountSnapshot
	var state string

	row := r.db.QueryRow(ctx, query, arg)
	err := row.Scan(
		&snap.ID, &snap.ExternalID, &snap.Email, &snap.FirstName, &snap.LastName,
		&state, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find account", err)
	}

	snap.State, err = account.NewConversationState(state)
	if err != nil {
		return nil, infra.WrapRepoErr("account row has unknown state", err, infra.KindDBFailure)
	}
	return &snap, nil
}

func (r *AccountRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET email = $2, conversation_state = 'idle', updated_at = now()
		WHERE id = $1`,
		id, email,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update email", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("account not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AccountRepository) UpdateConversationState(ctx context.Context, id uuid.UUID, state account.ConversationState) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET conversation_state = $2, updated_at = now()
		WHERE id = $1`,
		id, state.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update conversation state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("account not found", nil, infra.KindNotFound)
	}
	return nil
}
