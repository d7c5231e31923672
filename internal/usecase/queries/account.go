package queries

//go:generate mockgen -source=account.go -destination=../../../tests/mock/queries/mock_account.go -package=mock_queries

import (
	"context"
	"time"

	"couponbot/internal/infra"
	"couponbot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAccountNotFound = errs.New("account not found")

type AccountView struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      *string   `json:"email,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	State      string    `json:"conversationState"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AccountReadStore interface {
	FindByExternalID(ctx context.Context, externalID string) (*AccountView, error)
}

type AccountQueries struct {
	store AccountReadStore
}

func NewAccountQueries(store AccountReadStore) *AccountQueries {
	return &AccountQueries{store: store}
}

func (q *AccountQueries) GetByExternalID(ctx context.Context, externalID string) (*AccountView, error) {
	view, err := q.store.FindByExternalID(ctx, externalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAccountNotFound)
		}
		return nil, errs.Wrap(err, "failed to get account")
	}
	return view, nil
}
