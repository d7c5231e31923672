//go:build unit

package commands_test

import (
	"context"
	"testing"

	"couponbot/internal/domain/account"
	"couponbot/internal/infra"
	"couponbot/internal/pkg/clock"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/pkg/ptr"
	"couponbot/internal/usecase/commands"
	mock_commands "couponbot/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func notFoundErr() error {
	return infra.WrapRepoErr("find account", errs.New("no rows"), infra.KindNotFound)
}

func newAccountCommands(t *testing.T) (commands.AccountCommands, *mock_commands.MockAccountRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_commands.NewMockAccountRepository(ctrl)
	return commands.NewAccountCommands(repo, clock.NewMockClock(baseTime)), repo
}

func TestRegisterAccount(t *testing.T) {
	t.Run("creates on first contact", func(t *testing.T) {
		uc, repo := newAccountCommands(t)

		created := accountSnap(uuid.New(), account.StateAwaitingEmail)
		gomock.InOrder(
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(nil, notFoundErr()),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, a *account.Account) error {
					assert.Equal(t, "123456789", a.ExternalID())
					assert.Equal(t, account.StateAwaitingEmail, a.State())
					return nil
				}),
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(created, nil),
		)

		snap, err := uc.Register(context.Background(), commands.RegisterAccountInput{
			ExternalID: "123456789",
			FirstName:  ptr.To("Asha"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, snap.ID)
	})

	t.Run("repeat contact returns existing account untouched", func(t *testing.T) {
		uc, repo := newAccountCommands(t)

		existing := accountSnap(uuid.New(), account.StateIdle)
		repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(existing, nil)

		snap, err := uc.Register(context.Background(), commands.RegisterAccountInput{ExternalID: "123456789"})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, snap.ID)
		assert.Equal(t, account.StateIdle, snap.State)
	})

	t.Run("loses first-contact race gracefully", func(t *testing.T) {
		uc, repo := newAccountCommands(t)

		winner := accountSnap(uuid.New(), account.StateAwaitingEmail)
		gomock.InOrder(
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(nil, notFoundErr()),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).
				Return(infra.WrapRepoErr("create account", errs.New("duplicate key"), infra.KindDuplicateKey)),
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(winner, nil),
		)

		snap, err := uc.Register(context.Background(), commands.RegisterAccountInput{ExternalID: "123456789"})
		require.NoError(t, err)
		assert.Equal(t, winner.ID, snap.ID)
	})
}

func TestSetEmail(t *testing.T) {
	t.Run("stores normalized address", func(t *testing.T) {
		uc, repo := newAccountCommands(t)
		accountID := uuid.New()

		snap := accountSnap(accountID, account.StateAwaitingEmail)
		snap.Email = nil
		updated := accountSnap(accountID, account.StateIdle)

		gomock.InOrder(
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(snap, nil),
			repo.EXPECT().UpdateEmail(gomock.Any(), accountID, "buyer@example.com").Return(nil),
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(updated, nil),
		)

		result, err := uc.SetEmail(context.Background(), "123456789", "  buyer@example.com ")
		require.NoError(t, err)
		assert.Equal(t, account.StateIdle, result.State)
	})

	t.Run("rejects malformed address", func(t *testing.T) {
		uc, repo := newAccountCommands(t)
		repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
			Return(accountSnap(uuid.New(), account.StateAwaitingEmail), nil)

		_, err := uc.SetEmail(context.Background(), "123456789", "not-an-email")
		assert.ErrorIs(t, err, account.ErrInvalidEmail)
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, repo := newAccountCommands(t)
		repo.EXPECT().FindByExternalID(gomock.Any(), "nobody").Return(nil, notFoundErr())

		_, err := uc.SetEmail(context.Background(), "nobody", "buyer@example.com")
		assert.ErrorIs(t, err, commands.ErrAccountNotFound)
	})
}

func TestBeginAmountEntry(t *testing.T) {
	t.Run("moves conversation to awaiting amount", func(t *testing.T) {
		uc, repo := newAccountCommands(t)
		accountID := uuid.New()

		updated := accountSnap(accountID, account.StateAwaitingAmount)
		gomock.InOrder(
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").
				Return(accountSnap(accountID, account.StateIdle), nil),
			repo.EXPECT().UpdateConversationState(gomock.Any(), accountID, account.StateAwaitingAmount).Return(nil),
			repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(updated, nil),
		)

		snap, err := uc.BeginAmountEntry(context.Background(), "123456789")
		require.NoError(t, err)
		assert.Equal(t, account.StateAwaitingAmount, snap.State)
	})

	t.Run("refuses without an email on file", func(t *testing.T) {
		uc, repo := newAccountCommands(t)

		snap := accountSnap(uuid.New(), account.StateAwaitingEmail)
		snap.Email = nil
		repo.EXPECT().FindByExternalID(gomock.Any(), "123456789").Return(snap, nil)

		_, err := uc.BeginAmountEntry(context.Background(), "123456789")
		assert.ErrorIs(t, err, commands.ErrEmailRequired)
	})
}
