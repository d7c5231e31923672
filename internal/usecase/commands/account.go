package commands

//go:generate mockgen -source=account.go -destination=../../../tests/mock/commands/mock_account.go -package=mock_commands

import (
	"context"

	"couponbot/internal/domain/account"
	"couponbot/internal/infra"
	"couponbot/internal/pkg/clock"
	"couponbot/internal/pkg/errs"
)

var ErrEmailRequired = errs.New("account has no email on file")

type RegisterAccountInput struct {
	ExternalID string
	FirstName  *string
	LastName   *string
}

type AccountCommands interface {
	// Register creates the account on first contact; repeat calls return
	// the existing row untouched.
	Register(ctx context.Context, input RegisterAccountInput) (*AccountSnapshot, error)
	SetEmail(ctx context.Context, externalID, rawEmail string) (*AccountSnapshot, error)
	// BeginAmountEntry moves the conversation to awaiting_amount; it
	// refuses until an email is on file.
	BeginAmountEntry(ctx context.Context, externalID string) (*AccountSnapshot, error)
}

type accountCommandsImpl struct {
	accountRepo AccountRepository
	clock       clock.Clock
}

func NewAccountCommands(accountRepo AccountRepository, clk clock.Clock) AccountCommands {
	return &accountCommandsImpl{accountRepo: accountRepo, clock: clk}
}

func (u *accountCommandsImpl) Register(ctx context.Context, input RegisterAccountInput) (*AccountSnapshot, error) {
	existing, err := u.accountRepo.FindByExternalID(ctx, input.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Wrap(err, "failed to find account")
	}

	a, err := account.NewAccount(input.ExternalID, input.FirstName, input.LastName, u.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := u.accountRepo.Create(ctx, a); err != nil {
		// Concurrent first contact: the other writer won, read it back.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return u.accountRepo.FindByExternalID(ctx, input.ExternalID)
		}
		return nil, errs.Wrap(err, "failed to create account")
	}

	return u.accountRepo.FindByExternalID(ctx, input.ExternalID)
}

func (u *accountCommandsImpl) SetEmail(ctx context.Context, externalID, rawEmail string) (*AccountSnapshot, error) {
	snap, err := u.accountRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAccountNotFound)
		}
		return nil, errs.Wrap(err, "failed to find account")
	}

	email, err := account.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	if err := u.accountRepo.UpdateEmail(ctx, snap.ID, email.String()); err != nil {
		return nil, errs.Wrap(err, "failed to update email")
	}

	return u.accountRepo.FindByExternalID(ctx, externalID)
}

func (u *accountCommandsImpl) BeginAmountEntry(ctx context.Context, externalID string) (*AccountSnapshot, error) {
	snap, err := u.accountRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAccountNotFound)
		}
		return nil, errs.Wrap(err, "failed to find account")
	}

	if snap.Email == nil {
		return nil, ErrEmailRequired
	}

	if err := u.accountRepo.UpdateConversationState(ctx, snap.ID, account.StateAwaitingAmount); err != nil {
		return nil, errs.Wrap(err, "failed to update conversation state")
	}

	return u.accountRepo.FindByExternalID(ctx, externalID)
}
