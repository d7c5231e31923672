package commands

//go:generate mockgen -source=merchant.go -destination=../../../tests/mock/commands/mock_merchant.go -package=mock_commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"couponbot/internal/domain/merchant"
	"couponbot/internal/infra"
	"couponbot/internal/pkg/clock"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/pkg/signature"

	"github.com/google/uuid"
)

var ErrMerchantUnauthorized = errs.New("merchant authentication failed")

const publicKeyPrefix = "mk_"

// MerchantIdentity is the authenticated caller handed from the signature
// gate to the redemption path.
type MerchantIdentity struct {
	ID         uuid.UUID
	Name       string
	Secret     string
	WebhookURL *string
}

// MerchantAuthenticator verifies the X-Api-Key / X-Signature pair against
// the stored merchant secret. Unknown key and bad signature are not
// distinguishable to the caller.
type MerchantAuthenticator interface {
	Authenticate(ctx context.Context, publicKey string, body []byte, providedSig string) (*MerchantIdentity, error)
}

type ProvisionMerchantInput struct {
	Name       string
	WebhookURL *string
}

// ProvisionMerchantResult is the only place the secret is ever returned.
type ProvisionMerchantResult struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PublicKey  string    `json:"publicKey"`
	Secret     string    `json:"secret"`
	WebhookURL *string   `json:"webhookUrl,omitempty"`
}

type MerchantCommands interface {
	Provision(ctx context.Context, input ProvisionMerchantInput) (*ProvisionMerchantResult, error)
}

type merchantCommandsImpl struct {
	merchantRepo MerchantRepository
	clock        clock.Clock
}

func NewMerchantCommands(merchantRepo MerchantRepository, clk clock.Clock) MerchantCommands {
	return &merchantCommandsImpl{merchantRepo: merchantRepo, clock: clk}
}

func (u *merchantCommandsImpl) Provision(ctx context.Context, input ProvisionMerchantInput) (*ProvisionMerchantResult, error) {
	publicKey, err := randomToken(publicKeyPrefix, 12)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate public key")
	}
	secret, err := randomToken("", 32)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate secret")
	}

	m, err := merchant.NewMerchant(input.Name, publicKey, secret, input.WebhookURL, u.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := u.merchantRepo.Create(ctx, m); err != nil {
		return nil, errs.Wrap(err, "failed to create merchant")
	}

	return &ProvisionMerchantResult{
		ID:         m.ID(),
		Name:       m.Name(),
		PublicKey:  m.PublicKey(),
		Secret:     m.Secret(),
		WebhookURL: m.WebhookURL(),
	}, nil
}

func randomToken(prefix string, byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return prefix + hex.EncodeToString(buf), nil
}

type merchantAuthenticatorImpl struct {
	merchantRepo MerchantRepository
}

func NewMerchantAuthenticator(merchantRepo MerchantRepository) MerchantAuthenticator {
	return &merchantAuthenticatorImpl{merchantRepo: merchantRepo}
}

func (a *merchantAuthenticatorImpl) Authenticate(ctx context.Context, publicKey string, body []byte, providedSig string) (*MerchantIdentity, error) {
	if publicKey == "" || providedSig == "" {
		return nil, ErrMerchantUnauthorized
	}

	snap, err := a.merchantRepo.FindByPublicKey(ctx, publicKey)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrMerchantUnauthorized
		}
		return nil, errs.Wrap(err, "failed to find merchant")
	}

	if !signature.VerifyBody(snap.Secret, body, providedSig) {
		return nil, ErrMerchantUnauthorized
	}

	return &MerchantIdentity{
		ID:         snap.ID,
		Name:       snap.Name,
		Secret:     snap.Secret,
		WebhookURL: snap.WebhookURL,
	}, nil
}
