package merchant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("merchant name cannot be empty")
	ErrEmptyCredentials = errors.New("merchant requires a public key and secret")
)

// Merchant is a redemption partner. The secret never leaves the
// verification gate; callers identify themselves with the public key.
type Merchant struct {
	id         uuid.UUID
	name       string
	publicKey  string
	secret     string
	webhookURL *string
	createdAt  time.Time
}

func NewMerchant(name, publicKey, secret string, webhookURL *string, now time.Time) (*Merchant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if publicKey == "" || secret == "" {
		return nil, ErrEmptyCredentials
	}

	return &Merchant{
		id:         uuid.New(),
		name:       name,
		publicKey:  publicKey,
		secret:     secret,
		webhookURL: webhookURL,
		createdAt:  now,
	}, nil
}

func Reconstruct(id uuid.UUID, name, publicKey, secret string, webhookURL *string, createdAt time.Time) *Merchant {
	return &Merchant{
		id:         id,
		name:       name,
		publicKey:  publicKey,
		secret:     secret,
		webhookURL: webhookURL,
		createdAt:  createdAt,
	}
}

func (m *Merchant) ID() uuid.UUID        { return m.id }
func (m *Merchant) Name() string         { return m.name }
func (m *Merchant) PublicKey() string    { return m.publicKey }
func (m *Merchant) Secret() string       { return m.secret }
func (m *Merchant) WebhookURL() *string  { return m.webhookURL }
func (m *Merchant) CreatedAt() time.Time { return m.createdAt }
