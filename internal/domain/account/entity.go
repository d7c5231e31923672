package account

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyExternalID = errors.New("external id cannot be empty")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmailUnchanged  = errors.New("email is already set to this address")
	ErrInvalidState    = errors.New("invalid conversation state")
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ConversationState is the buyer's position in the purchase dialogue,
// persisted with the account so callback redelivery on another instance
// sees the same state.
type ConversationState string

const (
	StateAwaitingEmail  ConversationState = "awaiting_email"
	StateAwaitingAmount ConversationState = "awaiting_amount"
	StateIdle           ConversationState = "idle"
)

func NewConversationState(raw string) (ConversationState, error) {
	switch ConversationState(raw) {
	case StateAwaitingEmail, StateAwaitingAmount, StateIdle:
		return ConversationState(raw), nil
	default:
		return ConversationState(""), ErrInvalidState
	}
}

func (s ConversationState) String() string {
	return string(s)
}

type Email string

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if !emailRegex.MatchString(trimmed) {
		return Email(""), ErrInvalidEmail
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

// Account is a buyer, keyed by the immutable platform identifier. Created
// on first contact; the email is added once the buyer supplies it.
type Account struct {
	id         uuid.UUID
	externalID string
	email      *Email
	firstName  *string
	lastName   *string
	state      ConversationState
	createdAt  time.Time
	updatedAt  time.Time
}

func NewAccount(externalID string, firstName, lastName *string, now time.Time) (*Account, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, ErrEmptyExternalID
	}

	return &Account{
		id:         uuid.New(),
		externalID: externalID,
		firstName:  firstName,
		lastName:   lastName,
		state:      StateAwaitingEmail,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	externalID string,
	email *Email,
	firstName, lastName *string,
	state ConversationState,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		id:         id,
		externalID: externalID,
		email:      email,
		firstName:  firstName,
		lastName:   lastName,
		state:      state,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// SetEmail records the buyer's address and moves the dialogue to idle.
func (a *Account) SetEmail(email Email, now time.Time) {
	a.email = &email
	a.state = StateIdle
	a.updatedAt = now
}

// BeginAmountEntry marks that the next free-text message is a custom
// coupon amount.
func (a *Account) BeginAmountEntry(now time.Time) {
	a.state = StateAwaitingAmount
	a.updatedAt = now
}

// ResetConversation returns the dialogue to idle, e.g. after an order was
// created from the awaited amount.
func (a *Account) ResetConversation(now time.Time) {
	a.state = StateIdle
	a.updatedAt = now
}

// DisplayName joins whatever name parts exist, for checkout prefill.
func (a *Account) DisplayName() string {
	parts := make([]string, 0, 2)
	if a.firstName != nil && *a.firstName != "" {
		parts = append(parts, *a.firstName)
	}
	if a.lastName != nil && *a.lastName != "" {
		parts = append(parts, *a.lastName)
	}
	return strings.Join(parts, " ")
}

func (a *Account) ID() uuid.UUID            { return a.id }
func (a *Account) ExternalID() string       { return a.externalID }
func (a *Account) Email() *Email            { return a.email }
func (a *Account) FirstName() *string       { return a.firstName }
func (a *Account) LastName() *string        { return a.lastName }
func (a *Account) State() ConversationState { return a.state }
func (a *Account) CreatedAt() time.Time     { return a.createdAt }
func (a *Account) UpdatedAt() time.Time     { return a.updatedAt }
