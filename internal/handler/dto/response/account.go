package response

import (
	"time"

	"couponbot/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      *string   `json:"email,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	State      string    `json:"conversationState"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewAccountResponse(snap *commands.AccountSnapshot) AccountResponse {
	var resp AccountResponse
	_ = copier.Copy(&resp, snap)
	resp.State = snap.State.String()
	return resp
}
