package request

import "couponbot/internal/usecase/commands"

type RegisterAccountRequest struct {
	ExternalID string  `json:"externalId" binding:"required"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
}

func (r *RegisterAccountRequest) ToInput() commands.RegisterAccountInput {
	return commands.RegisterAccountInput{
		ExternalID: r.ExternalID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
	}
}

type SetEmailRequest struct {
	Email string `json:"email" binding:"required"`
}
