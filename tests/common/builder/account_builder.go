//go:build unit || e2e

package builder

import (
	reqdto "couponbot/internal/handler/dto/request"
)

type AccountBuilder struct {
	ExternalID string
	Email      string
	FirstName  *string
	LastName   *string
}

func NewAccountBuilder() *AccountBuilder {
	first := "Asha"
	return &AccountBuilder{
		ExternalID: "tg-100001",
		Email:      "buyer@example.com",
		FirstName:  &first,
	}
}

func (a *AccountBuilder) WithExternalID(externalID string) *AccountBuilder {
	a.ExternalID = externalID
	return a
}

func (a *AccountBuilder) WithEmail(email string) *AccountBuilder {
	a.Email = email
	return a
}

func (a *AccountBuilder) BuildRegisterDTO() reqdto.RegisterAccountRequest {
	return reqdto.RegisterAccountRequest{
		ExternalID: a.ExternalID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
	}
}

func (a *AccountBuilder) BuildSetEmailDTO() reqdto.SetEmailRequest {
	return reqdto.SetEmailRequest{
		Email: a.Email,
	}
}
