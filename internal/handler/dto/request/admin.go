package request

import "couponbot/internal/usecase/commands"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

type ProvisionMerchantRequest struct {
	Name       string  `json:"name" binding:"required"`
	WebhookURL *string `json:"webhookUrl"`
}

func (r *ProvisionMerchantRequest) ToInput() commands.ProvisionMerchantInput {
	return commands.ProvisionMerchantInput{
		Name:       r.Name,
		WebhookURL: r.WebhookURL,
	}
}
