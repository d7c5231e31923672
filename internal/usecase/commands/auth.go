package commands

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/mock_auth.go -package=mock_commands

import (
	"context"

	"couponbot/internal/infra"
	"couponbot/internal/pkg/errs"
	"couponbot/internal/pkg/jwt"
	"couponbot/internal/pkg/password"
)

var ErrAuthenticationFailed = errs.New("authentication failed")

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type AuthCommands interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	adminRepo AdminRepository
	jwtSvc    *jwt.Service
}

func NewAuthCommands(adminRepo AdminRepository, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{adminRepo: adminRepo, jwtSvc: jwtSvc}
}

func (u *authCommandsImpl) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := u.adminRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, errs.Wrap(err, "failed to find admin")
	}

	if err := password.ComparePassword(admin.PasswordHash, input.Password); err != nil {
		return nil, ErrAuthenticationFailed
	}

	token, err := u.jwtSvc.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, Role: admin.Role}, nil
}
