package repository

import (
	"context"

	"couponbot/internal/infra"
	"couponbot/internal/infra/db"
	"couponbot/internal/usecase/commands"
)

type AdminRepository struct {
	db db.DBTX
}

func NewAdminRepository(dbtx db.DBTX) *AdminRepository {
	return &AdminRepository{db: dbtx}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*commands.AdminSnapshot, error) {
	var snap commands.AdminSnapshot

	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, role
		FROM admins
		WHERE username = $1`,
		username,
	)
	err := row.Scan(&snap.ID, &snap.Username, &snap.PasswordHash, &snap.Role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find admin", err)
	}
	return &snap, nil
}
