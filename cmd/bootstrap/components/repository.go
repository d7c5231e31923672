package components

import (
	"couponbot/internal/infra/db"
	repo_impl "couponbot/internal/infra/repository"
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			repo_impl.NewAccountRepository,
			fx.As(new(commands.AccountRepository)),
		),
		fx.Annotate(
			repo_impl.NewMerchantRepository,
			fx.As(new(commands.MerchantRepository)),
		),
		fx.Annotate(
			repo_impl.NewAdminRepository,
			fx.As(new(commands.AdminRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			repo_impl.NewOrderReader,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			repo_impl.NewAccountReader,
			fx.As(new(queries.AccountReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
