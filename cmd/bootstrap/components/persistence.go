package components

import (
	"bistro-reserve/internal/infra/db"
	"bistro-reserve/internal/infra/readstore"
	"bistro-reserve/internal/infra/uow"
	"bistro-reserve/internal/usecase/commands"
	"bistro-reserve/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork binds command repositories to its transaction.
		uow.NewPostgresUoW,
		// Slot occupancy
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
			fx.As(new(commands.SlotReads)),
		),
		// Table registry
		fx.Annotate(
			readstore.NewTableReadStore,
			fx.As(new(queries.TableReadStore)),
			fx.As(new(commands.TableReads)),
		),
		// Reservation views
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
