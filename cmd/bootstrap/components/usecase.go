package components

import (
	"bistro-reserve/internal/domain/reservation"
	"bistro-reserve/internal/domain/schedule"
	"bistro-reserve/internal/infra/paygate"
	"bistro-reserve/internal/pkg/clock"
	"bistro-reserve/internal/pkg/config"
	"bistro-reserve/internal/usecase"
	"bistro-reserve/internal/usecase/commands"
	"bistro-reserve/internal/usecase/queries"
	"bistro-reserve/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewPaymentGateway,
		fx.As(new(commands.PaymentGateway)),
	),
)

func NewPaymentGateway(cfg config.Config) *paygate.Client {
	return paygate.NewClient(cfg.Payment)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewReservationCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	slotReads commands.SlotReads,
	tableReads commands.TableReads,
	gateway commands.PaymentGateway,
	sched *schedule.DailySchedule,
	clk clock.Clock,
) commands.ReservationCommands {
	policy := reservation.CancellationPolicy{
		AllowFulfilled: cfg.Restaurant.AllowFulfilledCancel,
	}
	return commands.NewReservationCommands(
		uow, slotReads, tableReads, gateway, sched, policy, cfg.Payment.ReturnURL, clk,
	)
}
