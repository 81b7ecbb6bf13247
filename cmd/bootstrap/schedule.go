package bootstrap

import (
	"bistro-reserve/internal/domain/schedule"
	"bistro-reserve/internal/pkg/config"

	"go.uber.org/fx"
)

var ScheduleModule = fx.Module("schedule",
	fx.Provide(
		NewDailySchedule,
	),
)

func NewDailySchedule(cfg config.Config) (*schedule.DailySchedule, error) {
	closed := schedule.ClosedWeekdays(cfg.Restaurant.ClosedWeekdays)
	return schedule.New(
		cfg.Restaurant.TimeZone,
		cfg.Restaurant.StartTimes,
		cfg.Restaurant.SlotDuration,
		closed,
	)
}
