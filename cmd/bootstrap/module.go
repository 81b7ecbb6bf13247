package bootstrap

import (
	"bistro-reserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	ScheduleModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
