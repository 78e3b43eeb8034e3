package bootstrap

import (
	"rental-pos/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
	StateModule,
)
