package components

import (
	"rental-pos/internal/infra/memstore"
	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"

	"go.uber.org/fx"
)

// StoreModule wires the in-memory stores to both the command and query side
// ports. One instance of each store backs every port it serves.
var StoreModule = fx.Module("store",
	fx.Provide(
		memstore.NewCatalogStore,
		memstore.NewSessionStore,
		memstore.NewUserStore,
		fx.Annotate(
			func(s *memstore.CatalogStore) *memstore.CatalogStore { return s },
			fx.As(new(commands.CatalogStore)),
		),
		fx.Annotate(
			func(s *memstore.CatalogStore) *memstore.CatalogStore { return s },
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			func(s *memstore.SessionStore) *memstore.SessionStore { return s },
			fx.As(new(commands.SessionStore)),
		),
		fx.Annotate(
			func(s *memstore.SessionStore) *memstore.SessionStore { return s },
			fx.As(new(queries.SessionReadStore)),
		),
		fx.Annotate(
			func(s *memstore.UserStore) *memstore.UserStore { return s },
			fx.As(new(commands.UserStore)),
		),
		fx.Annotate(
			func(s *memstore.UserStore) *memstore.UserStore { return s },
			fx.As(new(queries.UserReadStore)),
		),
	),
)
