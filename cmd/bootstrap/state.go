package bootstrap

import (
	"context"
	"log/slog"

	"rental-pos/internal/domain/user"
	"rental-pos/internal/infra"
	"rental-pos/internal/infra/memstore"
	"rental-pos/internal/infra/snapshot"
	"rental-pos/internal/pkg/clock"
	"rental-pos/internal/pkg/config"
	"rental-pos/internal/pkg/password"

	"go.uber.org/fx"
)

// StateModule seeds the bootstrap admin account and, when a snapshot path is
// configured, round-trips the catalog and session state through the file store.
var StateModule = fx.Module("state",
	fx.Provide(
		NewSnapshotStore,
	),
	fx.Invoke(
		SeedAdminUser,
		RegisterSnapshotLifecycle,
	),
)

func NewSnapshotStore(cfg config.Config) *snapshot.FileStore {
	if cfg.Snapshot.Path == "" {
		return nil
	}
	return snapshot.NewFileStore(cfg.Snapshot.Path)
}

func SeedAdminUser(cfg config.Config, users *memstore.UserStore) error {
	email, err := user.NewEmail(cfg.Admin.Email)
	if err != nil {
		return err
	}
	hash, err := password.Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}

	if _, err := users.Create(context.Background(), email, hash, user.RoleAdmin); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil
		}
		return err
	}

	slog.Info("admin account seeded", "email", cfg.Admin.Email)
	return nil
}

func RegisterSnapshotLifecycle(lc fx.Lifecycle, store *snapshot.FileStore, catalogStore *memstore.CatalogStore, sessionStore *memstore.SessionStore, clk clock.Clock) {
	if store == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			state, err := store.Load()
			if err != nil {
				return err
			}
			if state == nil {
				return nil
			}
			if err := snapshot.Restore(*state, catalogStore, sessionStore); err != nil {
				return err
			}
			slog.Info("state restored from snapshot", "saved_at", state.SavedAt)
			return nil
		},
		OnStop: func(_ context.Context) error {
			state, err := snapshot.Capture(catalogStore, sessionStore, clk.Now())
			if err != nil {
				return err
			}
			if err := store.Save(state); err != nil {
				return err
			}
			slog.Info("state saved to snapshot", "saved_at", state.SavedAt)
			return nil
		},
	})
}
