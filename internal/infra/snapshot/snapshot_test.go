//go:build unit

package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra/memstore"
	"rental-pos/internal/infra/snapshot"
	"rental-pos/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("load from a missing file returns nil state", func(t *testing.T) {
		store := snapshot.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
		state, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("save then load round-trips the full state", func(t *testing.T) {
		ctx := context.Background()
		savedAt := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

		catalogStore := memstore.NewCatalogStore()
		zone, item, err := builder.NewCatalogBuilder().BuildZone()
		require.NoError(t, err)
		require.NoError(t, catalogStore.InsertZone(ctx, zone))
		product, err := builder.NewCatalogBuilder().BuildProduct()
		require.NoError(t, err)
		require.NoError(t, catalogStore.InsertProduct(ctx, product))

		sessionStore := memstore.NewSessionStore()
		start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		b := builder.NewSessionBuilder()
		b.ItemID = item.ID()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, sessionStore.Insert(ctx, sess))

		closedBuilder := builder.NewSessionBuilder()
		closedBuilder.Room = "R2"
		closedBuilder.ItemID = item.ID()
		closedBuilder.StartTime = start
		closed, err := closedBuilder.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, sessionStore.Insert(ctx, closed))
		require.NoError(t, sessionStore.Mutate(ctx, closed.ID(), func(s *session.Session) error {
			_, ferr := s.Finalize(start.Add(90 * time.Minute))
			return ferr
		}))

		fileStore := snapshot.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
		state, err := snapshot.Capture(catalogStore, sessionStore, savedAt)
		require.NoError(t, err)
		require.NoError(t, fileStore.Save(state))

		loaded, err := fileStore.Load()
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.True(t, loaded.SavedAt.Equal(savedAt))
		if diff := cmp.Diff(state.Zones, loaded.Zones); diff != "" {
			t.Errorf("zones mismatch (-saved +loaded):\n%s", diff)
		}
		if diff := cmp.Diff(state.Products, loaded.Products); diff != "" {
			t.Errorf("products mismatch (-saved +loaded):\n%s", diff)
		}
		require.Len(t, loaded.Sessions, 2)

		// the frozen total replays identically from the loaded snapshot
		var loadedClosed *session.Snapshot
		for i := range loaded.Sessions {
			if loaded.Sessions[i].ID == closed.ID() {
				loadedClosed = &loaded.Sessions[i]
			}
		}
		require.NotNil(t, loadedClosed)
		require.NotNil(t, loadedClosed.FinalTotalCents)
		replayed, err := loadedClosed.AccruedCents(*loadedClosed.EndTime)
		require.NoError(t, err)
		assert.Equal(t, *loadedClosed.FinalTotalCents, replayed)
	})

	t.Run("restore repopulates both stores", func(t *testing.T) {
		ctx := context.Background()

		catalogStore := memstore.NewCatalogStore()
		zone, item, err := builder.NewCatalogBuilder().BuildZone()
		require.NoError(t, err)
		require.NoError(t, catalogStore.InsertZone(ctx, zone))

		sessionStore := memstore.NewSessionStore()
		b := builder.NewSessionBuilder()
		b.ItemID = item.ID()
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, sessionStore.Insert(ctx, sess))

		state, err := snapshot.Capture(catalogStore, sessionStore, time.Now())
		require.NoError(t, err)

		freshCatalog := memstore.NewCatalogStore()
		freshSessions := memstore.NewSessionStore()
		require.NoError(t, snapshot.Restore(state, freshCatalog, freshSessions))

		zones, err := freshCatalog.ListZones(ctx)
		require.NoError(t, err)
		assert.Len(t, zones, 1)

		snap, err := freshSessions.Get(ctx, sess.ID())
		require.NoError(t, err)
		assert.Equal(t, sess.Room(), snap.Room)
	})
}
