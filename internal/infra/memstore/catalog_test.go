//go:build unit

package memstore_test

import (
	"context"
	"testing"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/infra"
	"rental-pos/internal/infra/memstore"
	"rental-pos/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) (*memstore.CatalogStore, *catalog.Zone, *catalog.ZoneItem, *catalog.Product) {
	t.Helper()
	ctx := context.Background()
	store := memstore.NewCatalogStore()

	zone, item, err := builder.NewCatalogBuilder().BuildZone()
	require.NoError(t, err)
	require.NoError(t, store.InsertZone(ctx, zone))

	product, err := builder.NewCatalogBuilder().BuildProduct()
	require.NoError(t, err)
	require.NoError(t, store.InsertProduct(ctx, product))

	return store, zone, item, product
}

func TestCatalogStoreZones(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate zone key conflicts", func(t *testing.T) {
		store, _, _, _ := seedCatalog(t)
		dup, err := catalog.NewZone("karaoke", "Another Karaoke")
		require.NoError(t, err)

		err = store.InsertZone(ctx, dup)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("insert item into missing zone fails", func(t *testing.T) {
		store, _, _, _ := seedCatalog(t)
		price, err := catalog.NewMoney(100)
		require.NoError(t, err)
		item, err := catalog.NewZoneItem("Room X", price)
		require.NoError(t, err)

		err = store.InsertItem(ctx, "no-such-zone", item)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("patch edits label and price in place", func(t *testing.T) {
		store, zone, item, _ := seedCatalog(t)
		label := "Karaoke Room B"
		price, err := catalog.NewMoney(20000)
		require.NoError(t, err)

		require.NoError(t, store.PatchItem(ctx, zone.Key(), item.ID(), &label, &price))

		zones, err := store.ListZones(ctx)
		require.NoError(t, err)
		require.Len(t, zones, 1)
		require.Len(t, zones[0].Items, 1)
		assert.Equal(t, label, zones[0].Items[0].Label)
		assert.Equal(t, int64(20000), zones[0].Items[0].DefaultPriceCents)
	})

	t.Run("delete item then resolve rate fails", func(t *testing.T) {
		store, zone, item, _ := seedCatalog(t)
		require.NoError(t, store.DeleteItem(ctx, zone.Key(), item.ID()))

		_, _, err := store.ItemRate(ctx, zone.Key(), item.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestCatalogStoreProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("product snapshot is point in time", func(t *testing.T) {
		store, _, _, product := seedCatalog(t)

		before, err := store.ProductByID(ctx, product.ID())
		require.NoError(t, err)

		price, err := catalog.NewMoney(9999)
		require.NoError(t, err)
		require.NoError(t, store.PatchProduct(ctx, product.ID(), nil, &price))

		after, err := store.ProductByID(ctx, product.ID())
		require.NoError(t, err)

		assert.Equal(t, int64(1500), before.PriceCents)
		assert.Equal(t, int64(9999), after.PriceCents)
	})

	t.Run("delete product removes it from listings", func(t *testing.T) {
		store, _, _, product := seedCatalog(t)
		require.NoError(t, store.DeleteProduct(ctx, product.ID()))

		products, err := store.ListProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		assert.True(t, infra.IsKind(store.DeleteProduct(ctx, product.ID()), infra.KindNotFound))
	})

	t.Run("unknown product id fails with not found", func(t *testing.T) {
		store, _, _, _ := seedCatalog(t)
		_, err := store.ProductByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestCatalogStoreImport(t *testing.T) {
	ctx := context.Background()

	t.Run("import rebuilds listings in snapshot order", func(t *testing.T) {
		store, _, _, _ := seedCatalog(t)
		second, err := catalog.NewZone("billiard", "Billiard")
		require.NoError(t, err)
		require.NoError(t, store.InsertZone(ctx, second))

		zones, err := store.ListZones(ctx)
		require.NoError(t, err)
		products, err := store.ListProducts(ctx)
		require.NoError(t, err)

		restored := memstore.NewCatalogStore()
		restored.ImportState(zones, products)

		gotZones, err := restored.ListZones(ctx)
		require.NoError(t, err)
		require.Len(t, gotZones, 2)
		assert.Equal(t, "karaoke", gotZones[0].Key)
		assert.Equal(t, "billiard", gotZones[1].Key)

		gotProducts, err := restored.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, gotProducts, 1)
	})
}
