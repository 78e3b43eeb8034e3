//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-pos/internal/infra/memstore"
	"rental-pos/internal/pkg/clock"
	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"
	"rental-pos/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	cmds      commands.SessionCommands
	q         queries.SessionQueries
	clk       *clock.MockClock
	catalog   *memstore.CatalogStore
	itemID    uuid.UUID
	productID uuid.UUID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctx := context.Background()

	catalogStore := memstore.NewCatalogStore()
	zone, item, err := builder.NewCatalogBuilder().BuildZone()
	require.NoError(t, err)
	require.NoError(t, catalogStore.InsertZone(ctx, zone))
	product, err := builder.NewCatalogBuilder().BuildProduct()
	require.NoError(t, err)
	require.NoError(t, catalogStore.InsertProduct(ctx, product))

	sessionStore := memstore.NewSessionStore()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	return &sessionFixture{
		cmds:      commands.NewSessionCommands(sessionStore, catalogStore, clk),
		q:         queries.NewSessionQueries(sessionStore, clk),
		clk:       clk,
		catalog:   catalogStore,
		itemID:    item.ID(),
		productID: product.ID(),
	}
}

func (f *sessionFixture) start(t *testing.T, room string) uuid.UUID {
	t.Helper()
	result, err := f.cmds.Start(context.Background(), commands.StartSessionInput{
		Room:         room,
		CustomerName: "Somchai",
		ZoneKey:      "karaoke",
		ItemID:       f.itemID,
	})
	require.NoError(t, err)
	return result.SessionID
}

func TestSessionCommandsStart(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the rate history from the catalog", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		view, err := f.q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), view.CurrentRateCents)
		require.Len(t, view.RateHistory, 1)
		assert.Equal(t, "Karaoke Room A", view.ItemLabel)
	})

	t.Run("unknown item fails", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.cmds.Start(ctx, commands.StartSessionInput{
			Room:         "R1",
			CustomerName: "Somchai",
			ZoneKey:      "karaoke",
			ItemID:       uuid.New(),
		})
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("occupied room fails", func(t *testing.T) {
		f := newSessionFixture(t)
		f.start(t, "R1")

		_, err := f.cmds.Start(ctx, commands.StartSessionInput{
			Room:         "R1",
			CustomerName: "Malee",
			ZoneKey:      "karaoke",
			ItemID:       f.itemID,
		})
		assert.ErrorIs(t, err, commands.ErrRoomOccupied)
	})

	t.Run("blank room fails validation", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.cmds.Start(ctx, commands.StartSessionInput{
			Room:         "   ",
			CustomerName: "Somchai",
			ZoneKey:      "karaoke",
			ItemID:       f.itemID,
		})
		assert.ErrorIs(t, err, commands.ErrInvalidSession)
	})
}

func TestSessionCommandsBilling(t *testing.T) {
	ctx := context.Background()

	t.Run("override at half time changes accrual from then on", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		f.clk.Add(30 * time.Minute)
		require.NoError(t, f.cmds.OverrideRate(ctx, id, 15000))

		f.clk.Add(30 * time.Minute)
		view, err := f.q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(12500), view.AccruedCents)
	})

	t.Run("negative override is rejected without touching history", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		err := f.cmds.OverrideRate(ctx, id, -100)
		assert.ErrorIs(t, err, commands.ErrInvalidPrice)

		view, verr := f.q.GetByID(ctx, id)
		require.NoError(t, verr)
		assert.Len(t, view.RateHistory, 1)
	})

	t.Run("charge freezes the product price at add time", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		require.NoError(t, f.cmds.AddCharge(ctx, id, commands.AddChargeInput{ProductID: f.productID, Quantity: 2}))

		// repricing the product afterwards must not reach the recorded charge
		newPrice := int64(9900)
		catalogCmds := commands.NewCatalogCommands(f.catalog)
		require.NoError(t, catalogCmds.UpdateProduct(ctx, f.productID, commands.UpdateProductInput{PriceCents: &newPrice}))

		view, err := f.q.GetByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, view.ProductCharges, 1)
		assert.Equal(t, int64(1500), view.ProductCharges[0].UnitPriceCents)
		assert.Equal(t, int64(3000), view.ProductCharges[0].TotalCents)
	})

	t.Run("charge validation", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		err := f.cmds.AddCharge(ctx, id, commands.AddChargeInput{ProductID: f.productID, Quantity: 0})
		assert.ErrorIs(t, err, commands.ErrInvalidQuantity)

		err = f.cmds.AddCharge(ctx, id, commands.AddChargeInput{ProductID: uuid.New(), Quantity: 1})
		assert.ErrorIs(t, err, commands.ErrProductNotFound)

		err = f.cmds.RemoveCharge(ctx, id, 5)
		assert.ErrorIs(t, err, commands.ErrChargeNotFound)
	})

	t.Run("item price edits never reach running sessions", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		newPrice := int64(99999)
		catalogCmds := commands.NewCatalogCommands(f.catalog)
		require.NoError(t, catalogCmds.UpdateItem(ctx, "karaoke", f.itemID, commands.UpdateItemInput{DefaultPriceCents: &newPrice}))

		f.clk.Add(time.Hour)
		view, err := f.q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), view.AccruedCents)

		// a new session picks up the edited price
		id2 := f.start(t, "R2")
		view2, err := f.q.GetByID(ctx, id2)
		require.NoError(t, err)
		assert.Equal(t, newPrice, view2.CurrentRateCents)
	})
}

func TestSessionCommandsFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("finalize freezes the total and frees the room", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		f.clk.Add(time.Hour)
		result, err := f.cmds.Finalize(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), result.TotalCents)

		// the reported total no longer moves with the clock
		f.clk.Add(5 * time.Hour)
		view, err := f.q.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, result.TotalCents, view.AccruedCents)

		// room is free for the next customer
		f.start(t, "R1")
	})

	t.Run("second finalize fails", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")

		f.clk.Add(time.Hour)
		_, err := f.cmds.Finalize(ctx, id)
		require.NoError(t, err)

		_, err = f.cmds.Finalize(ctx, id)
		assert.ErrorIs(t, err, commands.ErrSessionClosed)
	})

	t.Run("mutations on a closed session fail", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")
		f.clk.Add(time.Hour)
		_, err := f.cmds.Finalize(ctx, id)
		require.NoError(t, err)

		assert.ErrorIs(t, f.cmds.OverrideRate(ctx, id, 20000), commands.ErrSessionClosed)
		assert.ErrorIs(t, f.cmds.AddCharge(ctx, id, commands.AddChargeInput{ProductID: f.productID, Quantity: 1}), commands.ErrSessionClosed)
	})

	t.Run("details stay editable after close, room moves re-check occupancy", func(t *testing.T) {
		f := newSessionFixture(t)
		id := f.start(t, "R1")
		f.clk.Add(time.Hour)
		_, err := f.cmds.Finalize(ctx, id)
		require.NoError(t, err)

		method := "cash"
		require.NoError(t, f.cmds.UpdateDetails(ctx, id, commands.UpdateDetailsInput{PaymentMethod: &method}))

		// active session move into an occupied room conflicts
		active := f.start(t, "R2")
		f.start(t, "R3")
		room := "R3"
		err = f.cmds.UpdateDetails(ctx, active, commands.UpdateDetailsInput{Room: &room})
		assert.ErrorIs(t, err, commands.ErrRoomOccupied)
	})

	t.Run("unknown session fails with not found", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.cmds.Finalize(ctx, uuid.New())
		assert.ErrorIs(t, err, commands.ErrSessionNotFound)
	})
}
