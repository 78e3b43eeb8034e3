//go:build unit

package session_test

import (
	"testing"
	"time"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"
	"rental-pos/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, cents int64) catalog.Money {
	t.Helper()
	m, err := catalog.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func TestSession(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewSessionBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "R1", actual.Room())
		assert.Equal(t, session.StatusActive, actual.Status())
		assert.Len(t, actual.RateHistory(), 1)
		assert.Equal(t, b.RateCents, actual.RateHistory()[0].RatePerHour().Cents())
		assert.Nil(t, actual.EndTime())
		assert.Nil(t, actual.FinalTotal())
	})

	t.Run("room and customer name validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.SessionBuilder)
			errIs  error
		}{
			{name: "empty room", mutate: func(b *builder.SessionBuilder) { b.Room = "" }, errIs: session.ErrEmptyRoom},
			{name: "whitespace room", mutate: func(b *builder.SessionBuilder) { b.Room = "   " }, errIs: session.ErrEmptyRoom},
			{name: "empty customer name", mutate: func(b *builder.SessionBuilder) { b.CustomerName = "" }, errIs: session.ErrEmptyCustomerName},
			{name: "trimmed room accepted", mutate: func(b *builder.SessionBuilder) { b.Room = "  R2  " }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				sess, err := builder.NewSessionBuilder().With(tc.mutate).BuildDomain()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, sess)
			})
		}
	})
}

func TestSessionAccrual(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newSession := func(t *testing.T, rateCents int64) *session.Session {
		t.Helper()
		b := builder.NewSessionBuilder()
		b.RateCents = rateCents
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		return sess
	}

	t.Run("single rate for one hour", func(t *testing.T) {
		sess := newSession(t, 10000)

		cost, err := sess.AccruedCost(start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(10000), cost.Cents())
	})

	t.Run("rate override splits accrual at its boundary", func(t *testing.T) {
		// 100.00/hr for 30 min, then 150.00/hr for 30 min: 50.00 + 75.00
		sess := newSession(t, 10000)
		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 15000), start.Add(30*time.Minute)))

		cost, err := sess.AccruedCost(start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(12500), cost.Cents())
	})

	t.Run("product charges add on top of time accrual", func(t *testing.T) {
		sess := newSession(t, 10000)
		charge, err := session.NewProductCharge(uuid.New(), "Singha Beer", 2, mustMoney(t, 1500))
		require.NoError(t, err)
		require.NoError(t, sess.AddProductCharge(charge))

		cost, err := sess.AccruedCost(start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(13000), cost.Cents())
	})

	t.Run("zero elapsed time bills products only", func(t *testing.T) {
		// two products at 25.00 and 55.00: exactly 80.00 with no time cost
		sess := newSession(t, 10000)
		for _, cents := range []int64{2500, 5500} {
			charge, err := session.NewProductCharge(uuid.New(), "snack", 1, mustMoney(t, cents))
			require.NoError(t, err)
			require.NoError(t, sess.AddProductCharge(charge))
		}

		cost, err := sess.AccruedCost(start)
		require.NoError(t, err)
		assert.Equal(t, int64(8000), cost.Cents())
	})

	t.Run("rounding happens once at the end", func(t *testing.T) {
		// 100.00/hr for one second is 2.77... cents, rounded half up to 3
		sess := newSession(t, 10000)

		cost, err := sess.AccruedCost(start.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, int64(3), cost.Cents())
	})

	t.Run("accrual is monotonic while the session runs", func(t *testing.T) {
		sess := newSession(t, 10000)
		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 5000), start.Add(10*time.Minute)))

		var prev int64 = -1
		for _, elapsed := range []time.Duration{0, time.Minute, 10 * time.Minute, 11 * time.Minute, time.Hour, 24 * time.Hour} {
			cost, err := sess.AccruedCost(start.Add(elapsed))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cost.Cents(), prev, "accrual decreased at %s", elapsed)
			prev = cost.Cents()
		}
	})

	t.Run("query before start fails", func(t *testing.T) {
		sess := newSession(t, 10000)

		_, err := sess.AccruedCost(start.Add(-time.Second))
		assert.ErrorIs(t, err, session.ErrTimestampBeforeStart)
	})
}

func TestSessionRateOverride(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	build := func(t *testing.T) *session.Session {
		t.Helper()
		b := builder.NewSessionBuilder()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		return sess
	}

	t.Run("override appends, never rewrites", func(t *testing.T) {
		sess := build(t)
		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 15000), start.Add(30*time.Minute)))

		history := sess.RateHistory()
		require.Len(t, history, 2)
		assert.Equal(t, int64(10000), history[0].RatePerHour().Cents())
		assert.Equal(t, int64(15000), history[1].RatePerHour().Cents())
	})

	t.Run("negative rate is rejected before it reaches the session", func(t *testing.T) {
		sess := build(t)
		_, err := catalog.NewMoney(-1)
		assert.ErrorIs(t, err, catalog.ErrNegativePrice)
		assert.Len(t, sess.RateHistory(), 1)
	})

	t.Run("backward clock pins the entry to the previous one", func(t *testing.T) {
		sess := build(t)
		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 15000), start.Add(30*time.Minute)))
		// clock stepped back below the previous entry
		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 20000), start.Add(10*time.Minute)))

		history := sess.RateHistory()
		require.Len(t, history, 3)
		assert.Equal(t, history[1].EffectiveFrom(), history[2].EffectiveFrom())

		// cost stays well defined and non-negative
		cost, err := sess.AccruedCost(start.Add(time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost.Cents(), int64(0))
	})

	t.Run("override on closed session fails", func(t *testing.T) {
		sess := build(t)
		_, err := sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)

		err = sess.ApplyRateOverride(mustMoney(t, 15000), start.Add(2*time.Hour))
		assert.ErrorIs(t, err, session.ErrSessionClosed)
	})
}

func TestSessionCharges(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	build := func(t *testing.T) *session.Session {
		t.Helper()
		b := builder.NewSessionBuilder()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		return sess
	}

	t.Run("zero or negative quantity is rejected", func(t *testing.T) {
		for _, qty := range []int{0, -1} {
			_, err := session.NewProductCharge(uuid.New(), "snack", qty, mustMoney(t, 100))
			assert.ErrorIs(t, err, session.ErrInvalidQuantity)
		}
	})

	t.Run("remove keeps the order of remaining charges", func(t *testing.T) {
		sess := build(t)
		for _, name := range []string{"first", "second", "third"} {
			charge, err := session.NewProductCharge(uuid.New(), name, 1, mustMoney(t, 100))
			require.NoError(t, err)
			require.NoError(t, sess.AddProductCharge(charge))
		}

		require.NoError(t, sess.RemoveProductCharge(1))

		charges := sess.ProductCharges()
		require.Len(t, charges, 2)
		assert.Equal(t, "first", charges[0].Name())
		assert.Equal(t, "third", charges[1].Name())
	})

	t.Run("remove out of range fails", func(t *testing.T) {
		sess := build(t)
		assert.ErrorIs(t, sess.RemoveProductCharge(0), session.ErrChargeNotFound)
		assert.ErrorIs(t, sess.RemoveProductCharge(-1), session.ErrChargeNotFound)
	})

	t.Run("charges on closed session fail", func(t *testing.T) {
		sess := build(t)
		charge, err := session.NewProductCharge(uuid.New(), "snack", 1, mustMoney(t, 100))
		require.NoError(t, err)
		require.NoError(t, sess.AddProductCharge(charge))

		_, err = sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)

		assert.ErrorIs(t, sess.AddProductCharge(charge), session.ErrSessionClosed)
		assert.ErrorIs(t, sess.RemoveProductCharge(0), session.ErrSessionClosed)
	})
}

func TestSessionFinalize(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	build := func(t *testing.T) *session.Session {
		t.Helper()
		b := builder.NewSessionBuilder()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)
		return sess
	}

	t.Run("finalize freezes the total", func(t *testing.T) {
		sess := build(t)
		total, err := sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(10000), total.Cents())
		assert.Equal(t, session.StatusClosed, sess.Status())
		require.NotNil(t, sess.EndTime())
		require.NotNil(t, sess.FinalTotal())
		assert.Equal(t, total, *sess.FinalTotal())

		// cost queries after the end clamp to the end time
		later, err := sess.AccruedCost(start.Add(10 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, total, later)
	})

	t.Run("second finalize fails", func(t *testing.T) {
		sess := build(t)
		_, err := sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)

		_, err = sess.Finalize(start.Add(2 * time.Hour))
		assert.ErrorIs(t, err, session.ErrSessionClosed)
	})

	t.Run("finalize before start fails", func(t *testing.T) {
		sess := build(t)
		_, err := sess.Finalize(start.Add(-time.Minute))
		assert.ErrorIs(t, err, session.ErrTimestampBeforeStart)
		assert.Equal(t, session.StatusActive, sess.Status())
	})

	t.Run("details remain editable after close", func(t *testing.T) {
		sess := build(t)
		_, err := sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)

		note := "paid in cash"
		method := "cash"
		require.NoError(t, sess.UpdateDetails(nil, nil, &note, &method))
		assert.Equal(t, note, sess.Note())
		assert.Equal(t, method, sess.PaymentMethod())
	})
}

func TestSessionUpdateDetails(t *testing.T) {
	build := func(t *testing.T) *session.Session {
		t.Helper()
		sess, err := builder.NewSessionBuilder().BuildDomain()
		require.NoError(t, err)
		return sess
	}

	t.Run("fields normalize and apply together", func(t *testing.T) {
		sess := build(t)
		name := " Nok "
		room := " R5 "
		require.NoError(t, sess.UpdateDetails(&name, &room, nil, nil))
		assert.Equal(t, "Nok", sess.CustomerName())
		assert.Equal(t, "R5", sess.Room())
	})

	t.Run("one invalid field rejects the whole edit", func(t *testing.T) {
		sess := build(t)
		name := "Someone Else"
		blankRoom := "   "
		err := sess.UpdateDetails(&name, &blankRoom, nil, nil)
		assert.ErrorIs(t, err, session.ErrEmptyRoom)
		assert.Equal(t, "Somchai", sess.CustomerName())
		assert.Equal(t, "R1", sess.Room())

		blankName := "  "
		room := "R5"
		err = sess.UpdateDetails(&blankName, &room, nil, nil)
		assert.ErrorIs(t, err, session.ErrEmptyCustomerName)
		assert.Equal(t, "R1", sess.Room())
	})
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("replaying a stored snapshot reproduces the final total", func(t *testing.T) {
		b := builder.NewSessionBuilder()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, sess.ApplyRateOverride(mustMoney(t, 15000), start.Add(30*time.Minute)))
		charge, err := session.NewProductCharge(uuid.New(), "Singha Beer", 3, mustMoney(t, 1500))
		require.NoError(t, err)
		require.NoError(t, sess.AddProductCharge(charge))

		total, err := sess.Finalize(start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(17000), total.Cents())

		snap := sess.Snapshot()
		restored, err := session.FromSnapshot(snap)
		require.NoError(t, err)

		replayed, err := restored.AccruedCost(*restored.EndTime())
		require.NoError(t, err)
		assert.Equal(t, total, replayed)

		// rate history order survives the trip
		require.Len(t, restored.RateHistory(), 2)
		assert.Equal(t, sess.RateHistory()[0].EffectiveFrom(), restored.RateHistory()[0].EffectiveFrom())
		assert.Equal(t, sess.RateHistory()[1].RatePerHour(), restored.RateHistory()[1].RatePerHour())
	})

	t.Run("active session round-trips losslessly", func(t *testing.T) {
		b := builder.NewSessionBuilder()
		b.StartTime = start
		sess, err := b.BuildDomain()
		require.NoError(t, err)

		restored, err := session.FromSnapshot(sess.Snapshot())
		require.NoError(t, err)

		assert.Equal(t, sess.ID(), restored.ID())
		assert.Equal(t, sess.Room(), restored.Room())
		assert.Equal(t, sess.ItemRef(), restored.ItemRef())
		assert.True(t, restored.IsActive())
		assert.Nil(t, restored.EndTime())
		assert.Nil(t, restored.FinalTotal())
	})
}
