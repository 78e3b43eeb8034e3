package queries

import (
	"context"
	"time"

	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra"
	"rental-pos/internal/pkg/clock"
	"rental-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errs.New("session not found")

// Read models (DTOs for the read side)
type SessionView struct {
	ID               uuid.UUID           `json:"id"`
	Room             string              `json:"room"`
	CustomerName     string              `json:"customer_name"`
	ZoneKey          string              `json:"zone_key"`
	ItemID           uuid.UUID           `json:"item_id"`
	ItemLabel        string              `json:"item_label"`
	Status           string              `json:"status"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          *time.Time          `json:"end_time,omitempty"`
	CurrentRateCents int64               `json:"current_rate_cents"`
	RateHistory      []RateChangeView    `json:"rate_history"`
	ProductCharges   []ProductChargeView `json:"product_charges"`
	Note             string              `json:"note"`
	PaymentMethod    string              `json:"payment_method"`
	AccruedCents     int64               `json:"accrued_cents"`
	AccruedAsOf      time.Time           `json:"accrued_as_of"`
}

type RateChangeView struct {
	EffectiveFrom    time.Time `json:"effective_from"`
	RatePerHourCents int64     `json:"rate_per_hour_cents"`
}

type ProductChargeView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	TotalCents     int64     `json:"total_cents"`
}

type SessionListItem struct {
	ID           uuid.UUID  `json:"id"`
	Room         string     `json:"room"`
	CustomerName string     `json:"customer_name"`
	ItemLabel    string     `json:"item_label"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	AccruedCents int64      `json:"accrued_cents"`
}

type ClosedRange struct {
	From *time.Time
	To   *time.Time
}

type SessionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SessionView, error)
	ListActive(ctx context.Context) ([]*SessionListItem, error)
	ListByRoom(ctx context.Context, room string) ([]*SessionListItem, error)
	ListClosed(ctx context.Context, rng ClosedRange) ([]*SessionListItem, error)
}

type SessionReadStore interface {
	Get(ctx context.Context, id uuid.UUID) (session.Snapshot, error)
	ListActive(ctx context.Context) ([]session.Snapshot, error)
	ListByRoom(ctx context.Context, room string) ([]session.Snapshot, error)
	ListClosed(ctx context.Context, from, to *time.Time) ([]session.Snapshot, error)
}

type sessionQueriesImpl struct {
	readStore SessionReadStore
	clock     clock.Clock
}

func NewSessionQueries(readStore SessionReadStore, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{readStore: readStore, clock: clk}
}

func (q *sessionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	snap, err := q.readStore.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return q.viewOf(snap), nil
}

func (q *sessionQueriesImpl) ListActive(ctx context.Context) ([]*SessionListItem, error) {
	snaps, err := q.readStore.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return q.listOf(snaps), nil
}

func (q *sessionQueriesImpl) ListByRoom(ctx context.Context, room string) ([]*SessionListItem, error) {
	snaps, err := q.readStore.ListByRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	return q.listOf(snaps), nil
}

func (q *sessionQueriesImpl) ListClosed(ctx context.Context, rng ClosedRange) ([]*SessionListItem, error) {
	snaps, err := q.readStore.ListClosed(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	return q.listOf(snaps), nil
}

func (q *sessionQueriesImpl) viewOf(snap session.Snapshot) *SessionView {
	asOf := q.clock.Now()
	accrued := q.accruedOf(snap, asOf)

	rates := make([]RateChangeView, len(snap.RateHistory))
	for i, re := range snap.RateHistory {
		rates[i] = RateChangeView{
			EffectiveFrom:    re.EffectiveFrom,
			RatePerHourCents: re.RatePerHourCents,
		}
	}
	charges := make([]ProductChargeView, len(snap.ProductCharges))
	for i, ce := range snap.ProductCharges {
		charges[i] = ProductChargeView{
			ProductID:      ce.ProductID,
			Name:           ce.Name,
			Quantity:       ce.Quantity,
			UnitPriceCents: ce.UnitPriceCents,
			TotalCents:     int64(ce.Quantity) * ce.UnitPriceCents,
		}
	}

	return &SessionView{
		ID:               snap.ID,
		Room:             snap.Room,
		CustomerName:     snap.CustomerName,
		ZoneKey:          snap.ZoneKey,
		ItemID:           snap.ItemID,
		ItemLabel:        snap.ItemLabel,
		Status:           snap.Status.String(),
		StartTime:        snap.StartTime,
		EndTime:          snap.EndTime,
		CurrentRateCents: snap.RateHistory[len(snap.RateHistory)-1].RatePerHourCents,
		RateHistory:      rates,
		ProductCharges:   charges,
		Note:             snap.Note,
		PaymentMethod:    snap.PaymentMethod,
		AccruedCents:     accrued,
		AccruedAsOf:      asOf,
	}
}

func (q *sessionQueriesImpl) listOf(snaps []session.Snapshot) []*SessionListItem {
	asOf := q.clock.Now()
	out := make([]*SessionListItem, len(snaps))
	for i, snap := range snaps {
		out[i] = &SessionListItem{
			ID:           snap.ID,
			Room:         snap.Room,
			CustomerName: snap.CustomerName,
			ItemLabel:    snap.ItemLabel,
			Status:       snap.Status.String(),
			StartTime:    snap.StartTime,
			EndTime:      snap.EndTime,
			AccruedCents: q.accruedOf(snap, asOf),
		}
	}
	return out
}

// accruedOf reports the frozen total for closed sessions and the live
// time-of-call accrual for active ones.
func (q *sessionQueriesImpl) accruedOf(snap session.Snapshot, asOf time.Time) int64 {
	if snap.FinalTotalCents != nil {
		return *snap.FinalTotalCents
	}
	cents, err := snap.AccruedCents(asOf)
	if err != nil {
		// asOf predates start only if the clock moved backward; report zero
		return 0
	}
	return cents
}
