//go:build unit

package builder

import (
	"time"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"
	reqdto "rental-pos/internal/handler/dto/request"
	"rental-pos/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	Room         string
	CustomerName string
	ZoneKey      string
	ItemID       uuid.UUID
	ItemLabel    string
	RateCents    int64
	StartTime    time.Time
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		Room:         "R1",
		CustomerName: "Somchai",
		ZoneKey:      "karaoke",
		ItemID:       uuid.New(),
		ItemLabel:    "Karaoke Room A",
		RateCents:    10000,
		StartTime:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) BuildDomain() (*session.Session, error) {
	rate, err := catalog.NewMoney(b.RateCents)
	if err != nil {
		return nil, err
	}
	ref := session.NewItemRef(b.ZoneKey, b.ItemID, b.ItemLabel)
	return session.NewSession(b.Room, b.CustomerName, ref, rate, b.StartTime)
}

func (b *SessionBuilder) BuildStartRequestDTO() reqdto.StartSessionRequest {
	return reqdto.StartSessionRequest{
		Room:         b.Room,
		CustomerName: b.CustomerName,
		ZoneKey:      b.ZoneKey,
		ItemID:       b.ItemID,
	}
}

func (b *SessionBuilder) BuildView() *queries.SessionView {
	return &queries.SessionView{
		ID:               uuid.New(),
		Room:             b.Room,
		CustomerName:     b.CustomerName,
		ZoneKey:          b.ZoneKey,
		ItemID:           b.ItemID,
		ItemLabel:        b.ItemLabel,
		Status:           session.StatusActive.String(),
		StartTime:        b.StartTime,
		CurrentRateCents: b.RateCents,
		RateHistory: []queries.RateChangeView{
			{EffectiveFrom: b.StartTime, RatePerHourCents: b.RateCents},
		},
		ProductCharges: []queries.ProductChargeView{},
		AccruedCents:   b.RateCents,
		AccruedAsOf:    b.StartTime.Add(time.Hour),
	}
}
