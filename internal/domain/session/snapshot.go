package session

import (
	"time"

	"rental-pos/internal/domain/catalog"

	"github.com/google/uuid"
)

// Snapshot is the plain-data form of a session: what the registry hands to
// readers and what an external persistence collaborator round-trips. Replaying
// AccruedCents on a stored snapshot reproduces every total the live session
// ever reported, rate-history order included.
type Snapshot struct {
	ID              uuid.UUID     `json:"id"`
	Room            string        `json:"room"`
	CustomerName    string        `json:"customer_name"`
	ZoneKey         string        `json:"zone_key"`
	ItemID          uuid.UUID     `json:"item_id"`
	ItemLabel       string        `json:"item_label"`
	Status          Status        `json:"status"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         *time.Time    `json:"end_time,omitempty"`
	RateHistory     []RateEntry   `json:"rate_history"`
	ProductCharges  []ChargeEntry `json:"product_charges"`
	Note            string        `json:"note"`
	PaymentMethod   string        `json:"payment_method"`
	FinalTotalCents *int64        `json:"final_total_cents,omitempty"`
}

type RateEntry struct {
	EffectiveFrom    time.Time `json:"effective_from"`
	RatePerHourCents int64     `json:"rate_per_hour_cents"`
}

type ChargeEntry struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

const millisPerHour = int64(time.Hour / time.Millisecond)

// AccruedCents partitions [StartTime, min(asOf, EndTime)] into sub-intervals
// bounded by rate-history entries, accrues rate*duration for each, and adds
// product charges. Time accrual is summed exactly in cents-milliseconds; the
// single division (rounded half up) is the only rounding step.
func (s Snapshot) AccruedCents(asOf time.Time) (int64, error) {
	if asOf.Before(s.StartTime) {
		return 0, ErrTimestampBeforeStart
	}

	end := asOf
	if s.EndTime != nil && s.EndTime.Before(end) {
		end = *s.EndTime
	}

	var centMillis int64
	for i, rc := range s.RateHistory {
		to := end
		if i+1 < len(s.RateHistory) {
			if next := s.RateHistory[i+1].EffectiveFrom; next.Before(to) {
				to = next
			}
		}
		d := to.Sub(rc.EffectiveFrom)
		if d < 0 {
			// clock moved backward relative to this entry: bill nothing
			d = 0
		}
		centMillis += rc.RatePerHourCents * d.Milliseconds()
	}

	total := (centMillis + millisPerHour/2) / millisPerHour
	for _, pc := range s.ProductCharges {
		total += int64(pc.Quantity) * pc.UnitPriceCents
	}
	return total, nil
}

func (s *Session) Snapshot() Snapshot {
	rates := make([]RateEntry, len(s.rateHistory))
	for i, rc := range s.rateHistory {
		rates[i] = RateEntry{
			EffectiveFrom:    rc.effectiveFrom,
			RatePerHourCents: rc.ratePerHour.Cents(),
		}
	}
	charges := make([]ChargeEntry, len(s.productCharges))
	for i, pc := range s.productCharges {
		charges[i] = ChargeEntry{
			ProductID:      pc.productID,
			Name:           pc.name,
			Quantity:       pc.quantity,
			UnitPriceCents: pc.unitPrice.Cents(),
		}
	}

	snap := Snapshot{
		ID:             s.id,
		Room:           s.room,
		CustomerName:   s.customerName,
		ZoneKey:        s.itemRef.zoneKey,
		ItemID:         s.itemRef.itemID,
		ItemLabel:      s.itemRef.label,
		Status:         s.status,
		StartTime:      s.startTime,
		RateHistory:    rates,
		ProductCharges: charges,
		Note:           s.note,
		PaymentMethod:  s.paymentMethod,
	}
	if s.endTime != nil {
		t := *s.endTime
		snap.EndTime = &t
	}
	if s.finalTotal != nil {
		cents := s.finalTotal.Cents()
		snap.FinalTotalCents = &cents
	}
	return snap
}

func FromSnapshot(snap Snapshot) (*Session, error) {
	rates := make([]RateChange, len(snap.RateHistory))
	for i, re := range snap.RateHistory {
		rate, err := catalog.NewMoney(re.RatePerHourCents)
		if err != nil {
			return nil, err
		}
		rates[i] = NewRateChange(re.EffectiveFrom, rate)
	}
	charges := make([]ProductCharge, len(snap.ProductCharges))
	for i, ce := range snap.ProductCharges {
		price, err := catalog.NewMoney(ce.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		charge, err := NewProductCharge(ce.ProductID, ce.Name, ce.Quantity, price)
		if err != nil {
			return nil, err
		}
		charges[i] = charge
	}

	sess := &Session{
		id:             snap.ID,
		room:           snap.Room,
		customerName:   snap.CustomerName,
		itemRef:        NewItemRef(snap.ZoneKey, snap.ItemID, snap.ItemLabel),
		status:         snap.Status,
		startTime:      snap.StartTime,
		rateHistory:    rates,
		productCharges: charges,
		note:           snap.Note,
		paymentMethod:  snap.PaymentMethod,
	}
	if snap.EndTime != nil {
		t := *snap.EndTime
		sess.endTime = &t
	}
	if snap.FinalTotalCents != nil {
		total, err := catalog.NewMoney(*snap.FinalTotalCents)
		if err != nil {
			return nil, err
		}
		sess.finalTotal = &total
	}
	return sess, nil
}
