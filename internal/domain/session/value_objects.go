package session

import (
	"errors"
	"strings"
	"time"

	"rental-pos/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoom         = errors.New("room cannot be empty")
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// ItemRef points at the catalog entry a session bills against. The label is
// a display snapshot; the rate itself lives in the session's rate history.
type ItemRef struct {
	zoneKey string
	itemID  uuid.UUID
	label   string
}

func NewItemRef(zoneKey string, itemID uuid.UUID, label string) ItemRef {
	return ItemRef{zoneKey: zoneKey, itemID: itemID, label: label}
}

func (r ItemRef) ZoneKey() string   { return r.zoneKey }
func (r ItemRef) ItemID() uuid.UUID { return r.itemID }
func (r ItemRef) Label() string     { return r.label }

// RateChange is one entry of the append-only rate history. An entry applies
// from EffectiveFrom until the next entry's EffectiveFrom, or the session end.
type RateChange struct {
	effectiveFrom time.Time
	ratePerHour   catalog.Money
}

func NewRateChange(effectiveFrom time.Time, ratePerHour catalog.Money) RateChange {
	return RateChange{effectiveFrom: effectiveFrom, ratePerHour: ratePerHour}
}

func (rc RateChange) EffectiveFrom() time.Time   { return rc.effectiveFrom }
func (rc RateChange) RatePerHour() catalog.Money { return rc.ratePerHour }

// ProductCharge records an add-on sale with the unit price frozen at the
// moment it was added. Later catalog edits never reach it.
type ProductCharge struct {
	productID uuid.UUID
	name      string
	quantity  int
	unitPrice catalog.Money
}

func NewProductCharge(productID uuid.UUID, name string, quantity int, unitPrice catalog.Money) (ProductCharge, error) {
	if quantity <= 0 {
		return ProductCharge{}, ErrInvalidQuantity
	}
	return ProductCharge{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (pc ProductCharge) ProductID() uuid.UUID     { return pc.productID }
func (pc ProductCharge) Name() string             { return pc.name }
func (pc ProductCharge) Quantity() int            { return pc.quantity }
func (pc ProductCharge) UnitPrice() catalog.Money { return pc.unitPrice }

func (pc ProductCharge) Total() catalog.Money {
	return pc.unitPrice.MulQuantity(pc.quantity)
}

// NormalizeRoom canonicalizes a room name. The registry keys its occupancy
// index on the normalized form, so callers checking occupancy must use it too.
func NormalizeRoom(room string) (string, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return "", ErrEmptyRoom
	}
	return room, nil
}

func normalizeCustomerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCustomerName
	}
	return name, nil
}
