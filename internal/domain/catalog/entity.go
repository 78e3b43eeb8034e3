package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// ZoneItem is one priced option within a zone (a room type, a seat class).
// Identity is immutable; label and default price are editable, but sessions
// snapshot the price at start so edits never reach past billing.
type ZoneItem struct {
	id           uuid.UUID
	label        string
	defaultPrice Money
}

func NewZoneItem(label string, defaultPrice Money) (*ZoneItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return &ZoneItem{
		id:           uuid.New(),
		label:        label,
		defaultPrice: defaultPrice,
	}, nil
}

func ReconstructZoneItem(id uuid.UUID, label string, defaultPrice Money) *ZoneItem {
	return &ZoneItem{id: id, label: label, defaultPrice: defaultPrice}
}

func (i *ZoneItem) Rename(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}
	i.label = label
	return nil
}

func (i *ZoneItem) Reprice(price Money) {
	i.defaultPrice = price
}

func (i *ZoneItem) ID() uuid.UUID       { return i.id }
func (i *ZoneItem) Label() string       { return i.label }
func (i *ZoneItem) DefaultPrice() Money { return i.defaultPrice }

// Zone is a named, ordered group of priced items.
type Zone struct {
	key   string
	label string
	items []*ZoneItem
}

func NewZone(key, label string) (*Zone, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return &Zone{key: key, label: label}, nil
}

func ReconstructZone(key, label string, items []*ZoneItem) *Zone {
	return &Zone{key: key, label: label, items: items}
}

func (z *Zone) AppendItem(item *ZoneItem) {
	z.items = append(z.items, item)
}

func (z *Zone) Item(id uuid.UUID) (*ZoneItem, bool) {
	for _, item := range z.items {
		if item.id == id {
			return item, true
		}
	}
	return nil, false
}

// RemoveItem preserves the order of the remaining items.
func (z *Zone) RemoveItem(id uuid.UUID) bool {
	for i, item := range z.items {
		if item.id == id {
			z.items = append(z.items[:i], z.items[i+1:]...)
			return true
		}
	}
	return false
}

func (z *Zone) Key() string        { return z.key }
func (z *Zone) Label() string      { return z.label }
func (z *Zone) Items() []*ZoneItem { return z.items }

// Product is a standalone add-on (drinks, consumables), independent of zones.
type Product struct {
	id    uuid.UUID
	name  string
	price Money
}

func NewProduct(name string, price Money) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyLabel
	}
	return &Product{id: uuid.New(), name: name, price: price}, nil
}

func ReconstructProduct(id uuid.UUID, name string, price Money) *Product {
	return &Product{id: id, name: name, price: price}
}

func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyLabel
	}
	p.name = name
	return nil
}

func (p *Product) Reprice(price Money) {
	p.price = price
}

func (p *Product) ID() uuid.UUID { return p.id }
func (p *Product) Name() string  { return p.name }
func (p *Product) Price() Money  { return p.price }
