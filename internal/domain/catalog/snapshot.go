package catalog

import "github.com/google/uuid"

// Plain-data snapshots of catalog entities. External collaborators must be
// able to round-trip these losslessly, item order included.

type ItemSnapshot struct {
	ID                uuid.UUID `json:"id"`
	Label             string    `json:"label"`
	DefaultPriceCents int64     `json:"default_price_cents"`
}

type ZoneSnapshot struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Items []ItemSnapshot `json:"items"`
}

type ProductSnapshot struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

func (z *Zone) Snapshot() ZoneSnapshot {
	items := make([]ItemSnapshot, len(z.items))
	for i, item := range z.items {
		items[i] = ItemSnapshot{
			ID:                item.id,
			Label:             item.label,
			DefaultPriceCents: item.defaultPrice.Cents(),
		}
	}
	return ZoneSnapshot{Key: z.key, Label: z.label, Items: items}
}

func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{ID: p.id, Name: p.name, PriceCents: p.price.Cents()}
}

func ZoneFromSnapshot(snap ZoneSnapshot) *Zone {
	items := make([]*ZoneItem, len(snap.Items))
	for i, is := range snap.Items {
		items[i] = ReconstructZoneItem(is.ID, is.Label, Money{cents: is.DefaultPriceCents})
	}
	return ReconstructZone(snap.Key, snap.Label, items)
}

func ProductFromSnapshot(snap ProductSnapshot) *Product {
	return ReconstructProduct(snap.ID, snap.Name, Money{cents: snap.PriceCents})
}
