//go:build unit

package builder

import (
	"rental-pos/internal/domain/catalog"
)

type CatalogBuilder struct {
	ZoneKey      string
	ZoneLabel    string
	ItemLabel    string
	ItemCents    int64
	ProductName  string
	ProductCents int64
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{
		ZoneKey:      "karaoke",
		ZoneLabel:    "Karaoke",
		ItemLabel:    "Karaoke Room A",
		ItemCents:    10000,
		ProductName:  "Singha Beer",
		ProductCents: 1500,
	}
}

func (b *CatalogBuilder) With(mutate func(*CatalogBuilder)) *CatalogBuilder {
	mutate(b)
	return b
}

// BuildZone returns a zone pre-populated with one item.
func (b *CatalogBuilder) BuildZone() (*catalog.Zone, *catalog.ZoneItem, error) {
	zone, err := catalog.NewZone(b.ZoneKey, b.ZoneLabel)
	if err != nil {
		return nil, nil, err
	}
	price, err := catalog.NewMoney(b.ItemCents)
	if err != nil {
		return nil, nil, err
	}
	item, err := catalog.NewZoneItem(b.ItemLabel, price)
	if err != nil {
		return nil, nil, err
	}
	zone.AppendItem(item)
	return zone, item, nil
}

func (b *CatalogBuilder) BuildProduct() (*catalog.Product, error) {
	price, err := catalog.NewMoney(b.ProductCents)
	if err != nil {
		return nil, err
	}
	return catalog.NewProduct(b.ProductName, price)
}
