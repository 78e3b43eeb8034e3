package queries

import (
	"context"

	"rental-pos/internal/domain/catalog"

	"github.com/google/uuid"
)

type ZoneView struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Items []ZoneItemView `json:"items"`
}

type ZoneItemView struct {
	ID                uuid.UUID `json:"id"`
	Label             string    `json:"label"`
	DefaultPriceCents int64     `json:"default_price_cents"`
}

type ProductView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
}

type CatalogQueries interface {
	ListZones(ctx context.Context) ([]*ZoneView, error)
	ListProducts(ctx context.Context) ([]*ProductView, error)
}

type CatalogReadStore interface {
	ListZones(ctx context.Context) ([]catalog.ZoneSnapshot, error)
	ListProducts(ctx context.Context) ([]catalog.ProductSnapshot, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) ListZones(ctx context.Context) ([]*ZoneView, error) {
	snaps, err := q.readStore.ListZones(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*ZoneView, len(snaps))
	for i, zs := range snaps {
		items := make([]ZoneItemView, len(zs.Items))
		for j, is := range zs.Items {
			items[j] = ZoneItemView{
				ID:                is.ID,
				Label:             is.Label,
				DefaultPriceCents: is.DefaultPriceCents,
			}
		}
		out[i] = &ZoneView{Key: zs.Key, Label: zs.Label, Items: items}
	}
	return out, nil
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	snaps, err := q.readStore.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*ProductView, len(snaps))
	for i, ps := range snaps {
		out[i] = &ProductView{ID: ps.ID, Name: ps.Name, PriceCents: ps.PriceCents}
	}
	return out, nil
}
