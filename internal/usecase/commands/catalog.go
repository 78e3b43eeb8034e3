package commands

import (
	"context"
	"errors"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/infra"
	"rental-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrZoneNotFound     = errs.New("zone not found")
	ErrItemNotFound     = errs.New("zone item not found")
	ErrProductNotFound  = errs.New("product not found")
	ErrDuplicateZoneKey = errs.New("zone key already exists")
	ErrInvalidPrice     = errs.New("invalid price")
	ErrInvalidLabel     = errs.New("invalid label")
)

type AddZoneInput struct {
	Key   string
	Label string
}

type AddItemInput struct {
	Label             string
	DefaultPriceCents int64
}

type UpdateItemInput struct {
	Label             *string
	DefaultPriceCents *int64
}

type AddProductInput struct {
	Name       string
	PriceCents int64
}

type UpdateProductInput struct {
	Name       *string
	PriceCents *int64
}

type CatalogCommands interface {
	AddZone(ctx context.Context, in AddZoneInput) error
	AddItem(ctx context.Context, zoneKey string, in AddItemInput) (uuid.UUID, error)
	UpdateItem(ctx context.Context, zoneKey string, itemID uuid.UUID, in UpdateItemInput) error
	RemoveItem(ctx context.Context, zoneKey string, itemID uuid.UUID) error
	AddProduct(ctx context.Context, in AddProductInput) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) error
	RemoveProduct(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	store CatalogStore
}

func NewCatalogCommands(store CatalogStore) CatalogCommands {
	return &catalogCommandsImpl{store: store}
}

func (c *catalogCommandsImpl) AddZone(ctx context.Context, in AddZoneInput) error {
	zone, err := catalog.NewZone(in.Key, in.Label)
	if err != nil {
		return errs.Mark(err, ErrInvalidLabel)
	}
	if err := c.store.InsertZone(ctx, zone); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, ErrDuplicateZoneKey)
		}
		return err
	}
	return nil
}

func (c *catalogCommandsImpl) AddItem(ctx context.Context, zoneKey string, in AddItemInput) (uuid.UUID, error) {
	price, err := catalog.NewMoney(in.DefaultPriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPrice)
	}
	item, err := catalog.NewZoneItem(in.Label, price)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidLabel)
	}
	if err := c.store.InsertItem(ctx, zoneKey, item); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, ErrZoneNotFound)
		}
		return uuid.Nil, err
	}
	return item.ID(), nil
}

// UpdateItem edits the catalog entry only; sessions already started keep the
// rate snapshots in their history untouched.
func (c *catalogCommandsImpl) UpdateItem(ctx context.Context, zoneKey string, itemID uuid.UUID, in UpdateItemInput) error {
	var price *catalog.Money
	if in.DefaultPriceCents != nil {
		p, err := catalog.NewMoney(*in.DefaultPriceCents)
		if err != nil {
			return errs.Mark(err, ErrInvalidPrice)
		}
		price = &p
	}
	if err := c.store.PatchItem(ctx, zoneKey, itemID, in.Label, price); err != nil {
		return c.mapItemErr(err)
	}
	return nil
}

func (c *catalogCommandsImpl) RemoveItem(ctx context.Context, zoneKey string, itemID uuid.UUID) error {
	if err := c.store.DeleteItem(ctx, zoneKey, itemID); err != nil {
		return c.mapItemErr(err)
	}
	return nil
}

func (c *catalogCommandsImpl) AddProduct(ctx context.Context, in AddProductInput) (uuid.UUID, error) {
	price, err := catalog.NewMoney(in.PriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidPrice)
	}
	product, err := catalog.NewProduct(in.Name, price)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidLabel)
	}
	if err := c.store.InsertProduct(ctx, product); err != nil {
		return uuid.Nil, err
	}
	return product.ID(), nil
}

func (c *catalogCommandsImpl) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) error {
	var price *catalog.Money
	if in.PriceCents != nil {
		p, err := catalog.NewMoney(*in.PriceCents)
		if err != nil {
			return errs.Mark(err, ErrInvalidPrice)
		}
		price = &p
	}
	if err := c.store.PatchProduct(ctx, id, in.Name, price); err != nil {
		return c.mapProductErr(err)
	}
	return nil
}

func (c *catalogCommandsImpl) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	if err := c.store.DeleteProduct(ctx, id); err != nil {
		return c.mapProductErr(err)
	}
	return nil
}

func (c *catalogCommandsImpl) mapItemErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrEmptyLabel):
		return errs.Mark(err, ErrInvalidLabel)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrItemNotFound)
	default:
		return err
	}
}

func (c *catalogCommandsImpl) mapProductErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrEmptyLabel):
		return errs.Mark(err, ErrInvalidLabel)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrProductNotFound)
	default:
		return err
	}
}
