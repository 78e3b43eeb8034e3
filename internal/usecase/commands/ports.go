package commands

import (
	"context"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"

	"github.com/google/uuid"
)

// Write-side store ports. The in-memory stores implement these; commands stay
// ignorant of how state is held.

type CatalogStore interface {
	InsertZone(ctx context.Context, zone *catalog.Zone) error
	InsertItem(ctx context.Context, zoneKey string, item *catalog.ZoneItem) error
	PatchItem(ctx context.Context, zoneKey string, itemID uuid.UUID, label *string, price *catalog.Money) error
	DeleteItem(ctx context.Context, zoneKey string, itemID uuid.UUID) error
	InsertProduct(ctx context.Context, product *catalog.Product) error
	PatchProduct(ctx context.Context, id uuid.UUID, name *string, price *catalog.Money) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ItemRate(ctx context.Context, zoneKey string, itemID uuid.UUID) (session.ItemRef, catalog.Money, error)
	ProductByID(ctx context.Context, id uuid.UUID) (catalog.ProductSnapshot, error)
}

// SessionStore serializes all mutation per session: Mutate and MoveRoom run
// their callback under the registry's write lock.
type SessionStore interface {
	Insert(ctx context.Context, sess *session.Session) error
	Mutate(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) error
	MoveRoom(ctx context.Context, id uuid.UUID, fn func(*session.Session) error, newRoom string) error
}

type UserStore interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
