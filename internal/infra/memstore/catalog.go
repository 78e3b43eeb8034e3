package memstore

import (
	"context"
	"sync"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra"

	"github.com/google/uuid"
)

// CatalogStore is the owned, in-memory source of truth for zones, items and
// products. All mutation goes through validated methods under one lock;
// nothing hands out live entity pointers.
type CatalogStore struct {
	mu       sync.RWMutex
	zones    []*catalog.Zone // creation order, preserved in listings
	zoneIdx  map[string]*catalog.Zone
	products []*catalog.Product
	prodIdx  map[uuid.UUID]*catalog.Product
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		zoneIdx: make(map[string]*catalog.Zone),
		prodIdx: make(map[uuid.UUID]*catalog.Product),
	}
}

func (s *CatalogStore) InsertZone(_ context.Context, zone *catalog.Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.zoneIdx[zone.Key()]; exists {
		return infra.NewStoreErr(infra.KindDuplicateKey, "zone key already exists: "+zone.Key())
	}
	s.zones = append(s.zones, zone)
	s.zoneIdx[zone.Key()] = zone
	return nil
}

func (s *CatalogStore) InsertItem(_ context.Context, zoneKey string, item *catalog.ZoneItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	zone, ok := s.zoneIdx[zoneKey]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "zone not found: "+zoneKey)
	}
	zone.AppendItem(item)
	return nil
}

func (s *CatalogStore) PatchItem(_ context.Context, zoneKey string, itemID uuid.UUID, label *string, price *catalog.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.findItem(zoneKey, itemID)
	if err != nil {
		return err
	}
	if label != nil {
		if err := item.Rename(*label); err != nil {
			return err
		}
	}
	if price != nil {
		item.Reprice(*price)
	}
	return nil
}

// DeleteItem succeeds even while sessions reference the item: sessions hold
// their own rate snapshot, not a live pointer.
func (s *CatalogStore) DeleteItem(_ context.Context, zoneKey string, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	zone, ok := s.zoneIdx[zoneKey]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "zone not found: "+zoneKey)
	}
	if !zone.RemoveItem(itemID) {
		return infra.NewStoreErr(infra.KindNotFound, "item not found: "+itemID.String())
	}
	return nil
}

func (s *CatalogStore) InsertProduct(_ context.Context, product *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.prodIdx[product.ID()]; exists {
		return infra.NewStoreErr(infra.KindDuplicateKey, "product already exists: "+product.ID().String())
	}
	s.products = append(s.products, product)
	s.prodIdx[product.ID()] = product
	return nil
}

func (s *CatalogStore) PatchProduct(_ context.Context, id uuid.UUID, name *string, price *catalog.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.prodIdx[id]
	if !ok {
		return infra.NewStoreErr(infra.KindNotFound, "product not found: "+id.String())
	}
	if name != nil {
		if err := product.Rename(*name); err != nil {
			return err
		}
	}
	if price != nil {
		product.Reprice(*price)
	}
	return nil
}

func (s *CatalogStore) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prodIdx[id]; !ok {
		return infra.NewStoreErr(infra.KindNotFound, "product not found: "+id.String())
	}
	delete(s.prodIdx, id)
	for i, p := range s.products {
		if p.ID() == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// ItemRate resolves the current default price of a zone item for seeding a
// session's rate history.
func (s *CatalogStore) ItemRate(_ context.Context, zoneKey string, itemID uuid.UUID) (session.ItemRef, catalog.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.findItem(zoneKey, itemID)
	if err != nil {
		return session.ItemRef{}, catalog.Money{}, err
	}
	return session.NewItemRef(zoneKey, itemID, item.Label()), item.DefaultPrice(), nil
}

// ProductByID returns a point-in-time snapshot for charge recording.
func (s *CatalogStore) ProductByID(_ context.Context, id uuid.UUID) (catalog.ProductSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.prodIdx[id]
	if !ok {
		return catalog.ProductSnapshot{}, infra.NewStoreErr(infra.KindNotFound, "product not found: "+id.String())
	}
	return product.Snapshot(), nil
}

func (s *CatalogStore) ListZones(_ context.Context) ([]catalog.ZoneSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.ZoneSnapshot, len(s.zones))
	for i, zone := range s.zones {
		out[i] = zone.Snapshot()
	}
	return out, nil
}

func (s *CatalogStore) ListProducts(_ context.Context) ([]catalog.ProductSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.ProductSnapshot, len(s.products))
	for i, product := range s.products {
		out[i] = product.Snapshot()
	}
	return out, nil
}

// ImportState replaces the whole catalog, used when restoring a snapshot.
func (s *CatalogStore) ImportState(zones []catalog.ZoneSnapshot, products []catalog.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zones = s.zones[:0]
	s.zoneIdx = make(map[string]*catalog.Zone, len(zones))
	for _, zs := range zones {
		zone := catalog.ZoneFromSnapshot(zs)
		s.zones = append(s.zones, zone)
		s.zoneIdx[zone.Key()] = zone
	}

	s.products = s.products[:0]
	s.prodIdx = make(map[uuid.UUID]*catalog.Product, len(products))
	for _, ps := range products {
		product := catalog.ProductFromSnapshot(ps)
		s.products = append(s.products, product)
		s.prodIdx[product.ID()] = product
	}
}

func (s *CatalogStore) findItem(zoneKey string, itemID uuid.UUID) (*catalog.ZoneItem, error) {
	zone, ok := s.zoneIdx[zoneKey]
	if !ok {
		return nil, infra.NewStoreErr(infra.KindNotFound, "zone not found: "+zoneKey)
	}
	item, ok := zone.Item(itemID)
	if !ok {
		return nil, infra.NewStoreErr(infra.KindNotFound, "item not found: "+itemID.String())
	}
	return item, nil
}
