package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra/memstore"
	"rental-pos/internal/pkg/errs"
)

// State is the full persisted form of the billing core. Every field of every
// record survives a save/reload cycle bit-for-bit, rate-history order
// included, so a closed session's total stays reproducible after a restart.
type State struct {
	SavedAt  time.Time                 `json:"saved_at"`
	Zones    []catalog.ZoneSnapshot    `json:"zones"`
	Products []catalog.ProductSnapshot `json:"products"`
	Sessions []session.Snapshot        `json:"sessions"`
}

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns nil state when no snapshot file exists yet.
func (f *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read snapshot file")
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errs.Wrap(err, "failed to decode snapshot file")
	}
	return &state, nil
}

// Save writes atomically via a temp file so a crash mid-write never leaves a
// truncated snapshot behind.
func (f *FileStore) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errs.Wrap(err, "failed to encode snapshot")
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errs.Wrap(err, "failed to create snapshot directory")
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.Wrap(err, "failed to write snapshot file")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errs.Wrap(err, "failed to replace snapshot file")
	}
	return nil
}

func Capture(catalogStore *memstore.CatalogStore, sessionStore *memstore.SessionStore, now time.Time) (State, error) {
	zones, err := catalogStore.ListZones(context.Background())
	if err != nil {
		return State{}, errs.Wrap(err, "failed to export zones")
	}
	products, err := catalogStore.ListProducts(context.Background())
	if err != nil {
		return State{}, errs.Wrap(err, "failed to export products")
	}
	return State{
		SavedAt:  now,
		Zones:    zones,
		Products: products,
		Sessions: sessionStore.ExportAll(),
	}, nil
}

func Restore(state State, catalogStore *memstore.CatalogStore, sessionStore *memstore.SessionStore) error {
	catalogStore.ImportState(state.Zones, state.Products)
	if err := sessionStore.ImportState(state.Sessions); err != nil {
		return errs.Wrap(err, "failed to restore sessions")
	}
	return nil
}
