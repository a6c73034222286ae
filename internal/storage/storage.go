// Package storage persists saved form configurations in a local embedded
// key-value database (badger). Values are JSON-encoded; badger gives
// single-key atomicity, which is all the builder requires.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/schema"
)

// ErrNotFound is returned when no saved config exists for an id.
var ErrNotFound = errors.New("saved config not found")

// SavedConfig is one library entry: a titled form config plus metadata.
type SavedConfig struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Ecosystem schema.Ecosystem       `json:"ecosystem"`
	NetworkID string                 `json:"networkId"`
	Contract  *schema.ContractSchema `json:"contract"`
	Form      *schema.FormConfig     `json:"form"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Function variable for dependency injection in tests.
var timeNow = time.Now

// Library is the saved-config store.
type Library struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens (or creates) the library database at dir.
func Open(dir string, log zerolog.Logger) (*Library, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open config library: %w", err)
	}
	return &Library{db: db, log: log.With().Str("component", "storage").Logger()}, nil
}

// Close releases the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores a config. A new entry gets a generated id and creation time;
// an existing id is overwritten with a bumped update time.
func (l *Library) Save(cfg *SavedConfig) error {
	if cfg.Title == "" {
		return fmt.Errorf("saved config needs a title")
	}
	now := timeNow().UTC()
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	value, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode saved config: %w", err)
	}

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(cfg.ID), value)
	})
	if err != nil {
		return fmt.Errorf("failed to store config %s: %w", cfg.ID, err)
	}
	l.log.Debug().Str("id", cfg.ID).Str("title", cfg.Title).Msg("config saved")
	return nil
}

// Get loads one saved config by id.
func (l *Library) Get(id string) (*SavedConfig, error) {
	var cfg SavedConfig
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cfg)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load config %s: %w", id, err)
	}
	return &cfg, nil
}

// Delete removes a saved config. Deleting an absent id is not an error.
func (l *Library) Delete(id string) error {
	err := l.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete config %s: %w", id, err)
	}
	return nil
}

// List returns all saved configs ordered by most recent update.
func (l *Library) List() ([]*SavedConfig, error) {
	var out []*SavedConfig
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var cfg SavedConfig
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &cfg)
			})
			if err != nil {
				return err
			}
			out = append(out, &cfg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}

	// Most recently updated first.
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func key(id string) []byte {
	return []byte("config/" + id)
}
