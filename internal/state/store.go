// Package state persists UI preferences between sessions. Only filter
// and sort settings live here; credentials and batch results never do.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/reposweep/reposweep/internal/filter"
)

// Bucket names
var (
	bucketPrefs = []byte("preferences")
)

const keyFilter = "filter"

// Store keeps preferences in a small BoltDB database
type Store struct {
	db *bolt.DB
}

// NewStore opens the preferences database at path, creating parent
// directories as needed. An empty path yields a memory-only store that
// persists nothing.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFilter stores the filter and sort settings
func (s *Store) SaveFilter(cfg filter.Config) error {
	if s.db == nil {
		return nil
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Put([]byte(keyFilter), data)
	})
}

// LoadFilter returns the stored filter settings, reporting whether any
// were found
func (s *Store) LoadFilter() (filter.Config, bool) {
	if s.db == nil {
		return filter.Config{}, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPrefs).Get([]byte(keyFilter)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return filter.Config{}, false
	}

	var cfg filter.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return filter.Config{}, false
	}
	return cfg, true
}
