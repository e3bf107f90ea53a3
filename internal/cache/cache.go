// Package cache keeps the last fetched friends list on disk so the list can
// be shown immediately on the next start while a fresh copy is fetched.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"lingofriends/internal/friend"
)

const (
	schemaVersion = "v1"
	metaBucket    = "__meta"
	versionKey    = "version"
	friendsBucket = "friends"

	openTimeout = time.Second
)

// ErrMiss is returned by Load when nothing has been saved for the scope.
var ErrMiss = errors.New("cache miss")

// Snapshot is a saved friends list.
type Snapshot struct {
	Friends   []friend.Friend `json:"friends"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Store is a bbolt-backed friends cache. Entries are keyed by scope, which
// is usually the API base URL, so switching backends never shows friends
// from another server.
type Store struct {
	path  string
	scope []byte
	db    *bolt.DB
	now   func() time.Time
}

// Open opens (or creates) the cache database at path.
func Open(path, scope string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	// A second instance holding the lock fails fast instead of hanging.
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}
		switch v := meta.Get([]byte(versionKey)); string(v) {
		case "":
			if err := meta.Put([]byte(versionKey), []byte(schemaVersion)); err != nil {
				return fmt.Errorf("set version key: %w", err)
			}
			if _, err := tx.CreateBucketIfNotExists([]byte(friendsBucket)); err != nil {
				return fmt.Errorf("create friends bucket: %w", err)
			}
			return nil
		case schemaVersion:
			return nil
		default:
			return fmt.Errorf("unknown cache version %q", string(v))
		}
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	return &Store{path: path, scope: []byte(scope), db: db, now: time.Now}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved snapshot, or ErrMiss.
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(friendsBucket)).Get(s.scope)
		if raw == nil {
			return ErrMiss
		}
		// raw is only valid inside the transaction; Unmarshal copies.
		return json.Unmarshal(raw, &snap)
	})
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return Snapshot{}, ErrMiss
		}
		return Snapshot{}, fmt.Errorf("load cached friends: %w", err)
	}
	if snap.Friends == nil {
		snap.Friends = []friend.Friend{}
	}
	return snap, nil
}

// Save replaces the snapshot for the store's scope.
func (s *Store) Save(friends []friend.Friend) error {
	if friends == nil {
		friends = []friend.Friend{}
	}
	data, err := json.Marshal(Snapshot{Friends: friends, FetchedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode friends: %w", err)
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(friendsBucket)).Put(s.scope, data)
	}); err != nil {
		return fmt.Errorf("save friends: %w", err)
	}
	return nil
}

// Clear removes the snapshot for the store's scope.
func (s *Store) Clear() error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(friendsBucket)).Delete(s.scope)
	}); err != nil {
		return fmt.Errorf("clear cached friends: %w", err)
	}
	return nil
}

// Close releases the database file.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}
