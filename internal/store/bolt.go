package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketCache = []byte("cache")

// BoltBackend persists the cache blob in a BoltDB file
type BoltBackend struct {
	db  *bolt.DB
	key []byte
}

// NewBoltBackend opens (or creates) the cache database under baseCacheDir.
// When account is set, each account gets its own database directory.
func NewBoltBackend(baseCacheDir, account, storageKey string) (*BoltBackend, error) {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}

	dir := baseCacheDir
	if account != "" {
		dir = filepath.Join(baseCacheDir, hashAccount(account))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCache)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db, key: []byte(storageKey)}, nil
}

func hashAccount(account string) string {
	normalized := strings.ToLower(strings.TrimSpace(account))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (b *BoltBackend) Load() ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(b.key); v != nil {
			// bolt memory is only valid inside the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, err
}

func (b *BoltBackend) Save(data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketCache)
		if err != nil {
			return err
		}
		return bucket.Put(b.key, data)
	})
}

func (b *BoltBackend) Remove() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(b.key)
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
