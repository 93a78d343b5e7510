package telegram

import (
	"fmt"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
)

const (
	offsetBucket = "telegram"
	offsetKey    = "update_offset"
)

// OffsetStore persists the last acknowledged update offset so a restarted
// bot resumes exactly where the previous run stopped
type OffsetStore interface {
	// Get returns the stored offset, or 0 when none was stored yet
	Get() (int, error)

	// Put stores the offset
	Put(offset int) error

	// Close closes the store
	Close() error
}

// BoltOffsetStore implements the OffsetStore interface using BoltDB
type BoltOffsetStore struct {
	db *bbolt.DB
}

// NewBoltOffsetStore creates a new BoltOffsetStore instance
func NewBoltOffsetStore(path string) (*BoltOffsetStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(offsetBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltOffsetStore{db: db}, nil
}

// Get returns the stored offset, or 0 when none was stored yet
func (b *BoltOffsetStore) Get() (int, error) {
	var offset int
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offsetBucket))
		data := bucket.Get([]byte(offsetKey))
		if data == nil {
			return nil
		}
		parsed, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("parsing stored offset: %w", err)
		}
		offset = parsed
		return nil
	})
	if err != nil {
		return 0, err
	}
	return offset, nil
}

// Put stores the offset
func (b *BoltOffsetStore) Put(offset int) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(offsetBucket))
		return bucket.Put([]byte(offsetKey), []byte(strconv.Itoa(offset)))
	})
}

// Close closes the database
func (b *BoltOffsetStore) Close() error {
	return b.db.Close()
}
