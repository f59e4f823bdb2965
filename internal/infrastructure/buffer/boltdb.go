package buffer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps BoltDB to persist counter deltas while Redis is unavailable.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "totals"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores a delta keyed by its timestamp so drains replay in order.
func (s *Store) Enqueue(delta Delta) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	delta.normalize()
	delta.bucketKey = []byte(buildKey(delta))

	payload, err := json.Marshal(delta)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(delta.bucketKey, payload)
	})
}

// GetBatch returns up to limit deltas without removing them.
func (s *Store) GetBatch(limit int) ([]Delta, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var deltas []Delta
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(deltas) < limit; k, v = c.Next() {
			var delta Delta
			if err := json.Unmarshal(v, &delta); err != nil {
				continue
			}
			delta.bucketKey = append([]byte(nil), k...)
			deltas = append(deltas, delta)
		}
		return nil
	})
	return deltas, err
}

// Remove deletes the provided delta from the buffer.
func (s *Store) Remove(delta Delta) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(delta.bucketKey) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(delta.bucketKey)
	})
}

// Requeue re-inserts a delta after bumping its timestamp.
func (s *Store) Requeue(delta Delta) error {
	delta.bucketKey = nil
	delta.Timestamp = time.Now()
	return s.Enqueue(delta)
}

// Size returns the number of buffered deltas.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildKey(delta Delta) string {
	return fmt.Sprintf("%020d_%s", delta.Timestamp.UnixNano(), delta.ID)
}
