package assets

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.etcd.io/bbolt"
)

var assetsBucket = []byte("assets")

// BoltBackend keeps assets in a single bbolt file, one key per asset.
type BoltBackend struct {
	db *bbolt.DB
}

func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(assetsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Write(_ context.Context, key string, data []byte, _ string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(assetsBucket).Put([]byte(key), data)
	})
}

func (b *BoltBackend) Remove(_ context.Context, key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(assetsBucket).Delete([]byte(key))
	})
}

func (b *BoltBackend) Stat(_ context.Context, key string) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(assetsBucket).Get([]byte(key)) != nil
		return nil
	})
	return found, err
}

// Open copies the value out of the read transaction.
func (b *BoltBackend) Open(_ context.Context, key string) (io.ReadCloser, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(assetsBucket).Get([]byte(key))
		if v == nil {
			return &NotFoundError{Ref: Ref(key)}
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
