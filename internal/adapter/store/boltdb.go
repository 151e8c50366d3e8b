package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"circuitdoc/internal/domain"
)

var (
	bucketRecords = []byte("records")
	bucketMeta    = []byte("meta")
)

// ErrNotFound is returned when no record exists for a path.
var ErrNotFound = errors.New("record not found")

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRecords, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) PutRecord(rec domain.Record) error {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte(rec.Path), data)
	})
}

// PutRecords stores several records in a single transaction.
func (s *BoltStore) PutRecords(recs []domain.Record) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		for i := range recs {
			data, err := msgpack.Marshal(&recs[i])
			if err != nil {
				return fmt.Errorf("failed to encode record %s: %w", recs[i].Path, err)
			}
			if err := b.Put([]byte(recs[i].Path), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetRecord(path string) (domain.Record, error) {
	var rec domain.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get([]byte(path))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return msgpack.Unmarshal(data, &rec)
	})
	return rec, err
}

func (s *BoltStore) DeleteRecord(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete([]byte(path))
	})
}

// ListRecords returns all records ordered by path.
func (s *BoltStore) ListRecords() ([]domain.Record, error) {
	var recs []domain.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			var rec domain.Record
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode record %s: %w", k, err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	sort.Slice(recs, func(i, j int) bool { return recs[i].Path < recs[j].Path })
	return recs, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
