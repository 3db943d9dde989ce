package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	"ngramlp/internal/domain"
)

var (
	bucketNGrams = []byte("ngrams")
	bucketMeta   = []byte("meta")
	keyStats     = []byte("table_stats")
)

var ErrNoTable = errors.New("no table saved")

// saveBatchSize is the number of entries between progress reports.
const saveBatchSize = 5000

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketNGrams, bucketMeta} {
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

type ngramMeta struct {
	Count int64 `json:"count"`
	Seq   int   `json:"seq"`
}

// SaveTable replaces the stored table with table in a single transaction,
// so a failed save leaves the previous table in place. progress, if
// non-nil, is called every saveBatchSize entries.
func (s *BoltStore) SaveTable(table domain.Table, stats domain.TableStats, progress func(done, total int)) error {
	total := len(table.Entries)
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := clearTable(tx); err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}

		b := tx.Bucket(bucketNGrams)
		for i, e := range table.Entries {
			if b.Get([]byte(e.NGram)) != nil {
				return fmt.Errorf("duplicate n-gram %q at entry %d", e.NGram, i+1)
			}
			data, err := json.Marshal(ngramMeta{Count: e.Count, Seq: i})
			if err != nil {
				return err
			}
			if err := b.Put([]byte(e.NGram), data); err != nil {
				return fmt.Errorf("failed to write entry %d: %w", i+1, err)
			}
			if progress != nil && ((i+1)%saveBatchSize == 0 || i+1 == total) {
				progress(i+1, total)
			}
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyStats, data)
	})
}

func (s *BoltStore) GetStats() (domain.TableStats, error) {
	var stats domain.TableStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyStats)
		if data == nil {
			return ErrNoTable
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

// GetCount returns the stored count for ngram.
func (s *BoltStore) GetCount(ngram string) (int64, bool, error) {
	var meta ngramMeta
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketNGrams).Get([]byte(ngram))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &meta)
	})
	return meta.Count, found, err
}

// LoadTable reads the stored table back in its original input order.
func (s *BoltStore) LoadTable() (domain.Table, error) {
	stats, err := s.GetStats()
	if err != nil {
		return domain.Table{}, err
	}

	entries := make([]domain.Entry, stats.Entries)
	var total int64
	err = s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketNGrams).ForEach(func(k, v []byte) error {
			var meta ngramMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			if meta.Seq < 0 || meta.Seq >= len(entries) {
				return fmt.Errorf("entry %q has sequence %d outside table of %d", k, meta.Seq, len(entries))
			}
			entries[meta.Seq] = domain.Entry{NGram: string(k), Count: meta.Count}
			total += meta.Count
			return nil
		})
	})
	if err != nil {
		return domain.Table{}, err
	}

	if total != stats.Total {
		return domain.Table{}, fmt.Errorf("stored counts sum to %d, stats say %d", total, stats.Total)
	}

	return domain.Table{Entries: entries, Total: total}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
