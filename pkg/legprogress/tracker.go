// Package legprogress implements a durable, single-writer-per-run set
// of resource keys marking embedding work already completed, so resumed
// runs can skip it.
package legprogress

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// present is the sentinel value stored for every marked key; presence
// of the key is the only signal that matters.
var present = []byte{1}

// Tracker is a durable on-disk set keyed by resourceKey, backed by a
// local BadgerDB instance. It is safe for a single writer; concurrent
// use by more than one run must be serialized by the caller.
type Tracker struct {
	db *badger.DB
}

// Open opens (creating if absent) a Tracker rooted at dir.
func Open(dir string) (*Tracker, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("legprogress: create dir %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("legprogress: open %s: %w", dir, err)
	}
	return &Tracker{db: db}, nil
}

// Close closes the underlying database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Mark records resourceKey as complete.
func (t *Tracker) Mark(resourceKey string) error {
	return t.MarkMany([]string{resourceKey})
}

// MarkMany records every resourceKey in keys as complete in one
// transaction. Called only after a batch's persistence transaction has
// committed, per the pipeline's ordering guarantee.
func (t *Tracker) MarkMany(keys []string) error {
	return t.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Set([]byte(k), present); err != nil {
				return fmt.Errorf("legprogress: mark %s: %w", k, err)
			}
		}
		return nil
	})
}

// Has reports whether resourceKey has been marked.
func (t *Tracker) Has(resourceKey string) (bool, error) {
	result, err := t.HasMany([]string{resourceKey})
	if err != nil {
		return false, err
	}
	return result[resourceKey], nil
}

// HasMany returns a map of resourceKey -> whether it has been marked.
func (t *Tracker) HasMany(keys []string) (map[string]bool, error) {
	out := make(map[string]bool, len(keys))
	err := t.db.View(func(txn *badger.Txn) error {
		for _, k := range keys {
			_, err := txn.Get([]byte(k))
			switch err {
			case nil:
				out[k] = true
			case badger.ErrKeyNotFound:
				out[k] = false
			default:
				return fmt.Errorf("legprogress: get %s: %w", k, err)
			}
		}
		return nil
	})
	return out, err
}

// CountByPrefix returns the number of keys beginning with prefix, e.g.
// a sourceType prefix like "act_section:".
func (t *Tracker) CountByPrefix(prefix string) (int, error) {
	count := 0
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix([]byte(prefix)); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// ClearByPrefix deletes every key beginning with prefix, used to force
// a clean re-embed of one source-type family.
func (t *Tracker) ClearByPrefix(prefix string) error {
	return t.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		var keys [][]byte
		for it.Rewind(); it.ValidForPrefix([]byte(prefix)); it.Next() {
			keys = append(keys, append([]byte(nil), it.Item().Key()...))
		}
		it.Close()
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("legprogress: delete %s: %w", k, err)
			}
		}
		return nil
	})
}

// SampleKeys returns up to n keys beginning with prefix, for debugging.
func (t *Tracker) SampleKeys(prefix string, n int) ([]string, error) {
	var out []string
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix([]byte(prefix)) && len(out) < n; it.Next() {
			out = append(out, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return out, err
}
