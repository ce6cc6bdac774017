// Package magicstore remembers magics found by earlier searches so the next
// search can try them first.
package magicstore

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/magic"
)

const keyPrefix = "magics/"

type Store struct {
	db *badger.DB
}

func open(opts badger.Options) (*Store, Error) {
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, Errorf("opening magic store: %w", err)
	}
	return &Store{db: db}, NilError
}

func Open(dir string) (*Store, Error) {
	return open(badger.DefaultOptions(dir))
}

func OpenInMemory() (*Store, Error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func (s *Store) Close() Error {
	if s.db == nil {
		return NilError
	}
	return Wrap(s.db.Close())
}

func key(slider string) []byte {
	return []byte(keyPrefix + slider)
}

func (s *Store) Save(slider string, magics [64]magic.MagicValue) Error {
	data, err := json.Marshal(magics)
	if err != nil {
		return Wrap(err)
	}

	return Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(slider), data)
	}))
}

// Load returns the stored magics for slider. found is false when nothing has
// been saved yet, which is not an error.
func (s *Store) Load(slider string) ([64]magic.MagicValue, bool, Error) {
	magics := [64]magic.MagicValue{}
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(slider))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &magics)
		})
	})

	return magics, found, Wrap(err)
}

// SaveEntries stores the magics of every searched square. Squares without a
// table keep whatever magic was stored for them before.
func (s *Store) SaveEntries(slider string, entries [64]magic.Entry) Error {
	magics, _, err := s.Load(slider)
	if !IsNil(err) {
		return err
	}

	for i := range entries {
		if entries[i].Ready() {
			magics[i] = entries[i].Value()
		}
	}

	return s.Save(slider, magics)
}

// KnownMagics loads every slider that has been saved, ready to be used as
// magic.Options.KnownMagics.
func (s *Store) KnownMagics(sliders ...string) (map[string][64]magic.MagicValue, Error) {
	result := map[string][64]magic.MagicValue{}
	for _, slider := range sliders {
		magics, found, err := s.Load(slider)
		if !IsNil(err) {
			return nil, err
		}
		if found {
			result[slider] = magics
		}
	}
	return result, NilError
}
