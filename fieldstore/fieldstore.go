// Package fieldstore keeps named anchor sets in an embedded key-value store,
// so rigs built in an interactive session can be reloaded later.
package fieldstore

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger"
	"golang.org/x/xerrors"

	"stretchwarp/anchorfile"
	"stretchwarp/stretch"
)

// Key prefixes that denote different tables in the key-value store.
const (
	KeyTypeField uint32 = 0
)

var (
	ErrNotFound = xerrors.New("no anchor set with that name")
	ErrCorrupt  = xerrors.New("stored anchor set is corrupt")
)

func FieldKey(name string) []byte {
	key := make([]byte, 4+len(name))
	binary.BigEndian.PutUint32(key[0:4], KeyTypeField)
	copy(key[4:], name)
	return key
}

func FieldKeyPrefixAllFields() []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key[0:4], KeyTypeField)
	return key
}

func DecodeFieldKey(key []byte) (string, error) {
	if len(key) < 4 || binary.BigEndian.Uint32(key[0:4]) != KeyTypeField {
		return "", xerrors.Errorf("key %x is not a field key: %w", key, ErrCorrupt)
	}
	return string(key[4:]), nil
}

type Store struct {
	DB *badger.DB

	dir string
}

// Open opens (creating if needed) the store rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, xerrors.Errorf("while opening badger kv dir %q: %w", dir, err)
	}
	return &Store{DB: db, dir: dir}, nil
}

func (s *Store) Close() error {
	if err := s.DB.Close(); err != nil {
		return xerrors.Errorf("while closing database: %w", err)
	}
	return nil
}

// Put stores set under name, replacing any previous set with that name.
func (s *Store) Put(name string, set *stretch.AnchorSet) error {
	if name == "" {
		return xerrors.New("anchor set name must not be empty")
	}

	val, err := encodeSet(set)
	if err != nil {
		return xerrors.Errorf("while encoding anchor set %q: %w", name, err)
	}

	err = s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set(FieldKey(name), val)
	})
	if err != nil {
		return xerrors.Errorf("while writing anchor set %q: %w", name, err)
	}
	return nil
}

func (s *Store) Get(name string) (*stretch.AnchorSet, error) {
	var set *stretch.AnchorSet
	err := s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(FieldKey(name))
		if xerrors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		set, err = decodeSet(val)
		return err
	})
	if err != nil {
		return nil, xerrors.Errorf("while reading anchor set %q: %w", name, err)
	}
	return set, nil
}

// Delete removes name.  Deleting a missing name is an ErrNotFound error.
func (s *Store) Delete(name string) error {
	err := s.DB.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(FieldKey(name)); err != nil {
			if xerrors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(FieldKey(name))
	})
	if err != nil {
		return xerrors.Errorf("while deleting anchor set %q: %w", name, err)
	}
	return nil
}

// List returns every stored name in ascending order.
func (s *Store) List() ([]string, error) {
	names := []string{}
	err := s.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := FieldKeyPrefixAllFields()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			name, err := DecodeFieldKey(it.Item().KeyCopy(nil))
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("while listing anchor sets: %w", err)
	}
	return names, nil
}

// Values are anchor documents, so stored coordinates pass the same checks
// as anchor files.
func encodeSet(set *stretch.AnchorSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := anchorfile.Save(buf, set); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSet(val []byte) (*stretch.AnchorSet, error) {
	set, err := anchorfile.Load(bytes.NewReader(val))
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrCorrupt)
	}
	return set, nil
}

func (s *Store) String() string {
	return fmt.Sprintf("fieldstore(%s)", s.dir)
}
