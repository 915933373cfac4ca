package interop

import (
	stderrors "errors"
	"os"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
)

// Store keeps engine string values by key.
type Store interface {
	Put(key string, value strbridge.StringData) error
	Get(key string) (strbridge.StringData, error)
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

var fieldPrefix = []byte("/field/")

const (
	tagNull  byte = 0
	tagValue byte = 1
)

func fieldKey(key string) []byte {
	return append(append([]byte(nil), fieldPrefix...), key...)
}

// LevelStore is a Store backed by goleveldb.
type LevelStore struct {
	db     *leveldb.DB
	mu     sync.Mutex
	closed bool
}

// OpenLevelStore opens or creates a store in dir.
func OpenLevelStore(dir string) (*LevelStore, error) {
	if dir == "" {
		return nil, errors.InvalidInput(errors.PhaseStore, "empty store path")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "create store directory")
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.NoCompression,
		Filter:      filter.NewBloomFilter(10),
		WriteBuffer: 1 << 22,
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "open leveldb")
	}
	return &LevelStore{db: db}, nil
}

// NewMemLevelStore creates a store that lives only in memory.
func NewMemLevelStore() (*LevelStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "open memory leveldb")
	}
	return &LevelStore{db: db}, nil
}

func (s *LevelStore) Put(key string, value strbridge.StringData) error {
	if key == "" {
		return errors.InvalidInput(errors.PhaseStore, "empty field key")
	}
	rec := make([]byte, 1, 1+value.Size())
	if value.IsNull() {
		rec[0] = tagNull
	} else {
		rec[0] = tagValue
		rec = append(rec, value.Data()...)
	}
	if err := s.db.Put(fieldKey(key), rec, nil); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "put field "+key)
	}
	return nil
}

// Get returns the stored value. The returned data is owned by the caller.
func (s *LevelStore) Get(key string) (strbridge.StringData, error) {
	rec, err := s.db.Get(fieldKey(key), nil)
	if stderrors.Is(err, ldberrors.ErrNotFound) {
		return strbridge.NullStringData(), errors.NotFound(errors.PhaseStore, "field", key)
	}
	if err != nil {
		return strbridge.NullStringData(), errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "get field "+key)
	}
	return decodeRecord(key, rec)
}

func decodeRecord(key string, rec []byte) (strbridge.StringData, error) {
	if len(rec) == 0 {
		return strbridge.NullStringData(), errors.New(errors.PhaseStore, errors.KindInvalidData).
			Op("decode field").
			Detail("empty record for %q", key).
			Build()
	}
	switch rec[0] {
	case tagNull:
		return strbridge.NullStringData(), nil
	case tagValue:
		return strbridge.NewStringData(rec[1:]), nil
	default:
		return strbridge.NullStringData(), errors.New(errors.PhaseStore, errors.KindInvalidData).
			Op("decode field").
			Value(rec[0]).
			Detail("unknown record tag %#x for %q", rec[0], key).
			Build()
	}
}

func (s *LevelStore) Delete(key string) error {
	if err := s.db.Delete(fieldKey(key), nil); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "delete field "+key)
	}
	return nil
}

// Keys lists stored field keys in byte order.
func (s *LevelStore) Keys() ([]string, error) {
	iter := s.db.NewIterator(util.BytesPrefix(fieldPrefix), &opt.ReadOptions{DontFillCache: true})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, strings.TrimPrefix(string(iter.Key()), string(fieldPrefix)))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "list fields")
	}
	return keys, nil
}

// Close closes the database. Calls after the first are no-ops.
func (s *LevelStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
