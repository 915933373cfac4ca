package interop

import (
	"fmt"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/transcoder"
)

// Fields reads and writes string-typed fields for a host runtime.
type Fields struct {
	rt    strbridge.HostRuntime
	store Store
}

func NewFields(rt strbridge.HostRuntime, store Store) *Fields {
	return &Fields{rt: rt, store: store}
}

// SetString converts s to UTF-8 and stores it under key.
// policy decides whether the local reference to s is deleted.
func (f *Fields) SetString(key string, s strbridge.HostString, policy strbridge.ReleasePolicy) error {
	buf, err := transcoder.ToEngineBytes(f.rt, s, policy)
	if err != nil {
		return fmt.Errorf("set field %q: %w", key, err)
	}
	defer buf.Release()

	return f.store.Put(key, buf.StringData())
}

// GetString loads key and returns it as a new host string.
// A stored null yields strbridge.NullString.
func (f *Fields) GetString(key string) (strbridge.HostString, error) {
	data, err := f.store.Get(key)
	if err != nil {
		return strbridge.NullString, err
	}
	s, err := transcoder.ToHostString(f.rt, data)
	if err != nil {
		return strbridge.NullString, fmt.Errorf("get field %q: %w", key, err)
	}
	return s, nil
}
