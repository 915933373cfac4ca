package interop

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
)

func newMemStore(t *testing.T) *LevelStore {
	t.Helper()
	s, err := NewMemLevelStore()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLevelStore_PutGet(t *testing.T) {
	s := newMemStore(t)

	tests := []struct {
		name  string
		key   string
		value strbridge.StringData
	}{
		{"value", "title", strbridge.NewStringData([]byte("héllo"))},
		{"empty", "blank", strbridge.NewStringData(nil)},
		{"null", "missing", strbridge.NullStringData()},
		{"binary-looking", "raw", strbridge.NewStringData([]byte{0, 1, 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Put(tt.key, tt.value); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if got.IsNull() != tt.value.IsNull() {
				t.Fatalf("IsNull = %v, want %v", got.IsNull(), tt.value.IsNull())
			}
			if string(got.Data()) != string(tt.value.Data()) {
				t.Fatalf("Data = %q, want %q", got.Data(), tt.value.Data())
			}
		})
	}
}

func TestLevelStore_NotFound(t *testing.T) {
	s := newMemStore(t)

	_, err := s.Get("nope")
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	if err := s.Put("k", strbridge.NewStringData([]byte("v"))); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("k"); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestLevelStore_EmptyKey(t *testing.T) {
	s := newMemStore(t)
	if err := s.Put("", strbridge.NewStringData([]byte("v"))); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestLevelStore_Keys(t *testing.T) {
	s := newMemStore(t)
	for _, k := range []string{"b", "a", "c"} {
		if err := s.Put(k, strbridge.NewStringData([]byte(k))); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", keys, want)
		}
	}
}

func TestDecodeRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     []byte
		null    bool
		data    string
		wantErr bool
	}{
		{"null", []byte{tagNull}, true, "", false},
		{"value", []byte{tagValue, 'h', 'i'}, false, "hi", false},
		{"empty value", []byte{tagValue}, false, "", false},
		{"empty record", nil, false, "", true},
		{"unknown tag", []byte{7, 'x'}, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRecord("k", tt.rec)
			if tt.wantErr {
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidData {
					t.Fatalf("expected invalid_data, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.IsNull() != tt.null || string(got.Data()) != tt.data {
				t.Fatalf("got (%v, %q)", got.IsNull(), got.Data())
			}
		})
	}
}

func TestLevelStore_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := OpenLevelStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("name", strbridge.NewStringData([]byte("日本"))); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	s, err = OpenLevelStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Get("name")
	if err != nil || got.String() != "日本" {
		t.Fatalf("Get = (%v, %v)", got, err)
	}
}

func TestOpenLevelStore_EmptyPath(t *testing.T) {
	if _, err := OpenLevelStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
