package interop

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
	"github.com/wippyai/strbridge/hostrt"
)

func newFields(t *testing.T) (*Fields, *hostrt.Local) {
	t.Helper()
	rt := hostrt.NewLocal()
	t.Cleanup(func() { _ = rt.Close(context.Background()) })
	return NewFields(rt, newMemStore(t)), rt
}

func TestFields_RoundTrip(t *testing.T) {
	f, rt := newFields(t)

	for _, in := range []string{"", "héllo", strings.Repeat("語\U0001F600", 50)} {
		s, err := rt.NewStringFromGo(in)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetString("field", s, strbridge.DropLocalReference); err != nil {
			t.Fatal(err)
		}

		got, err := f.GetString("field")
		if err != nil {
			t.Fatal(err)
		}
		if got.IsNull() {
			t.Fatal("non-null value came back null")
		}
		if str, _ := rt.GoString(got); str != in {
			t.Fatalf("GetString = %q, want %q", str, in)
		}
		rt.DeleteLocalRef(got)
	}

	if rt.LiveRefs() != 0 {
		t.Fatalf("LiveRefs = %d, want 0", rt.LiveRefs())
	}
}

func TestFields_Null(t *testing.T) {
	f, _ := newFields(t)

	if err := f.SetString("n", strbridge.NullString, strbridge.DropLocalReference); err != nil {
		t.Fatal(err)
	}
	got, err := f.GetString("n")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsNull() {
		t.Fatalf("GetString = %d, want null", got)
	}
}

func TestFields_KeepReference(t *testing.T) {
	f, rt := newFields(t)

	s, err := rt.NewStringFromGo("kept")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetString("k", s, strbridge.KeepReference); err != nil {
		t.Fatal(err)
	}
	if str, err := rt.GoString(s); err != nil || str != "kept" {
		t.Fatalf("reference should stay live, got (%q, %v)", str, err)
	}
}

func TestFields_MalformedIsNotStored(t *testing.T) {
	f, rt := newFields(t)

	s, err := rt.NewStringFromUnits([]uint16{'a', 0xD800})
	if err != nil {
		t.Fatal(err)
	}
	err = f.SetString("bad", s, strbridge.DropLocalReference)
	if !stderrors.Is(err, errors.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Fatalf("error %q should name the field", err)
	}
	if rt.LiveRefs() != 0 {
		t.Fatal("reference should be dropped on failure")
	}
	if _, err := f.GetString("bad"); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestFields_MalformedStoredBytes(t *testing.T) {
	f, _ := newFields(t)

	if err := f.store.Put("raw", strbridge.NewStringData([]byte{0xE2})); err != nil {
		t.Fatal(err)
	}
	_, err := f.GetString("raw")
	if !stderrors.Is(err, errors.ErrEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}
