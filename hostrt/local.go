package hostrt

import (
	"context"
	"unicode/utf16"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
	"github.com/wippyai/strbridge/resource"
)

// Local keeps string objects on the Go heap.
type Local struct {
	table *resource.Table
}

type localString struct {
	units []uint16
}

// NewLocal creates an empty in-process runtime.
func NewLocal() *Local {
	table := resource.NewTable()
	table.Subscribe(resource.ObserverFunc(traceEvent))
	return &Local{table: table}
}

func (l *Local) object(s strbridge.HostString) (*localString, error) {
	v, ok := l.table.Get(resource.Handle(s))
	if !ok {
		return nil, errors.InvalidReference(errors.PhaseHost, uint32(s))
	}
	return v.(*localString), nil
}

func (l *Local) GetStringLength(s strbridge.HostString) (int32, error) {
	obj, err := l.object(s)
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[int32](len(obj.units))
	if err != nil {
		return 0, errors.SizeOverflow(errors.PhaseHost, "get string length", len(obj.units), "int32")
	}
	return n, nil
}

// GetStringChars returns the object's own storage; isCopy is always false.
func (l *Local) GetStringChars(s strbridge.HostString) ([]uint16, bool, error) {
	v, err := l.table.Borrow(resource.Handle(s))
	if err != nil {
		return nil, false, refError(s, err)
	}
	return v.(*localString).units, false, nil
}

func (l *Local) ReleaseStringChars(s strbridge.HostString, _ []uint16) {
	if err := l.table.ReturnBorrow(resource.Handle(s)); err != nil {
		Logger().Warn("release of unborrowed string chars",
			zap.Uint32("ref", uint32(s)),
			zap.Error(err))
	}
}

func (l *Local) DeleteLocalRef(s strbridge.HostString) {
	if s.IsNull() {
		return
	}
	if _, err := l.table.Remove(resource.Handle(s)); err != nil {
		Logger().Warn("delete local reference failed",
			zap.Uint32("ref", uint32(s)),
			zap.Error(err))
	}
}

// NewString copies the first length units into a new string object.
func (l *Local) NewString(units []uint16, length int32) (strbridge.HostString, error) {
	if err := checkLength(units, length); err != nil {
		return strbridge.NullString, err
	}
	obj := &localString{units: make([]uint16, length)}
	copy(obj.units, units)

	h, err := l.table.Insert(obj)
	if err != nil {
		return strbridge.NullString, errors.Wrap(errors.PhaseHost, errors.KindAllocation, err, "new string")
	}
	return strbridge.HostString(h), nil
}

func (l *Local) NewStringFromGo(s string) (strbridge.HostString, error) {
	units, n, err := encodeGo(s)
	if err != nil {
		return strbridge.NullString, err
	}
	return l.NewString(units, n)
}

// NewStringFromUnits creates a string object from raw code units, which need
// not be well-formed UTF-16.
func (l *Local) NewStringFromUnits(units []uint16) (strbridge.HostString, error) {
	n, err := safecast.Conv[int32](len(units))
	if err != nil {
		return strbridge.NullString, errors.SizeOverflow(errors.PhaseHost, "new string from units", len(units), "int32")
	}
	return l.NewString(units, n)
}

func (l *Local) GoString(s strbridge.HostString) (string, error) {
	obj, err := l.object(s)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(obj.units)), nil
}

// Units returns a copy of the code units of s.
func (l *Local) Units(s strbridge.HostString) ([]uint16, error) {
	obj, err := l.object(s)
	if err != nil {
		return nil, err
	}
	return append([]uint16(nil), obj.units...), nil
}

// Borrows returns the outstanding GetStringChars borrows of s.
func (l *Local) Borrows(s strbridge.HostString) int {
	n, _ := l.table.Borrows(resource.Handle(s))
	return int(n)
}

func (l *Local) LiveRefs() int {
	return l.table.Len()
}

func (l *Local) Close(context.Context) error {
	return l.table.Close()
}
