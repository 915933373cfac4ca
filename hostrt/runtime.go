package hostrt

import (
	"context"
	stderrors "errors"
	"unicode/utf16"

	"fortio.org/safecast"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
	"github.com/wippyai/strbridge/resource"
)

// Runtime is a host runtime that Go code can also create and read strings on.
type Runtime interface {
	strbridge.HostRuntime

	// NewStringFromGo creates a string object holding s.
	NewStringFromGo(s string) (strbridge.HostString, error)

	// GoString returns the contents of s. Unpaired surrogates read as U+FFFD.
	GoString(s strbridge.HostString) (string, error)

	// LiveRefs returns the number of live local references.
	LiveRefs() int

	// Close releases every reference and the runtime's storage.
	Close(ctx context.Context) error
}

var (
	_ Runtime = (*Local)(nil)
	_ Runtime = (*Wasm)(nil)
)

func encodeGo(s string) ([]uint16, int32, error) {
	units := utf16.Encode([]rune(s))
	n, err := safecast.Conv[int32](len(units))
	if err != nil {
		return nil, 0, errors.SizeOverflow(errors.PhaseHost, "new string from Go", len(units), "int32")
	}
	return units, n, nil
}

func checkLength(units []uint16, length int32) error {
	if length < 0 || int(length) > len(units) {
		return errors.InvalidInput(errors.PhaseHost, "string length out of range of the unit buffer")
	}
	return nil
}

func refError(s strbridge.HostString, err error) error {
	switch {
	case stderrors.Is(err, resource.ErrInvalidHandle):
		return errors.InvalidReference(errors.PhaseHost, uint32(s))
	case stderrors.Is(err, resource.ErrOutstandingBorrow):
		return errors.Wrap(errors.PhaseHost, errors.KindOutstandingBorrow, err, "delete local reference")
	default:
		return errors.Wrap(errors.PhaseHost, errors.KindInvalidReference, err, "local reference")
	}
}
