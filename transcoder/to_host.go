package transcoder

import (
	"go.uber.org/zap"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
)

const (
	opShortToUTF16 = "convert short string to UTF-16"
	opSizeUTF16    = "compute UTF-16 size"
	opLongToUTF16  = "convert long string to UTF-16"
	opCastUTF16    = "cast UTF-16 length"
	opNewString    = "new host string"
)

// ToHostString converts engine UTF-8 into a new host string object.
// The null StringData yields NullString without touching the runtime.
func ToHostString(rt strbridge.HostRuntime, str strbridge.StringData) (strbridge.HostString, error) {
	if str.IsNull() {
		return strbridge.NullString, nil
	}
	if rt == nil {
		return strbridge.NullString, errors.InvalidInput(errors.PhaseToHost, "nil host runtime")
	}

	var stackBuf [StackBufSize]uint16
	units, err := transcodeUTF16(str.Data(), stackBuf[:], StackBufSize)
	if err != nil {
		Logger().Debug("rejected engine string", zap.Int("bytes", str.Size()), zap.Error(err))
		return strbridge.NullString, err
	}

	n, err := hostLength(len(units))
	if err != nil {
		return strbridge.NullString, err
	}
	s, err := rt.NewString(units, n)
	if err != nil {
		return strbridge.NullString, errors.New(errors.PhaseToHost, errors.KindAllocation).
			Op(opNewString).
			Cause(err).
			Detail("%d code units", n).
			Build()
	}
	return s, nil
}

// transcodeUTF16 converts in to UTF-16, first into stack when in is at most
// threshold bytes long. When stack runs out, the converted prefix moves to a
// heap buffer sized by a pass over the rest of the input.
func transcodeUTF16(in []byte, stack []uint16, threshold int) ([]uint16, error) {
	out := stack
	var inPos, outPos int

	if len(in) <= threshold {
		switch code := toUTF16(in, &inPos, out, &outPos); code {
		case CodeOK:
			return out[:outPos], nil
		case CodeOutputExhausted:
		default:
			return nil, utf8Failure(opShortToUTF16, in, inPos, outPos, len(out), code)
		}
	}

	sizePos := inPos
	size, code := utf16BufSize(in, &sizePos)
	if code != CodeOK {
		return nil, utf8Failure(opSizeUTF16, in, sizePos, outPos, len(out), code)
	}
	if _, ok := addSize(size, len(stack)); !ok {
		return nil, errors.SizeOverflow(errors.PhaseToHost, opSizeUTF16, size, "int")
	}

	Logger().Debug("utf-16 output exceeds stack buffer",
		zap.Int("bytes", len(in)),
		zap.Int("prefix_units", outPos),
		zap.Int("remaining_units", size))

	heap := make([]uint16, outPos+size)
	outPos = copy(heap, out[:outPos])
	out = heap

	if code := toUTF16(in, &inPos, out, &outPos); code != CodeOK {
		return nil, utf8Failure(opLongToUTF16, in, inPos, outPos, len(out), code)
	}
	return out[:outPos], nil
}
