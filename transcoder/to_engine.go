package transcoder

import (
	"go.uber.org/zap"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/borrow"
	"github.com/wippyai/strbridge/errors"
)

const (
	opToUTF8       = "convert to UTF-8"
	opIncomplete   = "in_begin != in_end when converting to UTF-8"
	opSizeUTF8     = "compute UTF-8 size"
	opCapacityUTF8 = "choose UTF-8 capacity"
)

// ToEngineBytes converts a host string into an owned UTF-8 buffer.
//
// The chars of s are borrowed only for the conversion; policy decides whether
// the local reference is deleted afterwards. A null s yields a null buffer and
// acquires nothing.
func ToEngineBytes(rt strbridge.HostRuntime, s strbridge.HostString, policy strbridge.ReleasePolicy) (*EncodedBuffer, error) {
	if s.IsNull() {
		return &EncodedBuffer{null: true}, nil
	}

	var buf *EncodedBuffer
	err := borrow.With(rt, s, policy, func(c *borrow.Chars) error {
		var err error
		buf, err = encodeUTF8(c.Data())
		return err
	})
	if err != nil {
		Logger().Debug("rejected host string", zap.Uint32("ref", uint32(s)), zap.Error(err))
		return nil, err
	}
	return buf, nil
}

func encodeUTF8(in []uint16) (*EncodedBuffer, error) {
	capacity, err := utf8Capacity(in)
	if err != nil {
		return nil, err
	}

	buf := newEncodedBuffer(capacity)
	inPos, outPos := 0, 0
	if code := toUTF8(in, &inPos, buf.data, &outPos); code != CodeOK {
		buf.Release()
		return nil, utf16Failure(opToUTF8, in, inPos, outPos, capacity, code)
	}
	if inPos != len(in) {
		buf.Release()
		return nil, utf16Failure(opIncomplete, in, inPos, outPos, capacity, CodeOK)
	}

	buf.size = outPos
	clear(buf.data[outPos:])
	return buf, nil
}

// utf8Capacity picks the output size: four bytes per unit for short input,
// an exact sizing pass otherwise.
func utf8Capacity(in []uint16) (int, error) {
	if len(in) <= StackBufSize {
		n, ok := mulSize(len(in), maxUTF8PerUnit)
		if !ok {
			return 0, errors.SizeOverflow(errors.PhaseToEngine, opCapacityUTF8, len(in), "int")
		}
		return n, nil
	}

	if _, ok := mulSize(len(in), maxUTF8PerUnitExact); !ok {
		return 0, errors.SizeOverflow(errors.PhaseToEngine, opSizeUTF8, len(in), "int")
	}
	pos := 0
	size, code := utf8BufSize(in, &pos)
	if code != CodeOK {
		return 0, utf16Failure(opSizeUTF8, in, pos, 0, 0, code)
	}

	Logger().Debug("sized long host string",
		zap.Int("units", len(in)),
		zap.Int("bytes", size))
	return size, nil
}
