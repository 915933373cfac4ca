package transcoder

import (
	"math"

	"fortio.org/safecast"

	"github.com/wippyai/strbridge/errors"
)

const (
	// StackBufSize is the small-string threshold, in bytes for UTF-8 input
	// and in code units for UTF-16 input.
	StackBufSize = 48

	// maxUTF8PerUnit bounds the UTF-8 bytes produced per UTF-16 unit on the
	// small-string path; no sizing pass is needed below the threshold.
	maxUTF8PerUnit = 4

	// maxUTF8PerUnitExact is the real worst case (a BMP code point above U+07FF).
	maxUTF8PerUnitExact = 3
)

func addSize(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

func mulSize(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// hostLength narrows a UTF-16 length to the host runtime's signed size type.
func hostLength(n int) (int32, error) {
	out, err := safecast.Conv[int32](n)
	if err != nil {
		return 0, errors.New(errors.PhaseToHost, errors.KindSizeOverflow).
			Op(opCastUTF16).
			Value(n).
			Cause(err).
			Detail("string size %d overflows int32", n).
			Build()
	}
	return out, nil
}
