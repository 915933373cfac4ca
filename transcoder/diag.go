package transcoder

import (
	"fmt"
	"strings"

	"github.com/wippyai/strbridge/errors"
)

// maxHexUnits caps the input dump attached to conversion errors.
const maxHexUnits = 256

func hexBytes(in []byte) string {
	var b strings.Builder
	for i, c := range in {
		if i == maxHexUnits {
			fmt.Fprintf(&b, " ...(%d more)", len(in)-maxHexUnits)
			break
		}
		fmt.Fprintf(&b, " 0x%02x", c)
	}
	return b.String()
}

func hexUnits(in []uint16) string {
	var b strings.Builder
	for i, c := range in {
		if i == maxHexUnits {
			fmt.Fprintf(&b, " ...(%d more)", len(in)-maxHexUnits)
			break
		}
		fmt.Fprintf(&b, " 0x%04x", c)
	}
	return b.String()
}

// utf8Failure reports a failed UTF-8 to UTF-16 conversion.
func utf8Failure(op string, in []byte, inPos, outPos, outEnd int, code ErrorCode) *errors.Error {
	return errors.Encoding(errors.PhaseToHost, op, uint8(code), &errors.Diagnostic{
		Reason:   MessageFor(code),
		Hex:      hexBytes(in),
		InputLen: len(in),
		InBegin:  inPos,
		InEnd:    len(in),
		OutCurr:  outPos,
		OutEnd:   outEnd,
	})
}

// utf16Failure reports a failed UTF-16 to UTF-8 conversion.
func utf16Failure(op string, in []uint16, inPos, outPos, outEnd int, code ErrorCode) *errors.Error {
	return errors.Encoding(errors.PhaseToEngine, op, uint8(code), &errors.Diagnostic{
		Reason:   MessageFor(code),
		Hex:      hexUnits(in),
		InputLen: len(in),
		InBegin:  inPos,
		InEnd:    len(in),
		OutCurr:  outPos,
		OutEnd:   outEnd,
	})
}
