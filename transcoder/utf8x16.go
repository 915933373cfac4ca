package transcoder

import (
	"unicode/utf16"
	"unicode/utf8"
)

const (
	surrHighFirst = 0xD800
	surrLowFirst  = 0xDC00
	surrLast      = 0xDFFF
)

// decodeUTF8 decodes the first code point of p, which must be non-empty.
// Overlong forms, encoded surrogates and values above U+10FFFF are rejected.
func decodeUTF8(p []byte) (rune, int, ErrorCode) {
	b := p[0]
	if b < utf8.RuneSelf {
		return rune(b), 1, CodeOK
	}
	if b < 0xC2 || b > 0xF4 {
		return utf8.RuneError, 0, CodeInvalidLeadByte
	}
	if !utf8.FullRune(p) {
		return utf8.RuneError, 0, CodeIncompleteSequence
	}
	r, n := utf8.DecodeRune(p)
	if r == utf8.RuneError && n == 1 {
		return utf8.RuneError, 0, CodeInvalidContinuation
	}
	return r, n, CodeOK
}

// decodeUTF16 decodes the first code point of p, which must be non-empty.
func decodeUTF16(p []uint16) (rune, int, ErrorCode) {
	c := p[0]
	switch {
	case c < surrHighFirst || c > surrLast:
		return rune(c), 1, CodeOK
	case c >= surrLowFirst:
		return utf8.RuneError, 0, CodeInvalidFirstSurrogate
	case len(p) < 2:
		return utf8.RuneError, 0, CodeIncompleteSurrogate
	}
	c2 := p[1]
	if c2 < surrLowFirst || c2 > surrLast {
		return utf8.RuneError, 0, CodeInvalidSecondSurrogate
	}
	return utf16.DecodeRune(rune(c), rune(c2)), 2, CodeOK
}

// toUTF16 converts in[*inPos:] into out[*outPos:], advancing both positions.
// It stops with CodeOutputExhausted when the next code point does not fit,
// and returns CodeOK only when all input is consumed.
func toUTF16(in []byte, inPos *int, out []uint16, outPos *int) ErrorCode {
	i, o := *inPos, *outPos
	code := CodeOK
	for i < len(in) {
		if b := in[i]; b < utf8.RuneSelf {
			if o == len(out) {
				code = CodeOutputExhausted
				break
			}
			out[o] = uint16(b)
			i++
			o++
			continue
		}
		r, n, c := decodeUTF8(in[i:])
		if c != CodeOK {
			code = c
			break
		}
		if r >= 0x10000 {
			if len(out)-o < 2 {
				code = CodeOutputExhausted
				break
			}
			r1, r2 := utf16.EncodeRune(r)
			out[o] = uint16(r1)
			out[o+1] = uint16(r2)
			o += 2
		} else {
			if o == len(out) {
				code = CodeOutputExhausted
				break
			}
			out[o] = uint16(r)
			o++
		}
		i += n
	}
	*inPos, *outPos = i, o
	return code
}

// utf16BufSize returns the number of UTF-16 units needed for in[*inPos:].
// On malformed input *inPos is left at the offending sequence.
// The result never exceeds the number of input bytes.
func utf16BufSize(in []byte, inPos *int) (int, ErrorCode) {
	i, size := *inPos, 0
	code := CodeOK
	for i < len(in) {
		if in[i] < utf8.RuneSelf {
			i++
			size++
			continue
		}
		r, n, c := decodeUTF8(in[i:])
		if c != CodeOK {
			code = c
			break
		}
		size += utf16.RuneLen(r)
		i += n
	}
	*inPos = i
	return size, code
}

// toUTF8 converts in[*inPos:] into out[*outPos:], advancing both positions.
// It stops with CodeOutputExhausted when the next code point does not fit,
// and returns CodeOK only when all input is consumed.
func toUTF8(in []uint16, inPos *int, out []byte, outPos *int) ErrorCode {
	i, o := *inPos, *outPos
	code := CodeOK
	for i < len(in) {
		if c := in[i]; c < utf8.RuneSelf {
			if o == len(out) {
				code = CodeOutputExhausted
				break
			}
			out[o] = byte(c)
			i++
			o++
			continue
		}
		r, n, c := decodeUTF16(in[i:])
		if c != CodeOK {
			code = c
			break
		}
		if len(out)-o < utf8.RuneLen(r) {
			code = CodeOutputExhausted
			break
		}
		o += utf8.EncodeRune(out[o:], r)
		i += n
	}
	*inPos, *outPos = i, o
	return code
}

// utf8BufSize returns the number of UTF-8 bytes needed for in[*inPos:].
// The result never exceeds three bytes per input unit.
func utf8BufSize(in []uint16, inPos *int) (int, ErrorCode) {
	i, size := *inPos, 0
	code := CodeOK
	for i < len(in) {
		if in[i] < utf8.RuneSelf {
			i++
			size++
			continue
		}
		r, n, c := decodeUTF16(in[i:])
		if c != CodeOK {
			code = c
			break
		}
		size += utf8.RuneLen(r)
		i += n
	}
	*inPos = i
	return size, code
}
