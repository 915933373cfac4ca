package transcoder

// ErrorCode reports why a conversion loop stopped.
type ErrorCode uint8

const (
	CodeOK ErrorCode = iota
	CodeOutputExhausted
	CodeInvalidLeadByte
	CodeIncompleteSequence
	CodeInvalidContinuation
	CodeInvalidFirstSurrogate
	CodeIncompleteSurrogate
	CodeInvalidSecondSurrogate
)

// MessageFor returns the human-readable reason for code.
func MessageFor(code ErrorCode) string {
	switch code {
	case CodeOK:
		return "No error"
	case CodeOutputExhausted:
		return "Not enough output buffer space"
	case CodeInvalidLeadByte:
		return "Invalid UTF-8 lead byte"
	case CodeIncompleteSequence:
		return "Incomplete UTF-8 sequence"
	case CodeInvalidContinuation:
		return "Invalid UTF-8 continuation byte"
	case CodeInvalidFirstSurrogate:
		return "Invalid first half of surrogate pair"
	case CodeIncompleteSurrogate:
		return "Incomplete surrogate pair"
	case CodeInvalidSecondSurrogate:
		return "Invalid second half of surrogate pair"
	default:
		return "Unknown"
	}
}

func (c ErrorCode) String() string {
	return MessageFor(c)
}
