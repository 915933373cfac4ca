// Package transcoder converts string values between the storage engine's
// UTF-8 and the host runtime's UTF-16.
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ StringData (UTF-8) ──ToHostString──▶ HostString (UTF-16)     │
//	│ HostString (UTF-16) ─ToEngineBytes─▶ EncodedBuffer (UTF-8)   │
//	└──────────────────────────────────────────────────────────────┘
//
// # Engine to Host
//
// Inputs of at most StackBufSize bytes convert into a fixed stack array of
// StackBufSize code units. A UTF-8 byte never yields more than one UTF-16
// unit, so short inputs always fit. Longer inputs, or a stack buffer that
// runs out, take the heap path: a sizing pass over the unconverted input,
// one allocation, the converted prefix copied forward, then the rest.
//
// # Host to Engine
//
// The host string's chars are borrowed through package borrow for the
// duration of the conversion. Inputs of at most StackBufSize units get a
// buffer of four bytes per unit with no sizing pass; longer inputs are sized
// exactly first. Unused capacity is zeroed after conversion. Small buffers
// come from a pool and go back on EncodedBuffer.Release.
//
// # Error Handling
//
// Malformed input fails with an errors.KindEncoding error carrying the
// ErrorCode, its message, a hex dump of the input and the positions where
// conversion stopped:
//
//	[to_host] encoding_error in convert short string to UTF-16 (error_code = 3;
//	  Incomplete UTF-8 sequence; size = 1; hex = 0xe2; in_begin = 0; in_end = 1;
//	  out_curr = 0; out_end = 48)
//
// Sizes that do not fit their target integer type fail with
// errors.KindSizeOverflow. Nothing is retried and no partial result is
// returned.
//
// # Thread Safety
//
// Both conversions are safe for concurrent use.
package transcoder
