// Package errors provides structured error types for the string bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Conversion failures also carry the operation that failed, a numeric error code and
// a Diagnostic with a hex dump of the input and the positions where conversion stopped.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseToHost, errors.KindSizeOverflow).
//		Op("cast UTF-16 length").
//		Value(n).
//		Detail("string size %d overflows int32", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Encoding(errors.PhaseToEngine, "convert to UTF-8", code, diag)
//	err := errors.NotFound(errors.PhaseStore, "field", key)
//
// ErrSizeOverflow, ErrEncoding and ErrNotFound match any phase through errors.Is.
package errors
