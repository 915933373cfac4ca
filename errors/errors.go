package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAcquire  Phase = "acquire"   // borrowing host string chars
	PhaseToHost   Phase = "to_host"   // UTF-8 to host string
	PhaseToEngine Phase = "to_engine" // host string to UTF-8
	PhaseHost     Phase = "host"      // host runtime operations
	PhaseStore    Phase = "store"     // engine-side field storage
	PhaseConfig   Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindSizeOverflow      Kind = "size_overflow"
	KindEncoding          Kind = "encoding_error"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidData       Kind = "invalid_data"
	KindInvalidReference  Kind = "invalid_reference"
	KindOutstandingBorrow Kind = "outstanding_borrow"
	KindNotFound          Kind = "not_found"
	KindAllocation        Kind = "allocation"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrSizeOverflow = &Error{Kind: KindSizeOverflow}
	ErrEncoding     = &Error{Kind: KindEncoding}
	ErrNotFound     = &Error{Kind: KindNotFound}
)

// Diagnostic describes where a conversion stopped.
// Positions are indexes into the input and output buffers.
type Diagnostic struct {
	Reason   string
	Hex      string
	InputLen int
	InBegin  int
	InEnd    int
	OutCurr  int
	OutEnd   int
}

func (d *Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Reason)
	b.WriteString("; size = ")
	b.WriteString(strconv.Itoa(d.InputLen))
	if d.Hex != "" {
		b.WriteString("; hex =")
		b.WriteString(d.Hex)
	}
	fmt.Fprintf(&b, "; in_begin = %d; in_end = %d; out_curr = %d; out_end = %d",
		d.InBegin, d.InEnd, d.OutCurr, d.OutEnd)
	return b.String()
}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Diag   *Diagnostic
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Code   uint8
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Diag != nil {
		b.WriteString(" (error_code = ")
		b.WriteString(strconv.Itoa(int(e.Code)))
		b.WriteString("; ")
		b.WriteString(e.Diag.String())
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the failing operation
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Code sets the conversion error code
func (b *Builder) Code(code uint8) *Builder {
	b.err.Code = code
	return b
}

// Diag attaches conversion diagnostics
func (b *Builder) Diag(d *Diagnostic) *Builder {
	b.err.Diag = d
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// SizeOverflow creates an error for a size that does not fit its target type
func SizeOverflow(phase Phase, op string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeOverflow,
		Op:     op,
		Detail: fmt.Sprintf("string size %v overflows %s", value, targetType),
		Value:  value,
	}
}

// Encoding creates a malformed-input error carrying conversion diagnostics
func Encoding(phase Phase, op string, code uint8, diag *Diagnostic) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindEncoding,
		Op:    op,
		Code:  code,
		Diag:  diag,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidReference creates an error for a stale or unknown local reference
func InvalidReference(phase Phase, ref uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidReference,
		Detail: fmt.Sprintf("invalid local reference %d", ref),
		Value:  ref,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
