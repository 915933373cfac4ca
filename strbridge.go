package strbridge

// HostString is a local reference to a host runtime string object.
// The zero value is the null reference.
type HostString uint32

// NullString is the null host reference.
const NullString HostString = 0

// IsNull reports whether s is the null reference.
func (s HostString) IsNull() bool {
	return s == NullString
}

// ReleasePolicy controls what happens to the local reference when a borrowed
// view of its characters is released.
type ReleasePolicy uint8

const (
	// KeepReference leaves the local reference alive; the caller owns it.
	KeepReference ReleasePolicy = iota
	// DropLocalReference deletes the local reference after the chars are released.
	DropLocalReference
)

func (p ReleasePolicy) String() string {
	switch p {
	case KeepReference:
		return "keep"
	case DropLocalReference:
		return "drop"
	default:
		return "unknown"
	}
}

// HostRuntime is the subset of the host runtime's string API used at the boundary.
type HostRuntime interface {
	// GetStringLength returns the number of UTF-16 code units in s.
	GetStringLength(s HostString) (int32, error)

	// GetStringChars borrows the UTF-16 code units of s. The returned slice is
	// valid until ReleaseStringChars. isCopy reports whether the runtime handed
	// out a copy instead of its own storage.
	GetStringChars(s HostString) (chars []uint16, isCopy bool, err error)

	// ReleaseStringChars returns chars obtained from GetStringChars.
	ReleaseStringChars(s HostString, chars []uint16)

	// DeleteLocalRef releases the local reference s.
	DeleteLocalRef(s HostString)

	// NewString creates a string object from the first length units of units.
	NewString(units []uint16, length int32) (HostString, error)
}

// StringData is a view over UTF-8 bytes owned by the storage engine.
// It carries its length and has no terminator. A null StringData is distinct
// from an empty one.
type StringData struct {
	data []byte
	null bool
}

// NewStringData wraps b. A nil or empty b is an empty, non-null string.
func NewStringData(b []byte) StringData {
	return StringData{data: b}
}

// NullStringData returns the null string.
func NullStringData() StringData {
	return StringData{null: true}
}

// Data returns the UTF-8 bytes. It is nil for the null string.
func (s StringData) Data() []byte {
	return s.data
}

// Size returns the length in bytes.
func (s StringData) Size() int {
	return len(s.data)
}

// IsNull reports whether s is the null string.
func (s StringData) IsNull() bool {
	return s.null
}

// String returns the bytes as a Go string. The null string is "".
func (s StringData) String() string {
	return string(s.data)
}
