package transcoder

import (
	"sync"

	"github.com/wippyai/strbridge"
)

// smallBufCap is the largest capacity chosen on the small-string path.
const smallBufCap = StackBufSize * maxUTF8PerUnit

var smallBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, smallBufCap)
		return &buf
	},
}

// EncodedBuffer owns the UTF-8 result of a host to engine conversion.
// Len is the logical size; bytes in [Len, Cap) are zero.
type EncodedBuffer struct {
	data   []byte
	pooled *[]byte
	size   int
	null   bool
}

func newEncodedBuffer(capacity int) *EncodedBuffer {
	if capacity == 0 {
		return &EncodedBuffer{data: []byte{}}
	}
	if capacity <= smallBufCap {
		p := smallBufPool.Get().(*[]byte)
		return &EncodedBuffer{data: (*p)[:capacity], pooled: p}
	}
	return &EncodedBuffer{data: make([]byte, capacity)}
}

// Data returns the encoded bytes. Nil for the null string.
// The slice is not valid after Release.
func (b *EncodedBuffer) Data() []byte {
	if b.null || b.data == nil {
		return nil
	}
	return b.data[:b.size]
}

// Len returns the number of encoded bytes.
func (b *EncodedBuffer) Len() int {
	return b.size
}

// Cap returns the allocated capacity.
func (b *EncodedBuffer) Cap() int {
	return len(b.data)
}

// IsNull reports whether the source host string was null.
func (b *EncodedBuffer) IsNull() bool {
	return b.null
}

// StringData returns an engine view of the buffer.
func (b *EncodedBuffer) StringData() strbridge.StringData {
	if b.null {
		return strbridge.NullStringData()
	}
	return strbridge.NewStringData(b.Data())
}

// Release gives the storage back. Must not use the buffer after Release.
func (b *EncodedBuffer) Release() {
	if b == nil {
		return
	}
	if b.pooled != nil {
		smallBufPool.Put(b.pooled)
		b.pooled = nil
	}
	b.data = nil
	b.size = 0
}
