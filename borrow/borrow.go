package borrow

import (
	"fortio.org/safecast"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
)

// Chars is a borrowed read-only view of a host string's code units.
type Chars struct {
	rt       strbridge.HostRuntime
	data     []uint16
	size     int
	str      strbridge.HostString
	policy   strbridge.ReleasePolicy
	copied   bool
	released bool
}

// Acquire borrows the code units of s.
//
// On failure nothing stays borrowed. With DropLocalReference the reference is
// deleted on failure as well, since ownership was handed over.
func Acquire(rt strbridge.HostRuntime, s strbridge.HostString, policy strbridge.ReleasePolicy) (*Chars, error) {
	if rt == nil {
		return nil, errors.InvalidInput(errors.PhaseAcquire, "nil host runtime")
	}
	if s.IsNull() {
		return nil, errors.InvalidInput(errors.PhaseAcquire, "null host string")
	}

	data, copied, err := rt.GetStringChars(s)
	if err != nil {
		if policy == strbridge.DropLocalReference {
			rt.DeleteLocalRef(s)
		}
		return nil, errors.Wrap(errors.PhaseAcquire, errors.KindInvalidReference, err, "get string chars")
	}

	c := &Chars{
		rt:     rt,
		str:    s,
		data:   data,
		policy: policy,
		copied: copied,
	}

	size, err := stringSize(rt, s)
	if err != nil {
		c.Release()
		return nil, err
	}
	if size > len(data) {
		c.Release()
		return nil, errors.InvalidData(errors.PhaseAcquire,
			"host reported length longer than borrowed chars")
	}
	c.size = size
	c.data = data[:size]

	return c, nil
}

func stringSize(rt strbridge.HostRuntime, s strbridge.HostString) (int, error) {
	n, err := rt.GetStringLength(s)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseAcquire, errors.KindInvalidReference, err, "get string length")
	}
	if _, err := safecast.Conv[uint](n); err != nil {
		return 0, errors.New(errors.PhaseAcquire, errors.KindSizeOverflow).
			Op("get string length").
			Value(n).
			Cause(err).
			Detail("string size %d overflows uint", n).
			Build()
	}
	return int(n), nil
}

// With borrows the code units of s for the duration of fn.
// The chars are released when fn returns, fails or panics.
func With(rt strbridge.HostRuntime, s strbridge.HostString, policy strbridge.ReleasePolicy, fn func(*Chars) error) error {
	c, err := Acquire(rt, s, policy)
	if err != nil {
		return err
	}
	defer c.Release()
	return fn(c)
}

// Data returns the borrowed code units. Not valid after Release.
func (c *Chars) Data() []uint16 {
	return c.data
}

// Size returns the number of code units.
func (c *Chars) Size() int {
	return c.size
}

// Copied reports whether the runtime handed out a copy of its storage.
func (c *Chars) Copied() bool {
	return c.copied
}

// Release returns the chars to the host runtime and, with DropLocalReference,
// deletes the local reference. Calls after the first are no-ops.
func (c *Chars) Release() {
	if c == nil || c.released {
		return
	}
	c.released = true
	c.rt.ReleaseStringChars(c.str, c.data)
	if c.policy == strbridge.DropLocalReference {
		c.rt.DeleteLocalRef(c.str)
	}
	c.data = nil
}
