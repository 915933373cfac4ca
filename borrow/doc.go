// Package borrow provides scoped access to a host string's UTF-16 code units.
//
// A Chars value pairs GetStringChars with ReleaseStringChars. Release runs
// exactly once no matter how the enclosing operation ends:
//
//	err := borrow.With(rt, s, strbridge.KeepReference, func(c *borrow.Chars) error {
//	    units := c.Data() // valid only inside this function
//	    ...
//	})
//
// With DropLocalReference, the local reference is deleted after the chars
// are released. Use it when the caller was handed the reference and does not
// otherwise own it.
//
// The package performs no encoding conversion.
package borrow
