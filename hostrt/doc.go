// Package hostrt implements strbridge.HostRuntime.
//
// Two runtimes are provided:
//
//	Local  String objects live on the Go heap behind local references.
//	       GetStringChars hands out the object's own storage.
//	Wasm   String objects live as UTF-16LE in a wazero linear memory.
//	       GetStringChars hands out a decoded copy.
//
// Both track borrows through package resource: a local reference whose chars
// are borrowed cannot be deleted, and releasing chars that were never borrowed
// is logged as misuse.
//
// # Memory Model
//
// Wasm linear memory only grows. Deleting a reference in the Wasm runtime
// frees the reference but not the bytes it pointed at; recycle the runtime
// to reclaim memory.
package hostrt
