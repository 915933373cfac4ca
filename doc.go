// Package strbridge moves string values across the boundary between a host
// runtime and a storage engine.
//
// The host runtime keeps strings as UTF-16 code units behind local references.
// The storage engine keeps strings as length-prefixed UTF-8 with no terminator
// (StringData). Every read or write of a string-typed field crosses this
// boundary, so the conversion is on the hot path.
//
// # Architecture Overview
//
//	strbridge/        Root package with HostString, StringData and HostRuntime
//	├── borrow/       Scoped, release-guaranteed views over host string chars
//	├── transcoder/   UTF-8 <-> UTF-16 conversion with small-buffer fast path
//	├── resource/     Local reference table with borrow tracking
//	├── hostrt/       HostRuntime implementations (Go heap, wazero linear memory)
//	├── interop/      Engine-side string field store (leveldb)
//	├── errors/       Structured error types for debugging
//	└── cmd/          bridgecheck CLI
//
// # Quick Start
//
//	rt := hostrt.NewLocal()
//	defer rt.Close(ctx)
//
//	ref, err := transcoder.ToHostString(rt, strbridge.NewStringData([]byte("héllo")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf, err := transcoder.ToEngineBytes(rt, ref, strbridge.DropLocalReference)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer buf.Release()
//	fmt.Println(string(buf.Data())) // "héllo"
//
// # Null Strings
//
// A null host reference and a null StringData map onto each other. Neither is
// the same as an empty string.
//
// # Thread Safety
//
// Conversions are synchronous and touch no shared mutable state beyond a pool
// of small buffers. The runtimes in hostrt are safe for concurrent use.
package strbridge
