// Package interop persists string fields on the engine side of the boundary.
//
// A Store keeps opaque UTF-8 values by key. LevelStore backs it with
// goleveldb, on disk or in memory. Fields sits in front of a Store and a
// host runtime: writes go through transcoder.ToEngineBytes and reads through
// transcoder.ToHostString, so every stored value has crossed the boundary.
//
// Null is stored distinctly from the empty string.
package interop
