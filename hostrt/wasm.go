package hostrt

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"unicode/utf16"

	"fortio.org/safecast"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/errors"
	"github.com/wippyai/strbridge/resource"
)

const (
	wasmPageSize = 65536
	memoryExport = "memory"
)

// memoryModule is a core module that only defines and exports one page of
// growable linear memory:
//
//	(module (memory (export "memory") 1))
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: min 1, no max
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // export "memory"
}

// WasmConfig holds configuration for the linear-memory runtime.
type WasmConfig struct {
	// MemoryLimitPages caps the string heap in 64KB pages.
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// InitialPages pre-grows the heap so small workloads never call Grow.
	InitialPages uint32
}

// Wasm keeps string objects as UTF-16LE in a wazero linear memory.
type Wasm struct {
	runtime wazero.Runtime
	module  api.Module
	mem     api.Memory
	table   *resource.Table
	mu      sync.Mutex
	next    uint32
}

type wasmString struct {
	offset uint32
	units  uint32
}

// NewWasm instantiates the string heap module.
func NewWasm(ctx context.Context, cfg *WasmConfig) (*Wasm, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("instantiate string heap: %w", err)
	}

	mem := mod.ExportedMemory(memoryExport)
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("string heap has no %q export", memoryExport)
	}

	if cfg != nil && cfg.InitialPages > 1 {
		if _, ok := mem.Grow(cfg.InitialPages - 1); !ok {
			_ = rt.Close(ctx)
			return nil, errors.New(errors.PhaseConfig, errors.KindAllocation).
				Detail("initial heap of %d pages exceeds memory limit", cfg.InitialPages).
				Build()
		}
	}

	table := resource.NewTable()
	table.Subscribe(resource.ObserverFunc(traceEvent))

	return &Wasm{
		runtime: rt,
		module:  mod,
		mem:     mem,
		table:   table,
	}, nil
}

// alloc reserves size bytes of linear memory, growing it when needed.
// Callers hold w.mu.
func (w *Wasm) alloc(size uint32) (uint32, error) {
	offset := alignTo(w.next, 2)
	end, ok := safeAddU32(offset, size)
	if !ok {
		return 0, errors.AllocationFailed(errors.PhaseHost, uint64(offset)+uint64(size))
	}

	if current := w.mem.Size(); end > current {
		need := uint64(end - current)
		pages, err := safecast.Conv[uint32]((need + wasmPageSize - 1) / wasmPageSize)
		if err != nil {
			return 0, errors.AllocationFailed(errors.PhaseHost, need)
		}
		if _, ok := w.mem.Grow(pages); !ok {
			return 0, errors.AllocationFailed(errors.PhaseHost, uint64(size))
		}
		Logger().Debug("grew string heap",
			zap.Uint32("pages", pages),
			zap.Uint32("size", w.mem.Size()))
	}

	w.next = end
	return offset, nil
}

func (w *Wasm) object(s strbridge.HostString) (*wasmString, error) {
	v, ok := w.table.Get(resource.Handle(s))
	if !ok {
		return nil, errors.InvalidReference(errors.PhaseHost, uint32(s))
	}
	return v.(*wasmString), nil
}

func (w *Wasm) read(ws *wasmString) ([]uint16, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	raw, ok := w.mem.Read(ws.offset, ws.units*2)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseHost,
			fmt.Sprintf("string heap read out of bounds: offset=%d, units=%d", ws.offset, ws.units))
	}
	units := make([]uint16, ws.units)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return units, nil
}

func (w *Wasm) GetStringLength(s strbridge.HostString) (int32, error) {
	ws, err := w.object(s)
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[int32](ws.units)
	if err != nil {
		return 0, errors.SizeOverflow(errors.PhaseHost, "get string length", ws.units, "int32")
	}
	return n, nil
}

// GetStringChars decodes the string out of linear memory; isCopy is always true.
func (w *Wasm) GetStringChars(s strbridge.HostString) ([]uint16, bool, error) {
	v, err := w.table.Borrow(resource.Handle(s))
	if err != nil {
		return nil, false, refError(s, err)
	}
	units, err := w.read(v.(*wasmString))
	if err != nil {
		_ = w.table.ReturnBorrow(resource.Handle(s))
		return nil, false, err
	}
	return units, true, nil
}

func (w *Wasm) ReleaseStringChars(s strbridge.HostString, _ []uint16) {
	if err := w.table.ReturnBorrow(resource.Handle(s)); err != nil {
		Logger().Warn("release of unborrowed string chars",
			zap.Uint32("ref", uint32(s)),
			zap.Error(err))
	}
}

// DeleteLocalRef frees the reference. The bytes stay in linear memory.
func (w *Wasm) DeleteLocalRef(s strbridge.HostString) {
	if s.IsNull() {
		return
	}
	if _, err := w.table.Remove(resource.Handle(s)); err != nil {
		Logger().Warn("delete local reference failed",
			zap.Uint32("ref", uint32(s)),
			zap.Error(err))
	}
}

// NewString writes the first length units into linear memory.
func (w *Wasm) NewString(units []uint16, length int32) (strbridge.HostString, error) {
	if err := checkLength(units, length); err != nil {
		return strbridge.NullString, err
	}
	n, err := safecast.Conv[uint32](length)
	if err != nil {
		return strbridge.NullString, errors.SizeOverflow(errors.PhaseHost, "new string", length, "uint32")
	}
	size, ok := safeMulU32(n, 2)
	if !ok {
		return strbridge.NullString, errors.SizeOverflow(errors.PhaseHost, "new string", n, "uint32")
	}

	raw := make([]byte, size)
	for i, u := range units[:n] {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}
	offset, err := w.write(raw)
	if err != nil {
		return strbridge.NullString, err
	}

	h, err := w.table.Insert(&wasmString{offset: offset, units: n})
	if err != nil {
		return strbridge.NullString, errors.Wrap(errors.PhaseHost, errors.KindAllocation, err, "new string")
	}
	return strbridge.HostString(h), nil
}

// write copies raw into freshly allocated linear memory.
func (w *Wasm) write(raw []byte) (uint32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	size := uint32(len(raw))
	offset, err := w.alloc(size)
	if err != nil {
		return 0, err
	}
	if !w.mem.Write(offset, raw) {
		return 0, errors.InvalidData(errors.PhaseHost,
			fmt.Sprintf("string heap write out of bounds: offset=%d, length=%d", offset, size))
	}
	return offset, nil
}

func (w *Wasm) NewStringFromGo(s string) (strbridge.HostString, error) {
	units, n, err := encodeGo(s)
	if err != nil {
		return strbridge.NullString, err
	}
	return w.NewString(units, n)
}

func (w *Wasm) GoString(s strbridge.HostString) (string, error) {
	ws, err := w.object(s)
	if err != nil {
		return "", err
	}
	units, err := w.read(ws)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// HeapSize returns the current size of linear memory in bytes.
func (w *Wasm) HeapSize() uint32 {
	return w.mem.Size()
}

func (w *Wasm) LiveRefs() int {
	return w.table.Len()
}

// Close releases all references and the wazero runtime.
func (w *Wasm) Close(ctx context.Context) error {
	if err := w.table.Close(); err != nil {
		return err
	}
	return w.runtime.Close(ctx)
}
