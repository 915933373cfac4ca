package main

import (
	"context"
	"fmt"

	"github.com/wippyai/strbridge/hostrt"
)

const (
	hostLocal = "local"
	hostWasm  = "wasm"
)

func openHost(ctx context.Context, cfg hostConfig) (hostrt.Runtime, error) {
	switch cfg.Kind {
	case hostLocal:
		return hostrt.NewLocal(), nil
	case hostWasm:
		w, err := hostrt.NewWasm(ctx, &hostrt.WasmConfig{
			MemoryLimitPages: cfg.MemoryLimitPages,
			InitialPages:     cfg.InitialPages,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown host kind %q", cfg.Kind)
	}
}
