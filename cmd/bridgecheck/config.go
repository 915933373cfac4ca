package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/strbridge/errors"
)

const defaultConfigFile = "bridgecheck.toml"

type config struct {
	Log       logConfig       `toml:"log"`
	Host      hostConfig      `toml:"host"`
	Store     storeConfig     `toml:"store"`
	Roundtrip roundtripConfig `toml:"roundtrip"`
}

type logConfig struct {
	Level string `toml:"level"`
}

type hostConfig struct {
	Kind             string `toml:"kind"`
	MemoryLimitPages uint32 `toml:"memory_limit_pages"`
	InitialPages     uint32 `toml:"initial_pages"`
}

type storeConfig struct {
	Path string `toml:"path"`
}

type roundtripConfig struct {
	Jobs int `toml:"jobs"`
}

func defaultConfig() config {
	return config{
		Log:   logConfig{Level: "warn"},
		Host:  hostConfig{Kind: hostLocal},
		Store: storeConfig{Path: "bridgecheck.db"},
	}
}

// loadConfig reads path over the defaults. An empty path falls back to
// bridgecheck.toml in the working directory when it exists.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				return cfg, nil
			}
			return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "stat "+defaultConfigFile)
		}
		path = defaultConfigFile
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, path+": failed to parse TOML")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("%s: unknown keys %s", path, strings.Join(keys, ", ")).
			Build()
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("log-level") {
		if cfg.Log.Level, err = flags.GetString("log-level"); err != nil {
			return err
		}
	}
	if flags.Changed("host") {
		if cfg.Host.Kind, err = flags.GetString("host"); err != nil {
			return err
		}
	}
	if flags.Changed("memory-limit-pages") {
		if cfg.Host.MemoryLimitPages, err = flags.GetUint32("memory-limit-pages"); err != nil {
			return err
		}
	}
	if flags.Changed("db") {
		if cfg.Store.Path, err = flags.GetString("db"); err != nil {
			return err
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if cfg.Roundtrip.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	return nil
}

func (c config) validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}
	switch c.Host.Kind {
	case hostLocal, hostWasm:
	default:
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("host.kind must be %q or %q, got %q", hostLocal, hostWasm, c.Host.Kind))
	}
	if c.Host.MemoryLimitPages > 0 && c.Host.InitialPages > c.Host.MemoryLimitPages {
		return errors.InvalidInput(errors.PhaseConfig, "host.initial_pages exceeds host.memory_limit_pages")
	}
	if c.Roundtrip.Jobs < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "roundtrip.jobs must not be negative")
	}
	return nil
}
