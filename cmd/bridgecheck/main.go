package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// app carries state resolved before any subcommand runs.
type app struct {
	cfg    config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "bridgecheck",
		Short:         "Exercise the host/engine string boundary",
		Long:          `bridgecheck round-trips text through the UTF-8 <-> UTF-16 string bridge and stores string fields in a leveldb database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to a TOML config file (default ./bridgecheck.toml if present)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("host", hostLocal, "host runtime (local|wasm)")
	pf.Uint32("memory-limit-pages", 0, "wasm heap limit in 64KB pages (0 = wazero default)")
	pf.String("db", "bridgecheck.db", "leveldb directory for field commands")

	root.AddCommand(newRoundtripCmd(a))
	root.AddCommand(newPutCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newListCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("--color must be auto, on or off, got %q", colorFlag)
	}

	logger, err := installLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
