package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg config)
		wantErr string
	}{
		{
			name: "all sections",
			content: `
[log]
level = "debug"

[host]
kind = "wasm"
memory_limit_pages = 16
initial_pages = 2

[store]
path = "/tmp/fields"

[roundtrip]
jobs = 3
`,
			check: func(t *testing.T, cfg config) {
				if cfg.Log.Level != "debug" || cfg.Host.Kind != hostWasm ||
					cfg.Host.MemoryLimitPages != 16 || cfg.Host.InitialPages != 2 ||
					cfg.Store.Path != "/tmp/fields" || cfg.Roundtrip.Jobs != 3 {
					t.Fatalf("cfg = %+v", cfg)
				}
			},
		},
		{
			name:    "partial keeps defaults",
			content: "[host]\nkind = \"wasm\"\n",
			check: func(t *testing.T, cfg config) {
				if cfg.Log.Level != "warn" || cfg.Store.Path != "bridgecheck.db" {
					t.Fatalf("defaults lost: %+v", cfg)
				}
			},
		},
		{
			name:    "unknown key",
			content: "[host]\nflavor = \"x\"\n",
			wantErr: "host.flavor",
		},
		{
			name:    "bad syntax",
			content: "[host\n",
			wantErr: "failed to parse TOML",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "c"+string(rune('0'+i))+".toml", tt.content)
			cfg, err := loadConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}

	writeFile(t, dir, defaultConfigFile, "[roundtrip]\njobs = 5\n")
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Roundtrip.Jobs != 5 {
		t.Fatalf("jobs = %d, want 5", cfg.Roundtrip.Jobs)
	}
}

func TestApplyFlags_OverridesFile(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"roundtrip"})
	if err != nil {
		t.Fatal(err)
	}
	args := []string{"--jobs", "7", "--host", "wasm", "--memory-limit-pages", "8", "--db", "x.db", "--log-level", "error"}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Roundtrip.Jobs = 2
	cfg.Store.Path = "from-file.db"
	if err := applyFlags(cmd, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Roundtrip.Jobs != 7 || cfg.Host.Kind != hostWasm || cfg.Host.MemoryLimitPages != 8 ||
		cfg.Store.Path != "x.db" || cfg.Log.Level != "error" {
		t.Fatalf("cfg = %+v", cfg)
	}

	untouched := defaultConfig()
	untouched.Store.Path = "from-file.db"
	get, _, err := newRootCmd().Find([]string{"get"})
	if err != nil {
		t.Fatal(err)
	}
	if err := applyFlags(get, &untouched); err != nil {
		t.Fatal(err)
	}
	if untouched.Store.Path != "from-file.db" {
		t.Fatal("unset flags must not override file values")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
		ok     bool
	}{
		{"defaults", func(*config) {}, true},
		{"wasm", func(c *config) { c.Host.Kind = hostWasm }, true},
		{"bad level", func(c *config) { c.Log.Level = "loud" }, false},
		{"bad host", func(c *config) { c.Host.Kind = "jvm" }, false},
		{"negative jobs", func(c *config) { c.Roundtrip.Jobs = -1 }, false},
		{"initial over limit", func(c *config) {
			c.Host.MemoryLimitPages = 2
			c.Host.InitialPages = 3
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			if err := cfg.validate(); (err == nil) != tt.ok {
				t.Fatalf("validate = %v, ok want %v", err, tt.ok)
			}
		})
	}
}
