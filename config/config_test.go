package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPlatform = "0x1000000000000000000000000000000000000001"

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.AdminAddr = "0xadadadadadadadadadadadadadadadadadadadad"
	cfg.PlatformAddr = testPlatform
	return cfg
}

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"ListenAddr", cfg.ListenAddr, ":8080"},
		{"Network", cfg.Network, "mainnet"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFile", cfg.LogFile, ""},
		{"DefaultFeeBps", cfg.DefaultFeeBps, uint16(250)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	// DataDir should end with .mixtaped (we don't assert the full path
	// since it depends on the home directory).
	if !strings.HasSuffix(cfg.DataDir, ".mixtaped") {
		t.Errorf("DataDir = %q, want .mixtaped suffix", cfg.DataDir)
	}
}

func TestChainID(t *testing.T) {
	tests := []struct {
		network string
		want    uint64
	}{
		{"mainnet", 1},
		{"testnet", 2},
		{"regtest", 3},
	}
	for _, tc := range tests {
		t.Run(tc.network, func(t *testing.T) {
			cfg := Config{Network: tc.network}
			if got := cfg.ChainID(); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	original := Config{
		DataDir:       "/tmp/test-mixtaped",
		ListenAddr:    ":9000",
		Network:       "testnet",
		LogLevel:      "debug",
		LogFile:       "/tmp/mixtaped.log",
		AdminAddr:     "0xadadadadadadadadadadadadadadadadadadadad",
		PlatformAddr:  testPlatform,
		DefaultFeeBps: 500,
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded != original {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config")

	cfg := DefaultConfig()
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// LoadConfig error tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	tests := []struct {
		name    string
		content string
	}{
		{"no equals", "this-is-not-key-value\n"},
		{"unknown key", "bogus = 1\n"},
		{"bad feebps", "feebps = notanumber\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tc.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if !errors.Is(err, ErrInvalidConfigLine) {
				t.Errorf("got %v, want ErrInvalidConfigLine", err)
			}
		})
	}
}

func TestLoadConfigCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	content := `# This is a comment
network = testnet

loglevel = warn
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Network != "testnet" {
		t.Errorf("Network = %q, want testnet", cfg.Network)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want default :8080", cfg.ListenAddr)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty datadir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"bad network", func(c *Config) { c.Network = "devnet" }, ErrInvalidNetwork},
		{"bad listen addr", func(c *Config) { c.ListenAddr = "no-port" }, ErrInvalidListenAddr},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"missing admin", func(c *Config) { c.AdminAddr = "" }, ErrInvalidAdminAddr},
		{"zero admin", func(c *Config) {
			c.AdminAddr = "0x0000000000000000000000000000000000000000"
		}, ErrInvalidAdminAddr},
		{"missing platform", func(c *Config) { c.PlatformAddr = "xyz" }, ErrInvalidPlatformAddr},
		{"fee too high", func(c *Config) { c.DefaultFeeBps = 10001 }, ErrInvalidFeeRate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := ValidateConfig(cfg); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
