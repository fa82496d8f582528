package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the daemon's configuration.
type Config struct {
	DataDir       string // state database directory
	ListenAddr    string // HTTP listen address (host:port)
	Network       string // "mainnet", "testnet" or "regtest"
	LogLevel      string // "debug", "info", "warn" or "error"
	LogFile       string // empty = stdout only
	AdminAddr     string // registry admin address, hex
	PlatformAddr  string // platform treasury owner address, hex
	DefaultFeeBps uint16 // initial platform fee rate
}

// DefaultConfig returns the default configuration. The data directory
// defaults to ~/.mixtaped.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:       filepath.Join(home, ".mixtaped"),
		ListenAddr:    ":8080",
		Network:       "mainnet",
		LogLevel:      "info",
		LogFile:       "",
		DefaultFeeBps: 250,
	}
}

// ChainID maps the network name to its chain identity used in
// sub-account derivation.
func (c Config) ChainID() uint64 {
	switch c.Network {
	case "mainnet":
		return 1
	case "testnet":
		return 2
	default:
		return 3 // regtest
	}
}

// LoadConfig reads a config file in "key = value" format. Blank lines
// and lines starting with '#' are ignored. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "listen":
			cfg.ListenAddr = value
		case "network":
			cfg.Network = value
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		case "admin":
			cfg.AdminAddr = value
		case "platform":
			cfg.PlatformAddr = value
		case "feebps":
			bps, err := strconv.ParseUint(value, 10, 16)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: feebps %q", ErrInvalidConfigLine, lineNo, value)
			}
			cfg.DefaultFeeBps = uint16(bps)
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path in "key = value" format,
// creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# mixtaped configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "listen = %s\n", cfg.ListenAddr)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "admin = %s\n", cfg.AdminAddr)
	fmt.Fprintf(&b, "platform = %s\n", cfg.PlatformAddr)
	fmt.Fprintf(&b, "feebps = %d\n", cfg.DefaultFeeBps)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
