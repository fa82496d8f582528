package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/mixtapeorg/libmixtape-go/account"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil if
// valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if err := validateAddr(cfg.ListenAddr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListenAddr, err)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	admin, err := account.ParseAddress(cfg.AdminAddr)
	if err != nil || admin.IsZero() {
		return fmt.Errorf("%w: %q", ErrInvalidAdminAddr, cfg.AdminAddr)
	}

	platform, err := account.ParseAddress(cfg.PlatformAddr)
	if err != nil || platform.IsZero() {
		return fmt.Errorf("%w: %q", ErrInvalidPlatformAddr, cfg.PlatformAddr)
	}

	if cfg.DefaultFeeBps > 10000 {
		return fmt.Errorf("%w: %d", ErrInvalidFeeRate, cfg.DefaultFeeBps)
	}

	return nil
}

// validateAddr checks that addr is a valid host:port address.
func validateAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	return err
}
