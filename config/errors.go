package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"regtest\")")

	// ErrInvalidListenAddr indicates the listen address is malformed.
	ErrInvalidListenAddr = errors.New("config: invalid listen address")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidAdminAddr indicates the registry admin address is
	// missing or malformed.
	ErrInvalidAdminAddr = errors.New("config: invalid registry admin address")

	// ErrInvalidPlatformAddr indicates the platform owner address is
	// missing or malformed.
	ErrInvalidPlatformAddr = errors.New("config: invalid platform owner address")

	// ErrInvalidFeeRate indicates the default fee rate is above 10000 bps.
	ErrInvalidFeeRate = errors.New("config: invalid fee rate (must be at most 10000 bps)")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
