package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mixtapeorg/libmixtape-go/config"
	"github.com/mixtapeorg/libmixtape-go/logger"
	"github.com/mixtapeorg/libmixtape-go/server"
	"github.com/mixtapeorg/libmixtape-go/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mixtaped",
	Short: "mixtaped is the mixtape play-ledger daemon.",
	Long: `mixtaped serves the mixtape registry, playback ledger and social
store over HTTP, persisting state to a local database.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ledger HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := config.ValidateConfig(cfg); err != nil {
			return err
		}

		log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
		if err != nil {
			return err
		}
		defer log.Sync()

		core, err := server.NewCore(cfg)
		if err != nil {
			return err
		}

		st, err := store.OpenBoltStore(filepath.Join(cfg.DataDir, "state.db"))
		if err != nil {
			return err
		}
		defer st.Close()

		if err := core.Restore(st); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("starting mixtaped",
			zap.String("network", cfg.Network),
			zap.String("datadir", cfg.DataDir),
		)
		return server.New(core, st, log, cfg.ListenAddr).Run(ctx)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		fmt.Println("set the admin and platform addresses before serving")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("datadir = %s\n", cfg.DataDir)
		fmt.Printf("listen = %s\n", cfg.ListenAddr)
		fmt.Printf("network = %s (chain id %d)\n", cfg.Network, cfg.ChainID())
		fmt.Printf("loglevel = %s\n", cfg.LogLevel)
		fmt.Printf("logfile = %s\n", cfg.LogFile)
		fmt.Printf("admin = %s\n", cfg.AdminAddr)
		fmt.Printf("platform = %s\n", cfg.PlatformAddr)
		fmt.Printf("feebps = %d\n", cfg.DefaultFeeBps)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the mixtaped configuration",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(serveCmd, configCmd)
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(config.DefaultConfig().DataDir, "config")
}

// loadConfig reads the config file, falling back to defaults when no
// file exists and none was requested explicitly.
func loadConfig() (config.Config, error) {
	path := resolveConfigPath()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if configPath == "" && errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return cfg, err
	}
	return cfg, nil
}
