// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the contact-finder CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/contact-finder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from the --debug flag.
var logger = zap.NewNop()

// rootCmd is the base command for the contact-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "contact-finder",
	Short: "Find professional contacts at target companies and guess their emails",
	Long: `contact-finder searches an authenticated professional network for people
in HR/recruiting, product leadership and senior leadership roles at up to five
companies, guesses each person's email address from their name, and writes one
CSV report per company.

Guessed emails assume a <company>.com domain and the first.last format. They
are not verified.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		l, err := newLogger(debug)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./contact-finder.yaml or ~/.config/contact-finder/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

// newLogger returns a production zap logger writing to stderr, at debug
// level when debug is set.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("contact-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "contact-finder"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())

	viper.SetEnvPrefix("CONTACT_FINDER")
	viper.SetEnvKeyReplacer(newEnvReplacer())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newEnvReplacer maps nested keys such as report.output_dir to
// CONTACT_FINDER_REPORT_OUTPUT_DIR.
func newEnvReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// setDefaults registers every configuration key so that env overrides and
// Unmarshal see it even when no config file sets it.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("network.timeout", d.Network.Timeout)
	v.SetDefault("network.user_agent", d.Network.UserAgent)
	v.SetDefault("network.base_url", d.Network.BaseURL)
	v.SetDefault("network.credentials", d.Network.CredentialsPath)
	v.SetDefault("network.requests_per_second", d.Network.RequestsPerSecond)
	v.SetDefault("network.min_delay", d.Network.MinDelay)
	v.SetDefault("network.max_delay", d.Network.MaxDelay)
	v.SetDefault("report.output_dir", d.Report.OutputDir)
	v.SetDefault("report.default_count", d.Report.DefaultCount)
	v.SetDefault("ledger.path", d.Ledger.Path)
}

// loadConfig returns the effective configuration from defaults, config file,
// environment and bound flags.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
