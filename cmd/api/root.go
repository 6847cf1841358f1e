package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waterworks/records/internal/config"
	"github.com/waterworks/records/internal/db"
	"github.com/waterworks/records/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "api",
		Short: "Water utility records API",
		Long: `Records service for a municipal water utility: customers, water sources,
meters, consumption readings, billing, conservation methods, their
implementations and the water savings derived from them.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or /etc/waterworks/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bind log-level flag: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = c

	log = logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}
}

func connect(ctx context.Context) (*sqlx.DB, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}
	return db.Connect(ctx, db.Options{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		MaxOpen:     cfg.Database.MaxOpen,
		MaxIdle:     cfg.Database.MaxIdle,
		MaxLifetime: cfg.Database.MaxLifetime,
	})
}
