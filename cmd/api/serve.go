package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waterworks/records/internal/db"
	"github.com/waterworks/records/internal/handlers"
	"github.com/waterworks/records/internal/jobs"
	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/server"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "5000", "HTTP port")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	accessTTL, _ := cfg.AccessTTL()
	refreshTTL, _ := cfg.RefreshTTL()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := connect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("db connect")
		return err
	}
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, conn); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.Database.Driver).Msg("schema up to date")
	}

	st := store.New(conn)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	access := utils.NewTokenIssuer(cfg.Auth.AccessSecret, accessTTL)
	h := handlers.NewHandler(handlers.Deps{
		Store:             st,
		AccessTokens:      access,
		RefreshTokens:     utils.NewTokenIssuer(cfg.Auth.RefreshSecret, refreshTTL),
		BcryptCost:        cfg.Auth.BcryptCost,
		ExposeErrorDetail: cfg.Server.ExposeErrorDetail,
		Metrics:           m,
	})

	sweeper := &jobs.OverdueSweeper{
		Store:     st,
		GraceDays: cfg.Jobs.OverdueGraceDays,
		Logger:    log.With().Str("job", "overdue_billing").Logger(),
		Metrics:   m,
	}
	if cfg.Jobs.OverdueSchedule != "" {
		sched, err := jobs.Start(ctx, cfg.Jobs.OverdueSchedule, sweeper)
		if err != nil {
			return err
		}
		defer sched.Stop()
	}

	router := server.NewRouter(server.RouterConfig{
		Handler:      h,
		AccessTokens: access,
		Logger:       log,
		Metrics:      m,
	})

	srv := server.New(":"+cfg.Server.Port, router, log, cfg.Server.ShutdownTimeout)
	return srv.Run(ctx)
}
