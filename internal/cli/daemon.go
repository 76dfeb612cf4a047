package cli

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"sundial/internal/config"
	"sundial/internal/handlers"
	"sundial/internal/logger"
	"sundial/internal/repository"
	"sundial/internal/repository/db"
	"sundial/internal/schedule"
	"sundial/internal/server"
	"sundial/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background service that follows the schedule.",
	Long: `Starts the tick loop that recomputes the target color temperature,
drives the external setter tool, maintains the status file and serves
the local HTTP API used by the other subcommands.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDaemon()
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines, cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// wire dependencies
	repos := repository.NewRepository(sqlDB, cfg.Daemon.StatusFile)

	sched, err := schedule.New(cfg)
	if err != nil {
		log.Fatalw("invalid schedule configuration", "err", err)
	}

	services, err := service.NewService(ctx, cfg, sched, repos, log)
	if err != nil {
		log.Fatalw("failed to build services", "err", err)
	}

	if err := service.EnsureBackendRunning(ctx, log); err != nil {
		// The setter retries every tick, so a missing backend is not fatal.
		log.Warnw("display backend not available", "err", err)
	}

	apiHandler := handlers.NewHandler(services, cfg, log)

	srv := &server.Server{}
	go func() {
		log.Infow("http api listening", "addr", cfg.ListenAddr())
		if err := srv.Run(cfg.ListenAddr(), apiHandler.InitRoutes()); err != nil {
			log.Infow("http server stopped", "err", err)
		}
	}()

	// tick loop blocks until the context is cancelled
	services.Daemon.Run(ctx)

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	log.Infow("daemon stopped")
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.Daemon.DBPath
	if path == "" {
		log.Infow("daemon.db_path not set; using default file", "default", "sundial.db")
		path = "sundial.db"
	}
	return db.InitDB(path)
}
