package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kaicrotty88/MyStudyPlanner/internal/adapters/repository"
	"github.com/kaicrotty88/MyStudyPlanner/internal/application/services"
	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/config"
	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/logger"
	"github.com/kaicrotty88/MyStudyPlanner/internal/infrastructure/server"
	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the planner API server",
		Long:  "Hydrate the planner state from the configured snapshot store and start the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the stored snapshot",
		Long:  "Delete the configured mode's snapshot and write a freshly seeded one",
		Run: func(cmd *cobra.Command, args []string) {
			runReset()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print planner version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	repo, err := newSnapshotRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize snapshot store", "error", err)
	}

	planner := services.NewPlannerService(repo, cfg.Retention.Window, cfg.Storage.IsDemo(), appLogger)

	// Hydration is the startup barrier: no request is served before the
	// snapshot is loaded.
	if err := planner.Hydrate(context.Background()); err != nil {
		appLogger.Fatal("Failed to hydrate planner state", "error", err)
	}

	srv, err := server.New(cfg, planner, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting planner API server",
		"port", cfg.Server.Port,
		"mode", cfg.Storage.Mode,
		"backend", cfg.Storage.Backend,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed", "error", err)
	}
}

func runReset() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	repo, err := newSnapshotRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize snapshot store", "error", err)
	}

	ctx := context.Background()
	if err := repo.Delete(ctx); err != nil {
		appLogger.Fatal("Failed to delete snapshot", "error", err)
	}

	// Hydrating against the now-empty store seeds and persists a fresh
	// snapshot for the configured mode.
	planner := services.NewPlannerService(repo, cfg.Retention.Window, cfg.Storage.IsDemo(), appLogger)
	if err := planner.Hydrate(ctx); err != nil {
		appLogger.Fatal("Failed to seed snapshot", "error", err)
	}

	fmt.Printf("Snapshot reset for mode %q (backend %s)\n", cfg.Storage.Mode, cfg.Storage.Backend)
}

func newSnapshotRepository(cfg *config.Config) (ports.SnapshotRepository, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return repository.NewRedisRepository(context.Background(), repository.RedisOptions{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Storage.Mode)
	default:
		return repository.NewFileRepository(afero.NewOsFs(), cfg.Storage.DataDir, cfg.Storage.Mode)
	}
}
