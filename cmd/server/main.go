package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/third774/dyte-remix/internal/api"
	"github.com/third774/dyte-remix/internal/config"
	"github.com/third774/dyte-remix/internal/dyte"
	"github.com/third774/dyte-remix/internal/repository"
	"github.com/third774/dyte-remix/internal/repository/memory"
	"github.com/third774/dyte-remix/internal/repository/postgres"
	"github.com/third774/dyte-remix/internal/repository/redis"
	"github.com/third774/dyte-remix/internal/service"
	"github.com/third774/dyte-remix/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Meeting server that resolves meeting links and issues participant tokens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize metadata store
	repos, closeRepos, err := newRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	// Initialize Dyte client
	client := dyte.NewClient(cfg.DyteBaseURL, cfg.DyteAuthHeader,
		dyte.WithTimeout(cfg.DyteTimeout()),
		dyte.WithSearchRetries(cfg.DyteSearchRetries),
	)

	sessions, err := session.NewStore(session.Options{
		CookieName: cfg.SessionCookieName,
		Secret:     cfg.SessionSecret,
		MaxAge:     cfg.SessionMaxAge(),
		Secure:     cfg.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	// Initialize services
	services := service.NewServices(repos, client)

	// Initialize router
	router := api.NewRouter(services, sessions, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (metadata backend: %s)", cfg.Port, cfg.MetadataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

func newRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(), error) {
	switch cfg.MetadataBackend {
	case config.MetadataBackendPostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return postgres.NewRepositories(db), closeDB, nil

	case config.MetadataBackendRedis:
		client, err := redis.NewConnection(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redis.NewRepositories(client), func() { client.Close() }, nil

	default:
		log.Println("Using in-memory metadata store; host tokens are lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}
}
