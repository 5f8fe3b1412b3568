package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery/cmd"
	"bakery/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := postgres.Open(postgres.DSN(
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode,
	))
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app, configs.HTTPPort, logger); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

// run serves HTTP and the scheduled jobs until ctx is cancelled.
func run(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) error {
	router, err := app.CreateHTTPRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.InfoContext(ctx, "HTTP server listening", "addr", addr)
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
		return router.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
