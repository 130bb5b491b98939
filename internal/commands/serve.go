package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/expensebud/backend/internal/config"
	"github.com/expensebud/backend/internal/link"
	"github.com/expensebud/backend/internal/router"
	"github.com/expensebud/backend/internal/upstream/plaid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	revocationBuffer  = 100
	revocationWorkers = 2
	shutdownTimeout   = 30 * time.Second
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, *cfg)
		},
	}
}

// runServe serves the API until ctx is cancelled.
func runServe(ctx context.Context, cfg config.Config) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	provider := plaid.New(cfg.Plaid)

	// Revocations outlive the request that queued them
	revoker := link.NewRevoker(provider, revocationBuffer)
	revoker.Start(context.Background(), revocationWorkers)

	options := router.Options{
		URL:          cfg.APIURL,
		AllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:  cfg.EnablePprof,
	}

	r, teardown, err := router.Config(options)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(newController(cfg, db, provider, publisher, revoker), r.Group("/"), options)

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("serving API")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if stopErr := revoker.Stop(context.Background()); stopErr != nil {
			log.Error().Err(stopErr).Msg("could not stop revocation workers")
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// Handlers are done, nothing is queued anymore
	if err := revoker.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("revocation workers did not stop in time")
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}
