package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer/internal/cli"
	"github.com/aretw0/randomizer/internal/logging"
	httpAdapter "github.com/aretw0/randomizer/pkg/adapters/http"
	"github.com/aretw0/randomizer/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves blueprint runs, stored fixtures and Prometheus metrics over a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		storeRef, _ := cmd.Flags().GetString("store")
		if storeRef == "" {
			storeRef = cfg.Store
		}
		if storeRef == "" {
			storeRef = "memory"
		}

		// Servers log JSON lines.
		logger = logging.NewJSON(os.Stderr, cfg.Level())

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		store, closer, err := cli.OpenStore(sc, storeRef, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		lib, err := cli.OpenLibrary(templatesDir(cmd))
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics()
		r, err := newRunner(store, "", metrics)
		if err != nil {
			return err
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithStore(store),
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
		}
		if lib != nil {
			opts = append(opts, httpAdapter.WithLibrary(lib))
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(r, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("randomizer server listening", "address", addr, "store", storeRef)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sc.Done():
			logger.Info("shutting down", "signal", fmt.Sprint(sc.Signal()))

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (default $RANDOMIZER_ADDR)")
	serveCmd.Flags().String("store", "", "Fixture store: memory, file[:dir] or redis[:addr] (default memory)")
}
