package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/suhanovs/paintx-frontend/internal/adapter/backend"
	"github.com/suhanovs/paintx-frontend/internal/facets"
	"github.com/suhanovs/paintx-frontend/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront proxy",
		Long: `Starts the storefront API on the configured address.

Inquiry limits are shared through Redis when server.redis_url is set and
kept in process otherwise.`,
		Example: `  # Start on the configured address (default :3000)
  paintxd serve

  # Start on a custom address
  paintxd serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger)
			facetCache := facets.NewCache(client, cfg.Server.FacetsTTL, logger)

			var limiter server.Limiter
			if cfg.Server.RedisURL != "" {
				rdb, err := server.NewRedisClient(cmd.Context(), cfg.Server.RedisURL)
				if err != nil {
					return err
				}
				defer rdb.Close()
				limiter = server.NewRedisLimiter(rdb, cfg.Server.InquiryLimit, cfg.Server.InquiryWindow)
			} else {
				limiter = server.NewLocalLimiter(cfg.Server.InquiryLimit, cfg.Server.InquiryWindow)
			}

			srv := server.New(client, facetCache, limiter, server.Options{
				SiteName:       cfg.Storefront.SiteName,
				SiteURL:        cfg.Storefront.SiteURL,
				ImageBaseURL:   cfg.Storefront.ImageBaseURL,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				CookieSecure:   cfg.Server.CookieSecure,
				PageSize:       cfg.Browse.PageSize,
			}, logger)

			httpServer := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("storefront proxy listening", "addr", cfg.Server.Addr, "backend", cfg.Backend.URL)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					slog.Error("server shutdown failed", "err", err)
					return err
				}
				slog.Info("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides server.addr)")

	return cmd
}
