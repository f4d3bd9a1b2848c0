package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/middleware/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, log, err := loadConfig(opts.envFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, log)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close_error", "error", err)
		}
	}()

	secret := []byte(cfg.JWTSecret)
	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:          &service.AuthService{Users: a.store, Events: a.events, Secret: secret, TTL: cfg.TokenTTL()},
			CookieSecure: cfg.CookieSecure,
		},
		ProductHandler: &httpserver.ProductHTTP{Svc: a.catalog()},
		OrderHandler: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Orders: a.store, Products: a.store, Users: a.store, Events: a.events},
		},
		UserHandler: &httpserver.UserHTTP{
			Svc: &service.UserService{Users: a.store, Orders: a.store, Events: a.events},
		},
		JWTSecret: secret,
		Ready:     a.store.Ping,
	}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New(cfg.ServiceName)
	}

	e := httpserver.New(deps, log, cfg.FrontendURL)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server_starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server_stopped")
	return nil
}
