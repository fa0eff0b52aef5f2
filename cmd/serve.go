package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"instagrab/internal/api"
	"instagrab/internal/api/handler/v1handler"
	"instagrab/internal/browser"
	"instagrab/internal/config"
	"instagrab/internal/fetcher"
	"instagrab/pkg/logger"
	"instagrab/pkg/webdriver"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupBrowser stages a driver matching the installed browser and launches
// the session pool.
func setupBrowser(ctx context.Context, cfg *config.Config) *browser.Pool {
	bootstrap := webdriver.New(&http.Client{Timeout: cfg.Driver.HTTPTimeout}, webdriver.Options{
		BrowserPath:         cfg.Driver.BrowserPath,
		InstallDir:          cfg.Driver.InstallDir,
		ReleaseIndexURL:     cfg.Driver.ReleaseIndexURL,
		DownloadURLTemplate: cfg.Driver.DownloadURLTemplate,
		FallbackURLTemplate: cfg.Driver.FallbackURLTemplate,
	})
	staged, err := bootstrap.Install(ctx)
	if err != nil {
		logger.Fatal(ctx, "could not stage browser driver", zap.Error(err))
	}
	logger.Info(ctx, "browser driver ready", zap.String("path", staged))

	pool, err := browser.NewPool(ctx, browser.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not launch browser pool", zap.Error(err))
	}

	return pool
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and browser session pool",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			rds, closeCache := getRedis(ctx, cfg)
			defer closeCache()

			pool := setupBrowser(ctx, cfg)
			defer pool.Close()

			f := fetcher.New(pool, rds, fetcher.NewOptions(cfg))

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:  v1handler.Deps{Fetcher: f},
				Cache: rds,
				Pool:  pool,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
