package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"instagrab/internal/config"
	"instagrab/pkg/logger"
	"instagrab/pkg/webdriver"
)

// driverCommand constructs the 'driver' subcommand that stages a browser
// driver matching the installed browser version and prints its path. The
// serve command does this on startup too; this exists for image builds and
// debugging.
func driverCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Downloads and stages a driver matching the installed browser",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

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

			fmt.Println(staged) //nolint: forbidigo
		},
	}

	return cmd
}
