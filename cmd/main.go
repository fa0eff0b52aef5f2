// Package main provides the CLI entrypoint for the link-collection service.
// It wires subcommands (serve, driver, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"instagrab/internal/config"
	"instagrab/pkg/cache/redis"
	"instagrab/pkg/logger"
)

// getRedis creates a redis cache client using configuration values and returns
// it along with a cleanup function to close the connection pool.
func getRedis(ctx context.Context, cfg *config.Config) (*redis.Redis, func()) {
	rds, err := redis.New(ctx, redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create redis cache", zap.Error(err))
	}

	return rds, func() {
		logger.Info(ctx, "closing redis client...")
		if err = rds.Close(); err != nil {
			logger.Warn(ctx, "could not close redis connection", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "instagrab",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		driverCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
