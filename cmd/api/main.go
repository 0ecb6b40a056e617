package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/payment"
	"storefront/internal/logger"
	"storefront/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API (cart, checkout, payment webhook)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			gormDB, err := db.Connect(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer db.Close(gormDB)

			if err := db.Migrate(gormDB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migration finished")
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer db.Close(gormDB)

	if !cfg.IsProduction() {
		if err := db.Migrate(gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	//Redis接続
	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	e := app.NewServer(app.Deps{
		Config:   cfg,
		Log:      log,
		DB:       gormDB,
		Redis:    rdb,
		Payments: payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, nil),
	})

	//Server起動
	return server.Run(ctx, e, listenAddr(cfg.Port), log)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})
}

// "8080" と ":8080" のどちらでもよい
func listenAddr(port string) string {
	if port != "" && port[0] == ':' {
		return port
	}
	return ":" + port
}
