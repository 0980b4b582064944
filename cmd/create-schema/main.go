package main

import (
	"context"
	"errors"
	"os"

	"legalaid-backend/config"
	"legalaid-backend/logging"
	"legalaid-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		drop       bool
	)

	cmd := &cobra.Command{
		Use:          "create-schema",
		Short:        "Create the analyses table",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv(".env", "../../.env")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cfg.PersistenceEnabled() {
				return errors.New("DATABASE_URL is not set")
			}

			logger, err := logging.New(cfg.Log.Level, "console")
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := context.Background()
			pool, err := pgxpool.New(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := repository.CreateSchema(ctx, pool, drop); err != nil {
				return err
			}
			logger.Info("analyses table ready", zap.Bool("dropped", drop))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	cmd.Flags().BoolVar(&drop, "drop", false, "drop the analyses table before creating it")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
