package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fab-progress/internal/database"
	"fab-progress/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.RequireServer(); err != nil {
				return err
			}
			if err := database.Init(cfg.DBDSN, log); err != nil {
				return err
			}

			r := server.NewRouter(cfg, log)

			addr := fmt.Sprintf(":%s", cfg.ServerPort)
			log.Info("starting server", zap.String("addr", addr))
			return r.Run(addr)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.RequireDB(); err != nil {
				return err
			}
			if err := database.Init(cfg.DBDSN, log); err != nil {
				return err
			}
			log.Info("schema up to date")
			return nil
		},
	}
}
