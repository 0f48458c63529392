package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-intake/internal/infrastructure/postgres"
)

// stockctl migrate up|down|status
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (goose, embebidas)",
	}
	cmd.AddCommand(
		migrateAction("up", "Aplica todas las migraciones pendientes", (*postgres.Migrator).Up),
		migrateAction("down", "Revierte la última migración", (*postgres.Migrator).Down),
		migrateAction("status", "Muestra el estado de cada migración", (*postgres.Migrator).Status),
	)
	return cmd
}

func migrateAction(use, short string, run func(*postgres.Migrator, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := boot()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := postgres.OpenSQL(ctx, cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := postgres.NewMigrator(db, log.Named("migrate"))
			if err != nil {
				return err
			}
			if err := run(m, ctx); err != nil {
				return err
			}
			if v, err := m.Version(ctx); err == nil {
				log.Info().Int64("version", v).Msg("esquema")
			}
			return nil
		},
	}
}
