package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	infrapdf "github.com/jhoicas/stock-intake/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-intake/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-intake/internal/infrastructure/spreadsheet"
)

type exportFlags struct {
	page   int
	all    bool
	format string
	out    string
}

// stockctl export --page N | --all  --format xlsx|pdf  --out archivo
func newExportCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta entradas de stock a xlsx o pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := appstock.ParseFormat(f.format); err != nil {
				return err
			}
			cfg, log, err := boot()
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(cfg.App.Timezone)
			if err != nil {
				loc = time.UTC
			}

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB, postgres.DefaultPoolOptions())
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := appstock.NewUseCase(
				postgres.NewStockRepository(pool),
				nil,
				spreadsheet.NewExcelizeGenerator(loc),
				infrapdf.NewMarotoStockReport(cfg.App.Name, loc),
				appstock.Options{PageSize: cfg.List.PageSize, Logger: log.Named("export")},
			)
			file, err := uc.Export(ctx, appstock.ExportInput{Page: f.page, All: f.all, Format: f.format})
			if err != nil {
				return err
			}
			path, err := writeExport(f.out, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entradas -> %s\n", file.Rows, path)
			return nil
		},
	}
	cmd.Flags().IntVar(&f.page, "page", 1, "página a exportar (1-based)")
	cmd.Flags().BoolVar(&f.all, "all", false, "exportar todas las entradas")
	cmd.Flags().StringVar(&f.format, "format", appstock.FormatXLSX, "xlsx | pdf")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "archivo de salida (por defecto stock_entries.<formato>)")
	return cmd
}

// writeExport escribe el archivo; out vacío usa el nombre sugerido, out directorio lo ubica dentro.
func writeExport(out string, file *appstock.ExportFile) (string, error) {
	path := out
	if path == "" {
		path = file.FileName
	} else if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, file.FileName)
	}
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return "", fmt.Errorf("escribir %s: %w", path, err)
	}
	return path, nil
}
