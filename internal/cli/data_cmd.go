package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/cotizador/internal/service"
	"github.com/spf13/cobra"
)

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Exportar o importar todos los datos guardados",
	}
	cmd.AddCommand(newDataExportCmd(app), newDataImportCmd(app))
	return cmd
}

func newDataExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar propuestas, servicios locales e historiales a JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := app.Data.Export(context.Background())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}
			data = append(data, '\n')

			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exportadas %d colecciones a %s\n", len(bundle.Collections), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Fichero de salida (por defecto, stdout)")
	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <fichero>",
		Short: "Reemplazar todos los datos guardados con una exportación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			var bundle service.Bundle
			if err := json.Unmarshal(raw, &bundle); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			ctx := context.Background()
			res, err := app.Data.Import(ctx, &bundle)
			if err != nil {
				return err
			}
			if err := app.Workspace.Open(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Importadas %d colecciones (%d propuestas)\n", res.Collections, res.Proposals)
			return nil
		},
	}
}
