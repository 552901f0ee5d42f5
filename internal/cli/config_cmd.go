package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/cotizador/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Ver o crear el fichero de configuración",
	}
	cmd.AddCommand(newConfigShowCmd(app), newConfigInitCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Mostrar la configuración efectiva (fichero + entorno)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(app.Config)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", app.ConfigPath, data)
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Escribir una configuración por defecto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(app.ConfigPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", app.ConfigPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := config.Write(app.ConfigPath, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuración escrita en %s\n", app.ConfigPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Sobrescribir el fichero existente")
	return cmd
}
