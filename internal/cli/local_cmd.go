package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLocalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Gestionar servicios locales (se añaden al catálogo)",
	}

	cmd.AddCommand(
		newLocalAddCmd(app),
		newLocalListCmd(app),
		newLocalRemoveCmd(app),
	)

	return cmd
}

func newLocalAddCmd(app *App) *cobra.Command {
	var in catalog.ServiceInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Añadir un servicio local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.Workspace.AddLocalService(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Servicio local %s añadido (%s, %s)\n",
				formatter.Bold(item.Name), item.ID, app.Money.Plain(item.Price))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Nombre del servicio")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "Precio de desarrollo")
	cmd.Flags().IntVar(&in.PointCost, "points", 0, "Coste en puntos dentro de un plan")
	cmd.Flags().StringVar(&in.Description, "description", "", "Descripción")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newLocalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Listar servicios locales",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLocalServices(app.Workspace.Store().Local(), app.Money))
			return nil
		},
	}
}

func newLocalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Eliminar un servicio local",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.RemoveLocalService(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Servicio local %s eliminado\n", args[0])
			return nil
		},
	}
}
