package cli

import (
	"fmt"

	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"catalogo"},
		Short:   "Mostrar el catálogo de servicios, paquetes y planes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Workspace.Store().Catalog(), app.Money))
			return nil
		},
	}
}

func newQuoteCmd(app *App) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calcular un presupuesto sin guardarlo",
		Long: `Aplica la selección indicada y muestra la selección canónica,
el estado de puntos del plan y los totales. No guarda nada.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, app.Workspace); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuote(quoteView(app.Workspace), app.Money))
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}
