package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/spf13/cobra"
)

func newProposalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"propuesta"},
		Short:   "Gestionar propuestas guardadas",
	}

	cmd.AddCommand(
		newProposalNewCmd(app),
		newProposalListCmd(app),
		newProposalShowCmd(app),
		newProposalEditCmd(app),
		newProposalStatusCmd(app),
		newProposalDeleteCmd(app),
	)

	return cmd
}

func newProposalNewCmd(app *App) *cobra.Command {
	var flags draftFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Crear y guardar una propuesta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.Interactive {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := runProposalWizard(app); err != nil {
					return err
				}
			}
			if err := flags.apply(cmd, app.Workspace); err != nil {
				return err
			}
			return saveAndPrint(cmd, app)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Completar la propuesta con un asistente de formularios")
	return cmd
}

func newProposalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Listar propuestas guardadas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props := app.Workspace.Proposals()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProposalList(props.List(), props.EditingIndex(), app.Money))
			return nil
		},
	}
}

func newProposalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Mostrar el resumen de una propuesta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			p, err := app.Workspace.Proposals().Get(index)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Propuesta", formatter.ProposalSummary(p, app.Money))+"\n")
			return nil
		},
	}
}

func newProposalEditCmd(app *App) *cobra.Command {
	var flags draftFlags
	var clearTiers bool

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Editar una propuesta guardada",
		Long: `Carga la propuesta en el borrador, aplica los cambios indicados y la
vuelve a guardar en la misma posición conservando su estado.

Los servicios que ya no existen en el catálogo se conservan con precio 0;
los servicios de plan desconocidos se descartan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ws := app.Workspace
			ready, err := ws.EditProposal(context.Background(), index)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ready.Report.Placeholders) > 0 {
				fmt.Fprintln(out, formatter.StyleYellow.Render("Sin catálogo (precio 0):")+" "+strings.Join(ready.Report.Placeholders, ", "))
			}
			if len(ready.Report.Dropped) > 0 {
				fmt.Fprintln(out, formatter.StyleYellow.Render("Descartados:")+" "+strings.Join(ready.Report.Dropped, ", "))
			}

			if clearTiers {
				for len(ws.Tiers()) > 0 {
					if err := ws.RemoveTier(0); err != nil {
						return err
					}
				}
			}
			if err := flags.apply(cmd, ws); err != nil {
				ws.Cancel()
				return err
			}
			return saveAndPrint(cmd, app)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&clearTiers, "clear-tiers", false, "Eliminar los niveles y volver a una propuesta simple")
	return cmd
}

func newProposalStatusCmd(app *App) *cobra.Command {
	known := make([]string, len(domain.KnownStatuses))
	for i, s := range domain.KnownStatuses {
		known[i] = fmt.Sprintf("%q", s)
	}

	return &cobra.Command{
		Use:   "status <index> <estado>",
		Short: "Cambiar el estado de una propuesta",
		Long:  "Estados habituales: " + strings.Join(known, ", ") + ". Se admite cualquier texto.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			status := domain.ProposalStatus(strings.TrimSpace(strings.Join(args[1:], " ")))
			if status == "" {
				return fmt.Errorf("status text is required")
			}
			if err := app.Workspace.SetStatus(context.Background(), index, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Propuesta %d: %s\n", index, formatter.StatusStyle(status).Render(string(status)))
			return nil
		},
	}
}

func newProposalDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Eliminar una propuesta",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			p, err := app.Workspace.Proposals().Get(index)
			if err != nil {
				return err
			}
			if err := app.Workspace.DeleteProposal(context.Background(), index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Eliminada la propuesta %d (%s)\n", index, p.ClientName)
			return nil
		},
	}
}

// saveAndPrint saves the draft and prints the stored proposal.
func saveAndPrint(cmd *cobra.Command, app *App) error {
	index, saved, err := app.Workspace.SaveProposal(context.Background())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d\n", formatter.StyleGreen.Render("Propuesta guardada en la posición"), index)
	fmt.Fprint(out, formatter.ProposalSummary(saved, app.Money))
	return nil
}
