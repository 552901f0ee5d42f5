package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/intelligence"
	"github.com/alexanderramin/cotizador/internal/llm"
	"github.com/alexanderramin/cotizador/internal/selection"
	"github.com/spf13/cobra"
)

func newRecommendCmd(app *App) *cobra.Command {
	var (
		mode         modeFlag
		apply        bool
		save         bool
		client       string
		clearHistory bool
	)

	cmd := &cobra.Command{
		Use:     "recommend [necesidad del cliente...]",
		Aliases: []string{"ask"},
		Short:   "Pedir al asistente una selección para una necesidad",
		Long: `Envía la necesidad al asistente junto con el historial de la
conversación del modo. Con --apply las sugerencias se aplican a la
selección por el camino normal; los ids desconocidos se ignoran.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ws := app.Workspace
			out := cmd.OutOrStdout()

			m := ws.Mode()
			if cmd.Flags().Changed("mode") {
				m = mode.mode
			}

			if clearHistory {
				if err := ws.ClearChat(ctx, m); err != nil {
					return err
				}
				fmt.Fprintf(out, "Historial de %s borrado\n", m)
				if len(args) == 0 {
					return nil
				}
			}

			brief := strings.TrimSpace(strings.Join(args, " "))
			if brief == "" {
				return fmt.Errorf("describe what the client needs")
			}
			if save && !apply {
				return fmt.Errorf("--save requires --apply")
			}

			history, err := ws.ChatHistory(ctx, m)
			if err != nil {
				return err
			}
			sug := app.Recommender.Recommend(ctx, intelligence.RecommendRequest{Mode: m, Brief: brief, History: history})

			now := time.Now().UTC()
			if err := ws.AppendChat(ctx, m,
				domain.ChatMessage{Role: llm.RoleUser, Content: brief, At: now},
				domain.ChatMessage{Role: llm.RoleAssistant, Content: sug.Message, At: now},
			); err != nil {
				return err
			}

			deterministic := sug.Source == intelligence.SourceDeterministic
			fmt.Fprint(out, formatter.FormatRecommendation(sug.Recommendation, deterministic))
			if !apply {
				return nil
			}
			if deterministic {
				fmt.Fprintln(out, formatter.Dim("Sugerencias sin asistente: no se aplican automáticamente."))
				return nil
			}

			if m != ws.Mode() {
				if err := ws.Apply(selection.SwitchMode{Mode: m}); err != nil {
					return err
				}
			}
			res := ws.ApplyRecommendation(&sug.Recommendation)
			fmt.Fprint(out, formatter.FormatRecommendationResult(res.Applied, res.NotFound, res.Rejected))
			fmt.Fprint(out, "\n"+formatter.FormatQuote(quoteView(ws), app.Money))

			if save {
				meta := ws.Meta()
				ws.SetClient(client, meta.WebName)
				return saveAndPrint(cmd, app)
			}
			return nil
		},
	}

	cmd.Flags().Var(&mode, "mode", "Modo de venta de la conversación")
	cmd.Flags().BoolVar(&apply, "apply", false, "Aplicar las sugerencias a la selección")
	cmd.Flags().BoolVar(&save, "save", false, "Guardar el resultado como propuesta (requiere --apply)")
	cmd.Flags().StringVar(&client, "client", "", "Cliente de la propuesta guardada")
	cmd.Flags().BoolVar(&clearHistory, "clear-history", false, "Borrar el historial del modo antes de preguntar")

	return cmd
}
