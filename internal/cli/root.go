package cli

import (
	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/config"
	"github.com/alexanderramin/cotizador/internal/intelligence"
	"github.com/alexanderramin/cotizador/internal/service"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands act on. The workspace must already
// be opened.
type App struct {
	Workspace   *service.Workspace
	Data        service.DataService
	Recommender intelligence.RecommendService
	Money       *formatter.Money
	Config      config.Config
	ConfigPath  string
	// Interactive enables huh forms; false when stdin is not a terminal.
	Interactive bool
}

// NewRootCmd creates the top-level "cotizador" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cotizador",
		Short:         "Configurador de propuestas comerciales",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCatalogCmd(app),
		newQuoteCmd(app),
		newProposalCmd(app),
		newLocalCmd(app),
		newRecommendCmd(app),
		newDataCmd(app),
		newConfigCmd(app),
	)

	return root
}
