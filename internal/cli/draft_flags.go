package cli

import (
	"fmt"

	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/pricing"
	"github.com/alexanderramin/cotizador/internal/selection"
	"github.com/alexanderramin/cotizador/internal/service"
	"github.com/spf13/cobra"
)

// draftFlags are the selection and header flags shared by quote, proposal
// new and proposal edit.
type draftFlags struct {
	mode        modeFlag
	pkg         string
	plan        string
	services    []string
	remove      []string
	extraPoints int
	custom      customFlag
	tiers       tierFlag
	marginPct   float64
	client      string
	web         string
	urgent      bool
}

func (f *draftFlags) register(cmd *cobra.Command, withRemove bool) {
	fs := cmd.Flags()
	fs.Var(&f.mode, "mode", "Modo de venta: puntual o mensual")
	fs.StringVar(&f.pkg, "package", "", "Paquete exclusivo (modo puntual)")
	fs.StringVar(&f.plan, "plan", "", "Plan mensual (modo mensual)")
	fs.StringSliceVarP(&f.services, "service", "s", nil, "Servicio a marcar (repetible)")
	fs.IntVar(&f.extraPoints, "extra-points", 0, "Puntos extra a comprar para el plan")
	fs.Var(&f.custom, "custom", "Servicio a medida Nombre=Precio (repetible)")
	fs.Var(&f.tiers, "tier", "Nivel Nombre=id1,id2 (repetible); crea una propuesta por niveles")
	fs.Float64Var(&f.marginPct, "margin", 0, "Margen en porcentaje, p.ej. 60")
	fs.StringVar(&f.client, "client", "", "Nombre del cliente")
	fs.StringVar(&f.web, "web", "", "Nombre de la web")
	fs.BoolVar(&f.urgent, "urgent", false, "Marcar como urgente")
	if withRemove {
		fs.StringSliceVar(&f.remove, "remove", nil, "Servicio a desmarcar (repetible)")
	}
}

// apply translates the flags into workspace updates. Flags left unset keep
// the current draft values, which matters when editing.
func (f *draftFlags) apply(cmd *cobra.Command, ws *service.Workspace) error {
	flags := cmd.Flags()

	if flags.Changed("mode") && f.mode.mode != ws.Mode() {
		if err := ws.Apply(selection.SwitchMode{Mode: f.mode.mode}); err != nil {
			return err
		}
	}

	meta := ws.Meta()
	if flags.Changed("client") || flags.Changed("web") {
		client, web := meta.ClientName, meta.WebName
		if flags.Changed("client") {
			client = f.client
		}
		if flags.Changed("web") {
			web = f.web
		}
		ws.SetClient(client, web)
	}
	if flags.Changed("margin") {
		margin, err := pricing.MarginFromPercent(f.marginPct)
		if err != nil {
			return err
		}
		if err := ws.SetMargin(margin); err != nil {
			return err
		}
	}
	if flags.Changed("urgent") {
		ws.SetUrgent(f.urgent)
	}

	for _, id := range f.remove {
		if err := ws.Apply(removeEvent(ws, id)); err != nil {
			return fmt.Errorf("--remove %s: %w", id, err)
		}
	}

	if f.pkg != "" {
		if err := ws.Apply(selection.SelectPackage{ID: f.pkg}); err != nil {
			return fmt.Errorf("--package %s: %w", f.pkg, err)
		}
	}
	if f.plan != "" {
		if err := ws.Apply(selection.SelectPlan{ID: f.plan}); err != nil {
			return fmt.Errorf("--plan %s: %w", f.plan, err)
		}
	}
	if flags.Changed("extra-points") {
		if err := ws.Apply(selection.PurchaseExtraPoints{Amount: f.extraPoints}); err != nil {
			return fmt.Errorf("--extra-points: %w", err)
		}
	}
	for _, id := range f.services {
		if err := ws.Apply(toggleEvent(ws, id, true)); err != nil {
			return fmt.Errorf("--service %s: %w", id, err)
		}
	}
	for _, c := range f.custom.items {
		if err := ws.Apply(selection.AddCustom{Name: c.Name, Price: c.Price}); err != nil {
			return fmt.Errorf("--custom %s: %w", c.Name, err)
		}
	}
	for _, t := range f.tiers.tiers {
		if err := ws.AddTier(t.Name, t.IDs); err != nil {
			return fmt.Errorf("--tier %s: %w", t.Name, err)
		}
	}
	return nil
}

// toggleEvent targets the plan ledger when a plan is active, otherwise the
// standard items.
func toggleEvent(ws *service.Workspace, id string, checked bool) selection.Event {
	if ws.Draft().Plan() != nil {
		return selection.TogglePlanService{ID: id, Checked: checked}
	}
	return selection.ToggleStandard{ID: id, Checked: checked}
}

func removeEvent(ws *service.Workspace, id string) selection.Event {
	if ws.Store().Resolve(id, domain.ItemCustom) != nil {
		return selection.RemoveCustom{ID: id}
	}
	d := ws.Draft()
	switch {
	case d.Package() != nil && d.Package().ID == id:
		return selection.ClearPackage{}
	case d.Plan() != nil && d.Plan().ID == id:
		return selection.ClearPlan{}
	}
	return toggleEvent(ws, id, false)
}

// quoteView projects the workspace draft for display.
func quoteView(ws *service.Workspace) formatter.QuoteView {
	v := formatter.QuoteView{
		Mode:      ws.Mode(),
		Indicator: ws.Draft().Indicator(),
		Selection: ws.Selection(),
		Totals:    ws.Totals(),
		Margin:    ws.Meta().Margin,
		Tiers:     ws.TierTotals(),
	}
	if ws.Draft().Plan() != nil {
		s := ws.Ledger().State()
		v.Ledger = &s
	}
	return v
}
