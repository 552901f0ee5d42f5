package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/pricing"
	"github.com/alexanderramin/cotizador/internal/selection"
	"github.com/alexanderramin/cotizador/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// cotizadorHuhTheme returns a huh theme using the formatter palette.
func cotizadorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardAnswers collects the proposal wizard fields.
type wizardAnswers struct {
	Mode      string
	Exclusive string
	Services  []string
	Client    string
	Web       string
	Margin    string
	Urgent    bool
}

func wizardModeForm(a *wizardAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Modo de venta").
				Options(
					huh.NewOption("Puntual (paquetes y servicios)", string(domain.ModePuntual)),
					huh.NewOption("Mensual (planes con puntos)", string(domain.ModeMensual)),
				).
				Value(&a.Mode),
		),
	).WithTheme(cotizadorHuhTheme()).WithShowHelp(false)
}

// wizardSelectionForm offers the exclusive entries and the services of mode.
func wizardSelectionForm(cat *domain.Catalog, money *formatter.Money, a *wizardAnswers) *huh.Form {
	var exclusive []huh.Option[string]
	var services []huh.Option[string]
	exclusiveTitle := "Paquete"

	if domain.SaleMode(a.Mode) == domain.ModeMensual {
		exclusiveTitle = "Plan"
		exclusive = append(exclusive, huh.NewOption("Sin plan", ""))
		for _, p := range cat.Plans {
			exclusive = append(exclusive, huh.NewOption(fmt.Sprintf("%s · %s · %d pts", p.Name, money.Plain(p.Price), p.Points), p.ID))
		}
		for _, it := range cat.PlanServices() {
			services = append(services, huh.NewOption(fmt.Sprintf("%s · %d pts", it.Name, it.PointCost), it.ID))
		}
	} else {
		exclusive = append(exclusive, huh.NewOption("Sin paquete", ""))
		for _, c := range cat.Categories {
			for _, it := range c.Items {
				label := fmt.Sprintf("%s · %s", it.Name, money.Plain(it.Price))
				if c.IsExclusive {
					exclusive = append(exclusive, huh.NewOption(label, it.ID))
				} else {
					services = append(services, huh.NewOption(label, it.ID))
				}
			}
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(exclusiveTitle).
				Options(exclusive...).
				Value(&a.Exclusive),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Servicios").
				Description("Con un paquete activo los servicios individuales se ignoran").
				Options(services...).
				Value(&a.Services),
		),
	).WithTheme(cotizadorHuhTheme()).WithShowHelp(false)
}

func wizardHeaderForm(a *wizardAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Cliente").Value(&a.Client),
			huh.NewInput().Title("Web").Value(&a.Web),
			huh.NewInput().
				Title("Margen (%)").
				Placeholder("50").
				Value(&a.Margin).
				Validate(validateMarginPercent),
			huh.NewConfirm().Title("¿Urgente?").Value(&a.Urgent),
		),
	).WithTheme(cotizadorHuhTheme()).WithShowHelp(false)
}

// validateMarginPercent accepts blank (keep default) or a non-negative number.
func validateMarginPercent(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return fmt.Errorf("introduce un número")
	}
	if v < 0 {
		return fmt.Errorf("el margen no puede ser negativo")
	}
	return nil
}

// runProposalWizard asks for the proposal interactively and applies the
// answers to the workspace draft.
func runProposalWizard(app *App) error {
	ws := app.Workspace
	a := &wizardAnswers{Mode: string(ws.Mode())}

	if err := wizardModeForm(a).Run(); err != nil {
		return err
	}
	if err := wizardSelectionForm(ws.Store().Catalog(), app.Money, a).Run(); err != nil {
		return err
	}
	if err := wizardHeaderForm(a).Run(); err != nil {
		return err
	}
	return applyWizardAnswers(ws, a)
}

// applyWizardAnswers turns wizard answers into selection events. Services
// are ignored while a package is chosen, as the draft locks them.
func applyWizardAnswers(ws *service.Workspace, a *wizardAnswers) error {
	mode := domain.SaleMode(a.Mode)
	if mode != ws.Mode() {
		if err := ws.Apply(selection.SwitchMode{Mode: mode}); err != nil {
			return err
		}
	}

	if a.Exclusive != "" {
		var ev selection.Event = selection.SelectPackage{ID: a.Exclusive}
		if mode == domain.ModeMensual {
			ev = selection.SelectPlan{ID: a.Exclusive}
		}
		if err := ws.Apply(ev); err != nil {
			return err
		}
	}
	if ws.Draft().Package() == nil {
		for _, id := range a.Services {
			if err := ws.Apply(toggleEvent(ws, id, true)); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
		}
	}

	ws.SetClient(a.Client, a.Web)
	ws.SetUrgent(a.Urgent)
	if s := strings.TrimSpace(a.Margin); s != "" {
		pct, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return domain.Invalidf("invalid margin %q", a.Margin)
		}
		margin, err := pricing.MarginFromPercent(pct)
		if err != nil {
			return err
		}
		return ws.SetMargin(margin)
	}
	return nil
}
