package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/pricing"
	"github.com/alexanderramin/cotizador/internal/selection"
)

// QuoteView is everything needed to render the live quote of a draft.
type QuoteView struct {
	Mode      domain.SaleMode
	Indicator selection.Indicator
	Selection []domain.SelectedItem
	// Ledger is nil outside plan selections.
	Ledger *domain.LedgerState
	Totals pricing.Totals
	Margin float64
	Tiers  []pricing.TierTotal
}

// FormatQuote renders the canonical selection, the points ledger when a
// plan is active, and the totals.
func FormatQuote(v QuoteView, money *Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold("Presupuesto"), Dim(string(v.Mode)), IndicatorBadge(v.Indicator))

	if len(v.Selection) == 0 {
		b.WriteString(Dim("Sin servicios seleccionados.") + "\n")
	} else {
		b.WriteString(selectionTable(v.Selection, money))
	}

	if v.Ledger != nil {
		s := *v.Ledger
		b.WriteString("\n" + Header("Puntos") + "\n")
		fmt.Fprintf(&b, "%s  %s\n", RenderPointsBar(s.UsedPlanPoints, s.Budget(), 20), Dim(fmt.Sprintf("quedan %d", s.Remaining())))
		if s.ExtraPointsPurchased > 0 {
			fmt.Fprintf(&b, "Puntos extra: %d × %s = %s\n",
				s.ExtraPointsPurchased, money.Plain(s.PointPrice), money.Plain(s.ExtraPointsCost))
		}
	}

	b.WriteString("\n")
	b.WriteString(totalsBlock(v.Totals.TotalDev, v.Totals.TotalClient, v.Margin, money))
	if v.Totals.Feedback != "" {
		b.WriteString(Dim(v.Totals.Feedback) + "\n")
	}

	if len(v.Tiers) > 0 {
		b.WriteString("\n" + Header("Niveles") + "\n")
		b.WriteString(tierTable(v.Tiers, money))
	}
	return b.String()
}

func selectionTable(items []domain.SelectedItem, money *Money) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		price := money.Plain(it.Price)
		if it.Type == domain.ItemPlanService {
			price = Dim(fmt.Sprintf("%d pts", it.PointCost))
		}
		rows = append(rows, []string{typeLabel(it.Type), it.Name, price})
	}
	return Table{
		Headers:    []string{"TIPO", "SERVICIO", "IMPORTE"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true},
	}.Render()
}

func totalsBlock(dev, client, margin float64, money *Money) string {
	return fmt.Sprintf("%s %s\n%s %s\n%s %s\n",
		Dim("Coste desarrollo:"), money.Format(dev),
		Dim("Margen:          "), fmt.Sprintf("%g%%", margin*100),
		Bold("Precio cliente:  "), StyleGreen.Render(money.Format(client)),
	)
}

func tierTable(tiers []pricing.TierTotal, money *Money) string {
	rows := make([][]string, 0, len(tiers))
	for i, t := range tiers {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), t.Name, money.Plain(t.TotalDev), money.Plain(t.TotalClient)})
	}
	return Table{
		Headers:    []string{"#", "NIVEL", "COSTE", "PRECIO CLIENTE"},
		Rows:       rows,
		RightAlign: map[int]bool{2: true, 3: true},
	}.Render()
}

func typeLabel(t domain.ItemType) string {
	switch t {
	case domain.ItemPackage:
		return StylePurple.Render("paquete")
	case domain.ItemPlan:
		return StyleBlue.Render("plan")
	case domain.ItemPlanService:
		return StyleBlue.Render("plan·servicio")
	case domain.ItemCustom:
		return StyleYellow.Render("a medida")
	default:
		return "servicio"
	}
}
