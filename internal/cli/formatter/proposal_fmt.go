package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/pricing"
)

// FormatProposalList renders saved proposals with their list index, which
// is what the edit, status and delete commands take.
func FormatProposalList(proposals []*domain.Proposal, editing int, money *Money) string {
	if len(proposals) == 0 {
		return Dim("No hay propuestas guardadas.") + "\n"
	}
	rows := make([][]string, 0, len(proposals))
	for i, p := range proposals {
		idx := fmt.Sprintf("%d", i)
		if i == editing {
			idx = StyleYellow.Render(idx + "*")
		}
		client := p.ClientName
		if p.IsUrgent {
			client = StyleRed.Render("!") + " " + client
		}
		rows = append(rows, []string{
			idx,
			Truncate(client, 30),
			string(p.Type),
			StatusStyle(p.Status).Render(string(p.Status)),
			priceRange(p, money),
			HumanDate(p.DateUpdated),
		})
	}
	return Table{
		Headers:    []string{"#", "CLIENTE", "MODO", "ESTADO", "PRECIO", "ACTUALIZADA"},
		Rows:       rows,
		RightAlign: map[int]bool{4: true},
	}.Render()
}

// priceRange shows the client price, or the lowest and highest tier.
func priceRange(p *domain.Proposal, money *Money) string {
	totals := pricing.ProposalTotals(p)
	switch len(totals) {
	case 0:
		return "-"
	case 1:
		return money.Plain(totals[0].TotalClient)
	}
	lo, hi := totals[0].TotalClient, totals[0].TotalClient
	for _, t := range totals[1:] {
		if t.TotalClient < lo {
			lo = t.TotalClient
		}
		if t.TotalClient > hi {
			hi = t.TotalClient
		}
	}
	return money.Plain(lo) + " – " + money.Plain(hi)
}

// ProposalSummary renders a saved proposal for sharing: the header, its
// services and the totals per tier.
func ProposalSummary(p *domain.Proposal, money *Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Bold("Cliente:"), p.ClientName)
	if p.WebName != "" {
		fmt.Fprintf(&b, "%s %s\n", Bold("Web:"), p.WebName)
	}
	fmt.Fprintf(&b, "%s %s\n", Bold("Modo:"), p.Type)
	fmt.Fprintf(&b, "%s %s\n", Bold("Estado:"), StatusStyle(p.Status).Render(string(p.Status)))
	if p.IsUrgent {
		b.WriteString(StyleRed.Render("Urgente") + "\n")
	}
	fmt.Fprintf(&b, "%s %s\n\n", Bold("Actualizada:"), p.DateUpdated.Local().Format("02/01/2006 15:04"))

	switch body := p.Body.(type) {
	case domain.StandardBody:
		var items []domain.SelectedItem
		if body.Package != nil {
			items = append(items, *body.Package)
		}
		if body.Plan != nil {
			items = append(items, *body.Plan)
		}
		items = append(items, body.Services...)
		b.WriteString(selectionTable(items, money))
		if body.Plan != nil {
			s := body.Ledger
			fmt.Fprintf(&b, "\n%s %s\n", Dim("Puntos:"), RenderPointsBar(s.UsedPlanPoints, s.Budget(), 20))
			if s.ExtraPointsPurchased > 0 {
				fmt.Fprintf(&b, "%s %d (%s)\n", Dim("Puntos extra:"), s.ExtraPointsPurchased, money.Plain(s.ExtraPointsCost))
			}
		}
		b.WriteString("\n")
		b.WriteString(totalsBlock(body.TotalDev, body.TotalClient, p.Margin, money))

	case domain.TieredBody:
		totals := pricing.ProposalTotals(p)
		for i, tier := range body.Tiers {
			b.WriteString(Header(fmt.Sprintf("%d. %s", i+1, tier.Name)) + "\n")
			rows := make([][]string, 0, len(tier.Services))
			for _, s := range tier.Services {
				rows = append(rows, []string{s.Name, money.Plain(s.Price)})
			}
			b.WriteString(Table{
				Headers:    []string{"SERVICIO", "IMPORTE"},
				Rows:       rows,
				RightAlign: map[int]bool{1: true},
			}.Render())
			b.WriteString(totalsBlock(totals[i].TotalDev, totals[i].TotalClient, p.Margin, money))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
