// Package pricing derives development cost and client price from a
// canonical selection. Amounts are never rounded here; formatting belongs
// to the presentation layer.
package pricing

import (
	"fmt"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// Totals is the derived pricing summary of a selection.
type Totals struct {
	TotalDev    float64
	TotalClient float64
	Feedback    string
}

// ClientPrice applies the margin to a development cost. Margins below 1 are
// a share of the client price (dev / (1 - margin)); margins of 1 or more are
// a cost-plus multiplier (dev * (1 + margin)).
func ClientPrice(totalDev, margin float64) float64 {
	if margin < 1 {
		return totalDev / (1 - margin)
	}
	return totalDev * (1 + margin)
}

// MarginFromPercent converts a percentage such as 60 into the fraction 0.6.
func MarginFromPercent(pct float64) (float64, error) {
	if pct < 0 {
		return 0, domain.Invalidf("margin cannot be negative, got %v%%", pct)
	}
	return pct / 100, nil
}

// ComputeTotals derives the totals of a canonical selection.
//
// A package costs its own price; a plan costs its price plus the extra
// points bought in the ledger; otherwise standard and custom items are
// summed. Exclusivity is assumed to be enforced upstream.
func ComputeTotals(selection []domain.SelectedItem, ledger domain.LedgerState, margin float64) Totals {
	pkg, plan, rest := domain.SplitSelection(selection)

	var t Totals
	switch {
	case pkg != nil:
		t.TotalDev = pkg.Price
		t.Feedback = fmt.Sprintf("Paquete %s", pkg.Name)
	case plan != nil:
		t.TotalDev = plan.Price + ledger.ExtraPointsCost
		t.Feedback = fmt.Sprintf("Plan %s: %d de %d puntos usados", plan.Name, ledger.UsedPlanPoints, ledger.Budget())
		if ledger.ExtraPointsPurchased > 0 {
			t.Feedback += fmt.Sprintf(" (%d extra)", ledger.ExtraPointsPurchased)
		}
	default:
		count := 0
		for _, it := range rest {
			if it.Type == domain.ItemStandard || it.Type == domain.ItemCustom {
				t.TotalDev += it.Price
				count++
			}
		}
		switch count {
		case 0:
			t.Feedback = "Sin servicios seleccionados"
		case 1:
			t.Feedback = "1 servicio individual"
		default:
			t.Feedback = fmt.Sprintf("%d servicios individuales", count)
		}
	}

	t.TotalClient = ClientPrice(t.TotalDev, margin)
	return t
}

// TierTotal is the priced result of one tier.
type TierTotal struct {
	Name        string
	TotalDev    float64
	TotalClient float64
}

// TierTotals prices every tier independently against the same margin.
func TierTotals(tiers []domain.Tier, margin float64) []TierTotal {
	out := make([]TierTotal, len(tiers))
	for i, tier := range tiers {
		dev := SumTier(tier.Services)
		out[i] = TierTotal{Name: tier.Name, TotalDev: dev, TotalClient: ClientPrice(dev, margin)}
	}
	return out
}

// SumTier returns the development cost of a tier's services.
func SumTier(services []domain.TierService) float64 {
	var sum float64
	for _, s := range services {
		sum += s.Price
	}
	return sum
}

// Convert converts an amount to a display currency at rate units per base
// unit.
func Convert(amount, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, domain.Invalidf("exchange rate must be positive, got %v", rate)
	}
	return amount * rate, nil
}

// ProposalTotals returns the stored totals of a standard proposal as a
// single entry, or one entry per tier for tiered proposals.
func ProposalTotals(p *domain.Proposal) []TierTotal {
	switch b := p.Body.(type) {
	case domain.StandardBody:
		return []TierTotal{{TotalDev: b.TotalDev, TotalClient: b.TotalClient}}
	case domain.TieredBody:
		return TierTotals(b.Tiers, p.Margin)
	default:
		return nil
	}
}
