package domain

import "fmt"

// SelectedItem is one entry of the canonical selection.
type SelectedItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Type      ItemType `json:"type"`
	PointCost int      `json:"pointCost,omitempty"`
}

// SelectedFromItem converts a catalog item into a selection entry of type t.
func SelectedFromItem(item CatalogItem, t ItemType) SelectedItem {
	return SelectedItem{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Type:      t,
		PointCost: item.PointCost,
	}
}

// SelectedFromPlan converts a plan into a selection entry.
func SelectedFromPlan(p Plan) SelectedItem {
	return SelectedItem{ID: p.ID, Name: p.Name, Price: p.Price, Type: ItemPlan}
}

// PlaceholderItem stands in for a stored reference whose catalog entry no
// longer exists.
func PlaceholderItem(id string, t ItemType) SelectedItem {
	return SelectedItem{
		ID:    id,
		Name:  fmt.Sprintf("Servicio (ID: %s)", id),
		Price: 0,
		Type:  t,
	}
}

// LedgerState is a snapshot of the plan points ledger.
type LedgerState struct {
	TotalPlanPoints      int     `json:"totalPlanPoints"`
	UsedPlanPoints       int     `json:"usedPlanPoints"`
	ExtraPointsPurchased int     `json:"extraPointsPurchased"`
	ExtraPointsCost      float64 `json:"extraPointsCost"`
	PointPrice           float64 `json:"pointPrice"`
}

// Budget returns the total points available, base plus purchased.
func (s LedgerState) Budget() int {
	return s.TotalPlanPoints + s.ExtraPointsPurchased
}

// Remaining returns the unspent points.
func (s LedgerState) Remaining() int {
	return s.Budget() - s.UsedPlanPoints
}

// SplitSelection separates a canonical selection into its exclusive head
// (package or plan, if any) and the remaining items.
func SplitSelection(items []SelectedItem) (pkg, plan *SelectedItem, rest []SelectedItem) {
	for i := range items {
		it := items[i]
		switch it.Type {
		case ItemPackage:
			if pkg == nil {
				pkg = &it
			}
		case ItemPlan:
			if plan == nil {
				plan = &it
			}
		default:
			rest = append(rest, it)
		}
	}
	return pkg, plan, rest
}
