// Package ledger tracks the points budget of a monthly plan: the plan's base
// points plus purchased extra points, spent by individually toggled
// plan-services.
package ledger

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// ErrInsufficientPoints is returned when a plan-service costs more points
// than remain. It wraps domain.ErrValidation.
var ErrInsufficientPoints = fmt.Errorf("%w: insufficient points", domain.ErrValidation)

// ErrUnknownService is returned when toggling an id that is not part of the
// active plan's service catalog.
var ErrUnknownService = errors.New("unknown plan service")

// Ledger is the mutable points ledger of the in-progress draft. All
// mutations go through its methods so that UsedPlanPoints always equals the
// point cost of the checked services.
type Ledger struct {
	state    domain.LedgerState
	planID   string
	services []domain.CatalogItem
	checked  []string
}

// New returns an empty ledger using pointPrice for extra point purchases.
func New(pointPrice float64) *Ledger {
	return &Ledger{state: domain.LedgerState{PointPrice: pointPrice}}
}

// State returns a snapshot of the ledger counters.
func (l *Ledger) State() domain.LedgerState {
	return l.state
}

// PlanID returns the id of the plan the ledger was built for, or "".
func (l *Ledger) PlanID() string {
	return l.planID
}

// Reset zeroes every counter and forgets the plan. The point price is kept.
func (l *Ledger) Reset() {
	l.state = domain.LedgerState{PointPrice: l.state.PointPrice}
	l.planID = ""
	l.services = nil
	l.checked = nil
}

// SelectPlan rebuilds the ledger for plan. Extra points are reset to zero.
// Preselected ids (edit flow) are marked used without an affordability check;
// ids missing from services are skipped.
func (l *Ledger) SelectPlan(plan domain.Plan, services []domain.CatalogItem, preselected []string) {
	l.Reset()
	l.planID = plan.ID
	l.state.TotalPlanPoints = plan.Points
	l.services = append([]domain.CatalogItem(nil), services...)

	for _, id := range preselected {
		item := l.find(id)
		if item == nil || l.isChecked(id) {
			continue
		}
		l.checked = append(l.checked, id)
		l.state.UsedPlanPoints += item.PointCost
	}
}

// ToggleService checks or unchecks a plan-service. Checking a service that
// is not affordable fails with ErrInsufficientPoints and changes nothing.
// Repeating the current state is a no-op.
func (l *Ledger) ToggleService(id string, checked bool) error {
	item := l.find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", ErrUnknownService, id)
	}

	if !checked {
		idx := l.indexOf(id)
		if idx < 0 {
			return nil
		}
		l.checked = append(l.checked[:idx], l.checked[idx+1:]...)
		l.state.UsedPlanPoints -= item.PointCost
		return nil
	}

	if l.isChecked(id) {
		return nil
	}
	if !l.IsAffordable(item.PointCost) {
		return fmt.Errorf("%w: %s needs %d more points", ErrInsufficientPoints, item.Name, l.Shortfall(item.PointCost))
	}
	l.checked = append(l.checked, id)
	l.state.UsedPlanPoints += item.PointCost
	return nil
}

// PurchaseExtraPoints adds amount to the purchased points and recomputes the
// extra cost from the cumulative purchased count at the current point price.
// A point price change between purchases therefore reprices earlier batches.
func (l *Ledger) PurchaseExtraPoints(amount int) error {
	if amount <= 0 {
		return domain.Invalidf("extra points must be a positive integer, got %d", amount)
	}
	l.state.ExtraPointsPurchased += amount
	l.state.ExtraPointsCost = float64(l.state.ExtraPointsPurchased) * l.state.PointPrice
	return nil
}

// SetPointPrice changes the price used by subsequent purchases.
func (l *Ledger) SetPointPrice(price float64) error {
	if price < 0 {
		return domain.Invalidf("point price cannot be negative, got %v", price)
	}
	l.state.PointPrice = price
	return nil
}

// RestoreExtra sets the purchased extras from a persisted snapshot without
// repricing them.
func (l *Ledger) RestoreExtra(purchased int, cost float64) {
	if purchased < 0 {
		purchased = 0
	}
	l.state.ExtraPointsPurchased = purchased
	l.state.ExtraPointsCost = cost
}

// Available returns the points not yet spent.
func (l *Ledger) Available() int {
	return l.state.Remaining()
}

// IsAffordable reports whether a not-yet-checked service costing pointCost
// fits the remaining budget.
func (l *Ledger) IsAffordable(pointCost int) bool {
	return pointCost <= l.Available()
}

// Shortfall returns how many more points pointCost needs, or 0 if affordable.
func (l *Ledger) Shortfall(pointCost int) int {
	if n := pointCost - l.Available(); n > 0 {
		return n
	}
	return 0
}

// Services returns the plan-service catalog of the active plan.
func (l *Ledger) Services() []domain.CatalogItem {
	return append([]domain.CatalogItem(nil), l.services...)
}

// IsChecked reports whether the plan-service is currently checked.
func (l *Ledger) IsChecked(id string) bool {
	return l.isChecked(id)
}

// CheckedIDs returns the checked plan-service ids in check order.
func (l *Ledger) CheckedIDs() []string {
	return append([]string(nil), l.checked...)
}

// Selected returns the checked plan-services as selection entries, in check
// order.
func (l *Ledger) Selected() []domain.SelectedItem {
	out := make([]domain.SelectedItem, 0, len(l.checked))
	for _, id := range l.checked {
		if item := l.find(id); item != nil {
			out = append(out, domain.SelectedFromItem(*item, domain.ItemPlanService))
		}
	}
	return out
}

// ServiceAvailability describes whether a plan-service can be toggled on.
type ServiceAvailability struct {
	Item       domain.CatalogItem
	Checked    bool
	Affordable bool
	Shortfall  int
}

// Availability lists every plan-service with its affordability. Checked
// services are always reported affordable.
func (l *Ledger) Availability() []ServiceAvailability {
	out := make([]ServiceAvailability, 0, len(l.services))
	for _, item := range l.services {
		a := ServiceAvailability{Item: item, Checked: l.isChecked(item.ID)}
		if a.Checked || l.IsAffordable(item.PointCost) {
			a.Affordable = true
		} else {
			a.Shortfall = l.Shortfall(item.PointCost)
		}
		out = append(out, a)
	}
	return out
}

func (l *Ledger) find(id string) *domain.CatalogItem {
	for i := range l.services {
		if l.services[i].ID == id {
			return &l.services[i]
		}
	}
	return nil
}

func (l *Ledger) indexOf(id string) int {
	for i, c := range l.checked {
		if c == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) isChecked(id string) bool {
	return l.indexOf(id) >= 0
}
