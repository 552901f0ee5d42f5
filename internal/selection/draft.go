// Package selection reconciles selection events into the canonical
// selection: at most one exclusive item (package or plan), its plan-services
// when it is a plan, otherwise the checked standard items, and always the
// custom items.
package selection

import (
	"fmt"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/ledger"
)

// Draft is the in-progress selection state. It is the single source of
// truth for what is selected; presentation is a projection of it.
type Draft struct {
	mode     domain.SaleMode
	pkg      *domain.SelectedItem
	plan     *domain.SelectedItem
	standard []domain.SelectedItem

	store  *catalog.Store
	ledger *ledger.Ledger
}

// NewDraft returns an empty draft in the given mode.
func NewDraft(store *catalog.Store, l *ledger.Ledger, mode domain.SaleMode) *Draft {
	if mode == "" {
		mode = domain.ModePuntual
	}
	return &Draft{mode: mode, store: store, ledger: l}
}

// Mode returns the current sale mode.
func (d *Draft) Mode() domain.SaleMode { return d.mode }

// Package returns the active package, or nil.
func (d *Draft) Package() *domain.SelectedItem { return d.pkg }

// Plan returns the active plan, or nil.
func (d *Draft) Plan() *domain.SelectedItem { return d.plan }

// Ledger returns the points ledger backing plan mode.
func (d *Draft) Ledger() *ledger.Ledger { return d.ledger }

// Store returns the catalog store the draft resolves against.
func (d *Draft) Store() *catalog.Store { return d.store }

// StandardChecked returns the checked standard items in check order,
// including those currently ignored because an exclusive item is active.
func (d *Draft) StandardChecked() []domain.SelectedItem {
	return append([]domain.SelectedItem(nil), d.standard...)
}

// ExclusiveType returns the type of the active exclusive item, or "".
func (d *Draft) ExclusiveType() domain.ItemType {
	switch {
	case d.pkg != nil:
		return domain.ItemPackage
	case d.plan != nil:
		return domain.ItemPlan
	default:
		return ""
	}
}

// HasSelection reports whether anything is selected.
func (d *Draft) HasSelection() bool {
	return d.pkg != nil || d.plan != nil || len(d.standard) > 0 || len(d.store.Custom()) > 0
}

// Reset clears every selection, the ledger and the custom services. The
// mode is kept.
func (d *Draft) Reset() {
	d.pkg = nil
	d.plan = nil
	d.standard = nil
	d.ledger.Reset()
	d.store.ClearCustom()
}

// Apply processes one event. On error the draft is unchanged.
func (d *Draft) Apply(ev Event) error {
	switch e := ev.(type) {
	case SwitchMode:
		return d.switchMode(e.Mode)
	case SelectPackage:
		return d.selectPackage(e.ID)
	case ClearPackage:
		d.pkg = nil
		return nil
	case SelectPlan:
		return d.selectPlan(e.ID, e.Preselected)
	case ClearPlan:
		d.plan = nil
		d.ledger.Reset()
		return nil
	case ToggleStandard:
		return d.toggleStandard(e.ID, e.Checked)
	case TogglePlanService:
		if d.plan == nil {
			return domain.Invalidf("no plan selected")
		}
		return d.ledger.ToggleService(e.ID, e.Checked)
	case PurchaseExtraPoints:
		if d.plan == nil {
			return domain.Invalidf("no plan selected")
		}
		return d.ledger.PurchaseExtraPoints(e.Amount)
	case AddCustom:
		if !d.CustomAllowed() {
			return domain.Invalidf("custom items cannot be added while a package is selected")
		}
		_, err := d.store.AddCustom(catalog.ServiceInput{Name: e.Name, Price: e.Price})
		return err
	case RemoveCustom:
		if !d.store.RemoveCustom(e.ID) {
			return domain.Invalidf("custom item %q not found", e.ID)
		}
		return nil
	default:
		return fmt.Errorf("unsupported selection event %T", ev)
	}
}

func (d *Draft) switchMode(mode domain.SaleMode) error {
	if !domain.ValidSaleModes[string(mode)] {
		return domain.Invalidf("unknown mode %q", mode)
	}
	if mode == d.mode {
		return nil
	}
	d.Reset()
	d.mode = mode
	return nil
}

func (d *Draft) selectPackage(id string) error {
	if d.mode != domain.ModePuntual {
		return domain.Invalidf("packages are only available in %s mode", domain.ModePuntual)
	}
	item := d.store.Resolve(id, domain.ItemPackage)
	if item == nil {
		return domain.Invalidf("package %q not found", id)
	}
	d.pkg = item
	if d.plan != nil {
		d.plan = nil
		d.ledger.Reset()
	}
	return nil
}

func (d *Draft) selectPlan(id string, preselected []string) error {
	if d.mode != domain.ModeMensual {
		return domain.Invalidf("plans are only available in %s mode", domain.ModeMensual)
	}
	plan := d.store.Catalog().FindPlan(id)
	if plan == nil {
		return domain.Invalidf("plan %q not found", id)
	}
	if d.plan != nil && d.plan.ID == id && len(preselected) == 0 {
		return nil
	}
	item := domain.SelectedFromPlan(*plan)
	d.pkg = nil
	d.plan = &item
	d.ledger.SelectPlan(*plan, d.store.Catalog().PlanServices(), preselected)
	return nil
}

func (d *Draft) toggleStandard(id string, checked bool) error {
	if t := d.ExclusiveType(); t != "" && policyFor(t).BlocksStandard {
		return domain.Invalidf("individual services are disabled while a %s is selected", t)
	}
	idx := -1
	for i, it := range d.standard {
		if it.ID == id {
			idx = i
			break
		}
	}
	if !checked {
		if idx >= 0 {
			d.standard = append(d.standard[:idx], d.standard[idx+1:]...)
		}
		return nil
	}
	if idx >= 0 {
		return nil
	}
	item := d.store.Resolve(id, domain.ItemStandard)
	if item == nil {
		return domain.Invalidf("service %q not found", id)
	}
	d.standard = append(d.standard, *item)
	return nil
}

// CustomAllowed reports whether custom items may be added right now.
func (d *Draft) CustomAllowed() bool {
	t := d.ExclusiveType()
	if t == "" {
		return true
	}
	return !policyFor(t).BlocksCustom
}

// Indicator classifies the draft as package, plan or individual selection.
func (d *Draft) Indicator() Indicator {
	switch d.ExclusiveType() {
	case domain.ItemPackage:
		return IndicatorPackage
	case domain.ItemPlan:
		return IndicatorPlan
	default:
		return IndicatorIndividual
	}
}

// Reconcile returns the canonical selection of the draft.
func Reconcile(d *Draft) []domain.SelectedItem {
	var out []domain.SelectedItem
	switch {
	case d.pkg != nil:
		out = append(out, *d.pkg)
	case d.plan != nil:
		out = append(out, *d.plan)
		out = append(out, d.ledger.Selected()...)
	default:
		out = append(out, d.standard...)
	}
	return append(out, d.store.Custom()...)
}

// Selection is shorthand for Reconcile(d).
func (d *Draft) Selection() []domain.SelectedItem {
	return Reconcile(d)
}
