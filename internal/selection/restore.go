package selection

import "github.com/alexanderramin/cotizador/internal/domain"

// Snapshot is a stored selection to load back into a draft.
type Snapshot struct {
	Mode           domain.SaleMode
	Package        *domain.SelectedItem
	Plan           *domain.SelectedItem
	PlanServiceIDs []string
	Standard       []domain.SelectedItem
	Custom         []domain.SelectedItem
	Ledger         domain.LedgerState
}

// RestoreReport lists references that no longer match the catalog.
// Placeholders were kept at price 0; Dropped plan-services were discarded.
type RestoreReport struct {
	Placeholders []string
	Dropped      []string
}

// Restore replaces the draft state with snap. Package, plan and standard
// references missing from the catalog become placeholders; plan-service ids
// missing from the catalog are dropped. Extra points are restored with their
// stored cost.
func (d *Draft) Restore(snap Snapshot) RestoreReport {
	var report RestoreReport

	mode := snap.Mode
	if !domain.ValidSaleModes[string(mode)] {
		mode = domain.ModePuntual
	}
	d.Reset()
	d.mode = mode

	switch {
	case snap.Package != nil:
		item := d.store.Resolve(snap.Package.ID, domain.ItemPackage)
		if item == nil {
			ph := domain.PlaceholderItem(snap.Package.ID, domain.ItemPackage)
			item = &ph
			report.Placeholders = append(report.Placeholders, snap.Package.ID)
		}
		d.pkg = item

	case snap.Plan != nil:
		plan := d.store.Catalog().FindPlan(snap.Plan.ID)
		if plan == nil {
			ph := domain.PlaceholderItem(snap.Plan.ID, domain.ItemPlan)
			plan = &domain.Plan{ID: ph.ID, Name: ph.Name}
			report.Placeholders = append(report.Placeholders, snap.Plan.ID)
		}
		item := domain.SelectedFromPlan(*plan)
		d.plan = &item
		d.ledger.SelectPlan(*plan, d.store.Catalog().PlanServices(), snap.PlanServiceIDs)
		d.ledger.RestoreExtra(snap.Ledger.ExtraPointsPurchased, snap.Ledger.ExtraPointsCost)
		for _, id := range snap.PlanServiceIDs {
			if !d.ledger.IsChecked(id) {
				report.Dropped = append(report.Dropped, id)
			}
		}

	default:
		for _, it := range snap.Standard {
			resolved := d.store.Resolve(it.ID, domain.ItemStandard)
			if resolved == nil {
				ph := domain.PlaceholderItem(it.ID, domain.ItemStandard)
				resolved = &ph
				report.Placeholders = append(report.Placeholders, it.ID)
			}
			d.standard = append(d.standard, *resolved)
		}
	}

	d.store.RestoreCustom(snap.Custom)
	return report
}
