package selection

import "github.com/alexanderramin/cotizador/internal/domain"

// Event is a selection message produced by the presentation layer.
type Event interface {
	event()
}

// SwitchMode changes the top-level sale mode. Switching to a different mode
// clears every selection, the ledger and the custom services.
type SwitchMode struct {
	Mode domain.SaleMode
}

// SelectPackage chooses the exclusive package (puntual mode only).
type SelectPackage struct {
	ID string
}

// ClearPackage deselects the active package.
type ClearPackage struct{}

// SelectPlan chooses the exclusive plan (mensual mode only). Preselected
// plan-service ids are marked used without an affordability check.
type SelectPlan struct {
	ID          string
	Preselected []string
}

// ClearPlan deselects the active plan and resets the ledger.
type ClearPlan struct{}

// ToggleStandard checks or unchecks a standard item.
type ToggleStandard struct {
	ID      string
	Checked bool
}

// TogglePlanService checks or unchecks a plan-service against the ledger.
type TogglePlanService struct {
	ID      string
	Checked bool
}

// PurchaseExtraPoints buys extra plan points.
type PurchaseExtraPoints struct {
	Amount int
}

// AddCustom adds an ad-hoc priced item to the draft.
type AddCustom struct {
	Name  string
	Price float64
}

// RemoveCustom removes an ad-hoc item from the draft.
type RemoveCustom struct {
	ID string
}

func (SwitchMode) event()          {}
func (SelectPackage) event()       {}
func (ClearPackage) event()        {}
func (SelectPlan) event()          {}
func (ClearPlan) event()           {}
func (ToggleStandard) event()      {}
func (TogglePlanService) event()   {}
func (PurchaseExtraPoints) event() {}
func (AddCustom) event()           {}
func (RemoveCustom) event()        {}
