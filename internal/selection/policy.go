package selection

import "github.com/alexanderramin/cotizador/internal/domain"

// Indicator classifies the current selection mode for display.
type Indicator string

const (
	IndicatorPackage    Indicator = "Paquete"
	IndicatorPlan       Indicator = "Plan"
	IndicatorIndividual Indicator = "Individual"
)

// ExclusivityPolicy describes what an active exclusive item blocks.
type ExclusivityPolicy struct {
	BlocksStandard bool
	BlocksCustom   bool
}

// Policies maps each exclusive item type to its policy. Custom items are
// blocked under a package but not under a plan; product has not confirmed
// whether that asymmetry is intended, so it is kept as found.
var Policies = map[domain.ItemType]ExclusivityPolicy{
	domain.ItemPackage: {BlocksStandard: true, BlocksCustom: true},
	domain.ItemPlan:    {BlocksStandard: true, BlocksCustom: false},
}

func policyFor(t domain.ItemType) ExclusivityPolicy {
	return Policies[t]
}
