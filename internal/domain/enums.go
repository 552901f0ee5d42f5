package domain

// ItemType classifies an entry of the canonical selection.
type ItemType string

const (
	ItemPackage     ItemType = "package"
	ItemPlan        ItemType = "plan"
	ItemStandard    ItemType = "standard"
	ItemCustom      ItemType = "custom"
	ItemPlanService ItemType = "plan-service"
)

// IsExclusive reports whether items of this type exclude every other
// exclusive item and all standard items.
func (t ItemType) IsExclusive() bool {
	return t == ItemPackage || t == ItemPlan
}

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"package": true, "plan": true, "standard": true,
	"custom": true, "plan-service": true,
}

// SaleMode is the top-level proposal mode.
type SaleMode string

const (
	ModePuntual SaleMode = "puntual"
	ModeMensual SaleMode = "mensual"
)

// ValidSaleModes is the canonical set of accepted sale mode strings.
var ValidSaleModes = map[string]bool{
	"puntual": true, "mensual": true,
}

// ProposalStatus is the pipeline status of a saved proposal. Any string is
// accepted; the constants below are the values offered to operators.
type ProposalStatus string

const (
	StatusSaved       ProposalStatus = "Propuesta Guardada"
	StatusSent        ProposalStatus = "Enviada"
	StatusNegotiating ProposalStatus = "En Negociación"
	StatusWon         ProposalStatus = "Ganada"
	StatusLost        ProposalStatus = "Perdida"
)

// KnownStatuses lists the operator-facing statuses in pipeline order.
var KnownStatuses = []ProposalStatus{
	StatusSaved, StatusSent, StatusNegotiating, StatusWon, StatusLost,
}
