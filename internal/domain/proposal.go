package domain

import "time"

// Proposal is a saved sales proposal. The header fields are common to every
// proposal; Body carries either a StandardBody or a TieredBody.
type Proposal struct {
	ID          string
	ClientName  string
	WebName     string
	Margin      float64
	Type        SaleMode
	IsUrgent    bool
	Status      ProposalStatus
	DateUpdated time.Time
	Body        ProposalBody
}

// ProposalBody is the sum type of proposal shapes.
type ProposalBody interface {
	proposalBody()
}

// StandardBody is a single flat selection: a package, a plan with its
// plan-services and ledger, or free-standing standard/custom items.
type StandardBody struct {
	Package     *SelectedItem
	Plan        *SelectedItem
	Services    []SelectedItem
	Ledger      LedgerState
	TotalDev    float64
	TotalClient float64
}

// TieredBody holds independent priced tiers instead of one selection.
type TieredBody struct {
	Tiers []Tier
}

func (StandardBody) proposalBody() {}
func (TieredBody) proposalBody()   {}

// TierService is a priced service inside a tier.
type TierService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Tier is one of the independent options of a tiered proposal.
type Tier struct {
	Name     string        `json:"name"`
	Services []TierService `json:"services"`
	TotalDev float64       `json:"totalDev"`
}

// IsTiered reports whether the proposal carries tiers.
func (p *Proposal) IsTiered() bool {
	_, ok := p.Body.(TieredBody)
	return ok
}

// Standard returns the standard body, or false for tiered proposals.
func (p *Proposal) Standard() (StandardBody, bool) {
	b, ok := p.Body.(StandardBody)
	return b, ok
}

// Tiered returns the tiered body, or false for standard proposals.
func (p *Proposal) Tiered() (TieredBody, bool) {
	b, ok := p.Body.(TieredBody)
	return b, ok
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p *Proposal) Clone() *Proposal {
	out := *p
	switch b := p.Body.(type) {
	case StandardBody:
		nb := b
		if b.Package != nil {
			pkg := *b.Package
			nb.Package = &pkg
		}
		if b.Plan != nil {
			plan := *b.Plan
			nb.Plan = &plan
		}
		nb.Services = append([]SelectedItem(nil), b.Services...)
		out.Body = nb
	case TieredBody:
		tiers := make([]Tier, len(b.Tiers))
		for i, t := range b.Tiers {
			tiers[i] = t
			tiers[i].Services = append([]TierService(nil), t.Services...)
		}
		out.Body = TieredBody{Tiers: tiers}
	}
	return &out
}

// ChatMessage is one entry of an assistant conversation history.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}
