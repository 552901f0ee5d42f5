package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/google/uuid"
)

// proposalRecord is the stored shape of a proposal. The isTiered flag
// selects which body fields are meaningful.
type proposalRecord struct {
	ID          string                `json:"id"`
	ClientName  string                `json:"clientName"`
	WebName     string                `json:"webName"`
	Margin      float64               `json:"margin"`
	Type        domain.SaleMode       `json:"type"`
	IsTiered    bool                  `json:"isTiered"`
	IsUrgent    bool                  `json:"isUrgent"`
	Status      domain.ProposalStatus `json:"status"`
	DateUpdated string                `json:"dateUpdated"`

	TotalDev    float64               `json:"totalDev"`
	TotalClient float64               `json:"totalClient"`
	Package     *domain.SelectedItem  `json:"package"`
	Plan        *domain.SelectedItem  `json:"plan"`
	Services    []domain.SelectedItem `json:"services,omitempty"`
	PointsState *domain.LedgerState   `json:"pointsState,omitempty"`

	Tiers []domain.Tier `json:"tiers,omitempty"`
}

func encodeProposal(p *domain.Proposal) proposalRecord {
	rec := proposalRecord{
		ID:          p.ID,
		ClientName:  p.ClientName,
		WebName:     p.WebName,
		Margin:      p.Margin,
		Type:        p.Type,
		IsUrgent:    p.IsUrgent,
		Status:      p.Status,
		DateUpdated: formatTime(p.DateUpdated),
	}
	switch b := p.Body.(type) {
	case domain.TieredBody:
		rec.IsTiered = true
		rec.Tiers = b.Tiers
	case domain.StandardBody:
		rec.TotalDev = b.TotalDev
		rec.TotalClient = b.TotalClient
		rec.Package = b.Package
		rec.Plan = b.Plan
		rec.Services = b.Services
		if b.Plan != nil {
			ledger := b.Ledger
			rec.PointsState = &ledger
		}
	}
	return rec
}

// legacyProposalID derives an id for a stored record that has none. The
// id only depends on the record and its position, so repeated loads agree
// until the next save writes it out.
func legacyProposalID(index int, rec proposalRecord) string {
	name := fmt.Sprintf("proposal:%d:%s:%s:%s", index, rec.ClientName, rec.WebName, rec.DateUpdated)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func decodeProposal(index int, rec proposalRecord) *domain.Proposal {
	p := &domain.Proposal{
		ID:          rec.ID,
		ClientName:  rec.ClientName,
		WebName:     rec.WebName,
		Margin:      rec.Margin,
		Type:        rec.Type,
		IsUrgent:    rec.IsUrgent,
		Status:      rec.Status,
		DateUpdated: parseTime(rec.DateUpdated),
	}
	if p.ID == "" {
		p.ID = legacyProposalID(index, rec)
	}
	if p.Status == "" {
		p.Status = domain.StatusSaved
	}
	if !domain.ValidSaleModes[string(p.Type)] {
		p.Type = domain.ModePuntual
	}

	if rec.IsTiered {
		p.Body = domain.TieredBody{Tiers: rec.Tiers}
		return p
	}
	body := domain.StandardBody{
		Package:     rec.Package,
		Plan:        rec.Plan,
		Services:    rec.Services,
		TotalDev:    rec.TotalDev,
		TotalClient: rec.TotalClient,
	}
	if rec.PointsState != nil {
		body.Ledger = *rec.PointsState
	}
	p.Body = body
	return p
}

// loadList reads a JSON array collection. A missing collection is empty; a
// corrupt one is logged and treated as empty so the next write replaces it.
func loadList[T any](ctx context.Context, coll CollectionRepo, name string, logger *slog.Logger) ([]T, error) {
	payload, err := coll.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		if logger != nil {
			logger.Warn("discarding corrupt collection", "collection", name, "error", err)
		}
		return nil, nil
	}
	return out, nil
}

func saveList[T any](ctx context.Context, coll CollectionRepo, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", name, err)
	}
	return coll.Put(ctx, name, payload)
}
