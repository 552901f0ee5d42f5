package service

import (
	"context"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// ProposalService owns the saved proposal list and the edit session. Every
// mutation persists the whole list.
type ProposalService interface {
	Load(ctx context.Context) error
	List() []*domain.Proposal
	Get(index int) (*domain.Proposal, error)
	// Save overwrites the proposal being edited, keeping its stored status,
	// or appends a new one. It returns the stored index.
	Save(ctx context.Context, p *domain.Proposal) (int, error)
	// Edit opens an edit session on index and returns a copy of the proposal.
	Edit(index int) (*domain.Proposal, error)
	// Delete removes index. It reports whether the deleted proposal was the
	// one being edited, in which case the edit session is cancelled.
	Delete(ctx context.Context, index int) (bool, error)
	SetStatus(ctx context.Context, index int, status domain.ProposalStatus) error
	EditingIndex() int
	CancelEdit()
}

// DataService moves every stored collection in and out as one bundle.
type DataService interface {
	Export(ctx context.Context) (*Bundle, error)
	Import(ctx context.Context, b *Bundle) (*ImportResult, error)
}

// ImportResult summarizes a data import.
type ImportResult struct {
	Collections int
	Proposals   int
}
