package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/repository"
	"github.com/google/uuid"
)

// NotEditing is the EditingIndex value when no edit session is open.
const NotEditing = -1

type proposalService struct {
	repo      repository.ProposalRepo
	proposals []*domain.Proposal
	editing   int
	now       func() time.Time
	observer  UseCaseObserver
}

func NewProposalService(repo repository.ProposalRepo, observers ...UseCaseObserver) ProposalService {
	return &proposalService{
		repo:     repo,
		editing:  NotEditing,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *proposalService) Load(ctx context.Context) error {
	list, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading proposals: %w", err)
	}
	s.proposals = list
	s.editing = NotEditing
	return nil
}

func (s *proposalService) List() []*domain.Proposal {
	out := make([]*domain.Proposal, len(s.proposals))
	for i, p := range s.proposals {
		out[i] = p.Clone()
	}
	return out
}

func (s *proposalService) Get(index int) (*domain.Proposal, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.proposals[index].Clone(), nil
}

func (s *proposalService) Save(ctx context.Context, p *domain.Proposal) (index int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"client": p.ClientName, "tiered": p.IsTiered()}
	defer func() {
		fields["index"] = index
		reportUseCase(ctx, s.observer, "save-proposal", startedAt, err, fields)
	}()

	stored := p.Clone()
	stored.DateUpdated = s.now()

	next := append([]*domain.Proposal(nil), s.proposals...)
	if s.editing != NotEditing && s.editing < len(next) {
		prev := next[s.editing]
		stored.ID = prev.ID
		stored.Status = prev.Status
		next[s.editing] = stored
		index = s.editing
		fields["overwrite"] = true
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		if stored.Status == "" {
			stored.Status = domain.StatusSaved
		}
		next = append(next, stored)
		index = len(next) - 1
	}

	if err = s.persist(ctx, next); err != nil {
		return NotEditing, err
	}
	s.editing = NotEditing
	return index, nil
}

func (s *proposalService) Edit(index int) (*domain.Proposal, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	s.editing = index
	return s.proposals[index].Clone(), nil
}

func (s *proposalService) Delete(ctx context.Context, index int) (cancelled bool, err error) {
	startedAt := time.Now()
	defer func() {
		reportUseCase(ctx, s.observer, "delete-proposal", startedAt, err, map[string]any{"index": index, "cancelled_edit": cancelled})
	}()

	if err = s.checkIndex(index); err != nil {
		return false, err
	}
	next := make([]*domain.Proposal, 0, len(s.proposals)-1)
	next = append(next, s.proposals[:index]...)
	next = append(next, s.proposals[index+1:]...)
	if err = s.persist(ctx, next); err != nil {
		return false, err
	}

	switch {
	case s.editing == index:
		s.editing = NotEditing
		cancelled = true
	case s.editing > index:
		s.editing--
	}
	return cancelled, nil
}

func (s *proposalService) SetStatus(ctx context.Context, index int, status domain.ProposalStatus) (err error) {
	startedAt := time.Now()
	defer func() {
		reportUseCase(ctx, s.observer, "set-status", startedAt, err, map[string]any{"index": index, "status": string(status)})
	}()

	if err = s.checkIndex(index); err != nil {
		return err
	}
	next := append([]*domain.Proposal(nil), s.proposals...)
	updated := next[index].Clone()
	updated.Status = status
	updated.DateUpdated = s.now()
	next[index] = updated
	return s.persist(ctx, next)
}

func (s *proposalService) EditingIndex() int {
	return s.editing
}

func (s *proposalService) CancelEdit() {
	s.editing = NotEditing
}

// persist writes next and adopts it only when the write succeeds.
func (s *proposalService) persist(ctx context.Context, next []*domain.Proposal) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving proposals: %w", err)
	}
	s.proposals = next
	return nil
}

func (s *proposalService) checkIndex(index int) error {
	if index < 0 || index >= len(s.proposals) {
		return fmt.Errorf("proposal %d: %w", index, repository.ErrNotFound)
	}
	return nil
}
