package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/repository"
	"github.com/alexanderramin/cotizador/internal/testutil"
	"github.com/stretchr/testify/require"
)

type workspaceFixture struct {
	db        *sql.DB
	ws        *Workspace
	proposals ProposalService
	repo      *repository.BlobProposalRepo
}

func newWorkspace(t *testing.T, mode domain.SaleMode) *workspaceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewBlobProposalRepo(database, nil)
	proposals := NewProposalService(repo)
	ws, err := NewWorkspace(
		testutil.NewTestStore(t),
		proposals,
		repository.NewBlobLocalServiceRepo(database, nil),
		repository.NewBlobChatHistoryRepo(database, nil),
		WorkspaceConfig{PointPrice: 5, DefaultMargin: 0.5, Mode: mode},
	)
	require.NoError(t, err)
	require.NoError(t, ws.Open(context.Background()))
	return &workspaceFixture{db: database, ws: ws, proposals: proposals, repo: repo}
}

// failingProposalRepo fails every Save after the first ok saves.
type failingProposalRepo struct {
	inner repository.ProposalRepo
	ok    int
}

var errDiskFull = errors.New("disk full")

func (r *failingProposalRepo) Load(ctx context.Context) ([]*domain.Proposal, error) {
	return r.inner.Load(ctx)
}

func (r *failingProposalRepo) Save(ctx context.Context, proposals []*domain.Proposal) error {
	if r.ok <= 0 {
		return errDiskFull
	}
	r.ok--
	return r.inner.Save(ctx, proposals)
}

// recordingObserver keeps every observed event.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
