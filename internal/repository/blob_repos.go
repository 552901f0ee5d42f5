package repository

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/cotizador/internal/db"
	"github.com/alexanderramin/cotizador/internal/domain"
)

// BlobProposalRepo stores every proposal in the proposals collection.
type BlobProposalRepo struct {
	coll   CollectionRepo
	logger *slog.Logger
}

// NewBlobProposalRepo creates a proposal repo. logger may be nil.
func NewBlobProposalRepo(conn db.DBTX, logger *slog.Logger) *BlobProposalRepo {
	return &BlobProposalRepo{coll: NewSQLiteCollectionRepo(conn), logger: logger}
}

func (r *BlobProposalRepo) Load(ctx context.Context) ([]*domain.Proposal, error) {
	recs, err := loadList[proposalRecord](ctx, r.coll, CollectionProposals, r.logger)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Proposal, 0, len(recs))
	for i, rec := range recs {
		out = append(out, decodeProposal(i, rec))
	}
	return out, nil
}

func (r *BlobProposalRepo) Save(ctx context.Context, proposals []*domain.Proposal) error {
	recs := make([]proposalRecord, 0, len(proposals))
	for _, p := range proposals {
		recs = append(recs, encodeProposal(p))
	}
	return saveList(ctx, r.coll, CollectionProposals, recs)
}

// BlobLocalServiceRepo stores local services in the local_services collection.
type BlobLocalServiceRepo struct {
	coll   CollectionRepo
	logger *slog.Logger
}

func NewBlobLocalServiceRepo(conn db.DBTX, logger *slog.Logger) *BlobLocalServiceRepo {
	return &BlobLocalServiceRepo{coll: NewSQLiteCollectionRepo(conn), logger: logger}
}

func (r *BlobLocalServiceRepo) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	return loadList[domain.CatalogItem](ctx, r.coll, CollectionLocalServices, r.logger)
}

func (r *BlobLocalServiceRepo) Save(ctx context.Context, items []domain.CatalogItem) error {
	return saveList(ctx, r.coll, CollectionLocalServices, items)
}

// BlobChatHistoryRepo stores one chat history collection per sale mode.
type BlobChatHistoryRepo struct {
	coll   CollectionRepo
	logger *slog.Logger
}

func NewBlobChatHistoryRepo(conn db.DBTX, logger *slog.Logger) *BlobChatHistoryRepo {
	return &BlobChatHistoryRepo{coll: NewSQLiteCollectionRepo(conn), logger: logger}
}

func (r *BlobChatHistoryRepo) Load(ctx context.Context, mode domain.SaleMode) ([]domain.ChatMessage, error) {
	return loadList[domain.ChatMessage](ctx, r.coll, ChatHistoryCollection(mode), r.logger)
}

func (r *BlobChatHistoryRepo) Save(ctx context.Context, mode domain.SaleMode, messages []domain.ChatMessage) error {
	return saveList(ctx, r.coll, ChatHistoryCollection(mode), messages)
}

var (
	_ CollectionRepo   = (*SQLiteCollectionRepo)(nil)
	_ ProposalRepo     = (*BlobProposalRepo)(nil)
	_ LocalServiceRepo = (*BlobLocalServiceRepo)(nil)
	_ ChatHistoryRepo  = (*BlobChatHistoryRepo)(nil)
)
