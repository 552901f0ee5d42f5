package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/cotizador/internal/domain"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// Collection names in the collections table.
const (
	CollectionProposals     = "proposals"
	CollectionLocalServices = "local_services"
	chatHistoryPrefix       = "chat_history:"
)

// ChatHistoryCollection returns the collection name of a mode's chat history.
func ChatHistoryCollection(mode domain.SaleMode) string {
	return chatHistoryPrefix + string(mode)
}

// CollectionRepo stores named JSON documents. Put replaces the whole
// document.
type CollectionRepo interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, payload []byte) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// ProposalRepo persists the ordered proposal list as a whole.
type ProposalRepo interface {
	Load(ctx context.Context) ([]*domain.Proposal, error)
	Save(ctx context.Context, proposals []*domain.Proposal) error
}

// LocalServiceRepo persists user-added catalog services.
type LocalServiceRepo interface {
	Load(ctx context.Context) ([]domain.CatalogItem, error)
	Save(ctx context.Context, items []domain.CatalogItem) error
}

// ChatHistoryRepo persists the assistant conversation of each sale mode.
type ChatHistoryRepo interface {
	Load(ctx context.Context, mode domain.SaleMode) ([]domain.ChatMessage, error)
	Save(ctx context.Context, mode domain.SaleMode, messages []domain.ChatMessage) error
}
