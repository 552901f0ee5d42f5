package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cotizador/internal/db"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/repository"
)

// BundleVersion is the current export format version.
const BundleVersion = 1

// Bundle is a portable copy of every stored collection.
type Bundle struct {
	Version     int                        `json:"version"`
	ExportedAt  time.Time                  `json:"exportedAt"`
	Collections map[string]json.RawMessage `json:"collections"`
}

type dataService struct {
	collections repository.CollectionRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewDataService(collections repository.CollectionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DataService {
	return &dataService{
		collections: collections,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *dataService) Export(ctx context.Context) (*Bundle, error) {
	names, err := s.collections.List(ctx)
	if err != nil {
		return nil, err
	}
	b := &Bundle{
		Version:     BundleVersion,
		ExportedAt:  time.Now().UTC(),
		Collections: make(map[string]json.RawMessage, len(names)),
	}
	for _, name := range names {
		payload, err := s.collections.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		b.Collections[name] = json.RawMessage(payload)
	}
	return b, nil
}

// Import replaces every stored collection with the bundle contents in one
// transaction. Collections absent from the bundle are removed.
func (s *dataService) Import(ctx context.Context, b *Bundle) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		reportUseCase(ctx, s.observer, "import-data", startedAt, err, fields)
	}()

	if err = validateBundle(b); err != nil {
		return nil, err
	}
	fields["collections"] = len(b.Collections)

	result = &ImportResult{Collections: len(b.Collections)}
	if raw, ok := b.Collections[repository.CollectionProposals]; ok {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			result.Proposals = len(list)
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColl := repository.NewSQLiteCollectionRepo(tx)
		existing, err := txColl.List(ctx)
		if err != nil {
			return err
		}
		for _, name := range existing {
			if _, keep := b.Collections[name]; keep {
				continue
			}
			if err := txColl.Delete(ctx, name); err != nil {
				return err
			}
		}
		for name, payload := range b.Collections {
			if err := txColl.Put(ctx, name, payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing data: %w", err)
	}
	return result, nil
}

func validateBundle(b *Bundle) error {
	if b == nil {
		return domain.Invalidf("empty bundle")
	}
	if b.Version != BundleVersion {
		return domain.Invalidf("unsupported bundle version %d", b.Version)
	}
	for name, payload := range b.Collections {
		if !knownCollection(name) {
			return domain.Invalidf("unknown collection %q", name)
		}
		var list []json.RawMessage
		if err := json.Unmarshal(payload, &list); err != nil {
			return domain.Invalidf("collection %q is not a JSON array", name)
		}
	}
	return nil
}

func knownCollection(name string) bool {
	switch name {
	case repository.CollectionProposals, repository.CollectionLocalServices:
		return true
	}
	mode, ok := strings.CutPrefix(name, repository.ChatHistoryCollection(""))
	return ok && domain.ValidSaleModes[mode]
}
