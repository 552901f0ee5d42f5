// Package intelligence turns a free-text client brief into catalog
// references using a chat model. Its output is advisory: nothing here
// touches the selection; callers apply suggestions through the normal
// selection events.
package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/llm"
	"github.com/go-playground/validator/v10"
)

// Suggestion sources.
const (
	SourceLLM           = "llm"
	SourceDeterministic = "deterministic"
)

// RecommendRequest is one turn of the assistant conversation.
type RecommendRequest struct {
	Mode    domain.SaleMode
	Brief   string
	History []domain.ChatMessage
}

// Suggestion is the assistant reply. When the model could not be used,
// Source is SourceDeterministic and Err holds the reason.
type Suggestion struct {
	domain.Recommendation
	Source string
	Err    error
}

// RecommendService suggests catalog items for a brief.
type RecommendService interface {
	Recommend(ctx context.Context, req RecommendRequest) *Suggestion
}

type recommendService struct {
	client     llm.LLMClient
	store      *catalog.Store
	maxHistory int
}

// NewRecommendService creates a RecommendService backed by an LLM client.
func NewRecommendService(client llm.LLMClient, store *catalog.Store, cfg llm.LLMConfig) RecommendService {
	return &recommendService{client: client, store: store, maxHistory: cfg.MaxHistory}
}

// recommendPayload is the JSON structure expected from the model.
type recommendPayload struct {
	Message string                `json:"message" validate:"required"`
	Items   []recommendPayloadRef `json:"items" validate:"dive"`
}

type recommendPayloadRef struct {
	ID     string `json:"id" validate:"required"`
	Type   string `json:"type" validate:"omitempty,oneof=package plan standard plan-service custom"`
	Reason string `json:"reason"`
}

var validate = validator.New()

func validateRecommendPayload(p recommendPayload) error {
	return validate.Struct(p)
}

func (s *recommendService) Recommend(ctx context.Context, req RecommendRequest) *Suggestion {
	mode := req.Mode
	if !domain.ValidSaleModes[string(mode)] {
		mode = domain.ModePuntual
	}

	rec, err := s.generate(ctx, mode, req)
	if err != nil {
		fallback := DeterministicRecommend(req.Brief, s.store, mode)
		fallback.Message = fallbackMessage(err) + "\n" + fallback.Message
		return &Suggestion{Recommendation: fallback, Source: SourceDeterministic, Err: err}
	}
	return &Suggestion{Recommendation: *rec, Source: SourceLLM}
}

func (s *recommendService) generate(ctx context.Context, mode domain.SaleMode, req RecommendRequest) (*domain.Recommendation, error) {
	if strings.TrimSpace(req.Brief) == "" {
		return nil, domain.Invalidf("empty brief")
	}

	messages := historyMessages(req.History, s.maxHistory)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Brief})

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskRecommend,
		SystemPrompt: buildRecommendSystemPrompt(s.store, mode),
		Messages:     messages,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm recommendation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[recommendPayload](resp.Text, validateRecommendPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to extract recommendation: %w", err)
	}

	rec := &domain.Recommendation{Message: parsed.Message}
	for _, ref := range parsed.Items {
		rec.Items = append(rec.Items, domain.RecommendedItem{
			ID:     strings.TrimSpace(ref.ID),
			Type:   domain.ItemType(ref.Type),
			Reason: ref.Reason,
		})
	}
	return rec, nil
}

// historyMessages converts the newest max entries of history to model
// messages. Entries with unknown roles are skipped.
func historyMessages(history []domain.ChatMessage, max int) []llm.Message {
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	out := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case llm.RoleUser, llm.RoleAssistant:
			out = append(out, llm.Message{Role: m.Role, Content: m.Content})
		}
	}
	return out
}

func fallbackMessage(err error) string {
	switch {
	case domain.IsValidation(err):
		return "Describe qué necesita el cliente."
	case errors.Is(err, llm.ErrDisabled):
		return "El asistente está desactivado."
	case errors.Is(err, llm.ErrTimeout):
		return "El asistente tardó demasiado en responder."
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrRetryExhausted):
		return "No se pudo contactar con el asistente."
	default:
		return "El asistente devolvió una respuesta no válida."
	}
}
