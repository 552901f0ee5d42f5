package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ServiceInput is the user input for a local or custom service.
type ServiceInput struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gt=0"`
	PointCost   int     `validate:"gte=0"`
	Description string
}

// Validate checks the input and reports failures as validation errors.
func (in ServiceInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", strings.ToLower(fe.Field()), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s cannot be negative", strings.ToLower(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return domain.Invalidf("%s", strings.Join(msgs, "; "))
}

// Store holds the immutable base catalog plus the user-defined local
// services (persisted across sessions) and custom services (per draft).
type Store struct {
	base   *domain.Catalog
	view   *domain.Catalog
	local  []domain.CatalogItem
	custom []domain.SelectedItem
}

// NewStore wraps a loaded catalog. A nil catalog is an unrecoverable
// precondition failure.
func NewStore(c *domain.Catalog) (*Store, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: catalog not loaded", ErrUnavailable)
	}
	s := &Store{base: c}
	s.rebuild()
	return s, nil
}

// Catalog returns the base catalog merged with local services.
func (s *Store) Catalog() *domain.Catalog {
	return s.view
}

// Local returns the local services.
func (s *Store) Local() []domain.CatalogItem {
	return append([]domain.CatalogItem(nil), s.local...)
}

// SetLocal replaces the local services, typically from storage.
func (s *Store) SetLocal(items []domain.CatalogItem) {
	s.local = append([]domain.CatalogItem(nil), items...)
	s.rebuild()
}

// AddLocal validates and appends a local service.
func (s *Store) AddLocal(in ServiceInput) (domain.CatalogItem, error) {
	if err := in.Validate(); err != nil {
		return domain.CatalogItem{}, err
	}
	item := domain.CatalogItem{
		ID:          "local-" + uuid.New().String()[:8],
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		PointCost:   in.PointCost,
		Description: in.Description,
	}
	s.local = append(s.local, item)
	s.rebuild()
	return item, nil
}

// RemoveLocal deletes a local service. It reports whether one was removed.
func (s *Store) RemoveLocal(id string) bool {
	for i, it := range s.local {
		if it.ID == id {
			s.local = append(s.local[:i], s.local[i+1:]...)
			s.rebuild()
			return true
		}
	}
	return false
}

// Custom returns the custom services of the current draft.
func (s *Store) Custom() []domain.SelectedItem {
	return append([]domain.SelectedItem(nil), s.custom...)
}

// AddCustom validates and appends a custom service.
func (s *Store) AddCustom(in ServiceInput) (domain.SelectedItem, error) {
	if err := in.Validate(); err != nil {
		return domain.SelectedItem{}, err
	}
	item := domain.SelectedItem{
		ID:    "custom-" + uuid.New().String()[:8],
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
		Type:  domain.ItemCustom,
	}
	s.custom = append(s.custom, item)
	return item, nil
}

// RestoreCustom appends previously saved custom services as they were.
func (s *Store) RestoreCustom(items []domain.SelectedItem) {
	for _, it := range items {
		it.Type = domain.ItemCustom
		s.custom = append(s.custom, it)
	}
}

// RemoveCustom deletes a custom service. It reports whether one was removed.
func (s *Store) RemoveCustom(id string) bool {
	for i, it := range s.custom {
		if it.ID == id {
			s.custom = append(s.custom[:i], s.custom[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCustom drops every custom service.
func (s *Store) ClearCustom() {
	s.custom = nil
}

// Resolve translates a catalog id and type into a concrete selectable item.
// It returns nil when nothing matches; callers must surface that as "not
// found" rather than invent an entry.
func (s *Store) Resolve(id string, t domain.ItemType) *domain.SelectedItem {
	var out domain.SelectedItem
	switch t {
	case domain.ItemPackage:
		item := s.view.FindPackage(id)
		if item == nil {
			return nil
		}
		out = domain.SelectedFromItem(*item, t)
	case domain.ItemPlan:
		plan := s.view.FindPlan(id)
		if plan == nil {
			return nil
		}
		out = domain.SelectedFromPlan(*plan)
	case domain.ItemStandard, domain.ItemPlanService:
		item := s.view.FindStandard(id)
		if item == nil {
			return nil
		}
		out = domain.SelectedFromItem(*item, t)
	case domain.ItemCustom:
		for _, it := range s.custom {
			if it.ID == id {
				out = it
				return &out
			}
		}
		return nil
	default:
		return nil
	}
	return &out
}

// ResolveOrPlaceholder resolves id or falls back to a zero-priced
// placeholder naming the missing id.
func (s *Store) ResolveOrPlaceholder(id string, t domain.ItemType) domain.SelectedItem {
	if it := s.Resolve(id, t); it != nil {
		return *it
	}
	return domain.PlaceholderItem(id, t)
}

func (s *Store) rebuild() {
	s.view = s.base.WithLocal(s.local)
}
