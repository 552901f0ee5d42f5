package testutil

import (
	"testing"
	"time"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/google/uuid"
)

// Catalog options
type CatalogOption func(categories map[string]domain.Category, plans *[]domain.Plan)

func WithCategory(key string, cat domain.Category) CatalogOption {
	return func(categories map[string]domain.Category, _ *[]domain.Plan) {
		categories[key] = cat
	}
}

func WithoutCategory(key string) CatalogOption {
	return func(categories map[string]domain.Category, _ *[]domain.Plan) {
		delete(categories, key)
	}
}

func WithPlan(p domain.Plan) CatalogOption {
	return func(_ map[string]domain.Category, plans *[]domain.Plan) {
		*plans = append(*plans, p)
	}
}

func WithoutPlans() CatalogOption {
	return func(_ map[string]domain.Category, plans *[]domain.Plan) {
		*plans = nil
	}
}

// NewTestCatalog returns a small catalog:
//
//	packs (exclusive): pkg-basic 900, pkg-pro 1500
//	web:               landing 300/3pt, blog 200/2pt, shop 800/6pt
//	growth:            seo 150/4pt, ads 250/5pt
//	plans:             plan-s 100/10pt, plan-m 400/20pt
func NewTestCatalog(opts ...CatalogOption) *domain.Catalog {
	categories := map[string]domain.Category{
		"packs": {Name: "Paquetes", IsExclusive: true, Items: []domain.CatalogItem{
			{ID: "pkg-basic", Name: "Paquete Básico", Price: 900},
			{ID: "pkg-pro", Name: "Paquete Pro", Price: 1500},
		}},
		"web": {Name: "Web", Items: []domain.CatalogItem{
			{ID: "landing", Name: "Landing page", Price: 300, PointCost: 3},
			{ID: "blog", Name: "Blog", Price: 200, PointCost: 2},
			{ID: "shop", Name: "Tienda online", Price: 800, PointCost: 6},
		}},
		"growth": {Name: "Crecimiento", Items: []domain.CatalogItem{
			{ID: "seo", Name: "SEO", Price: 150, PointCost: 4},
			{ID: "ads", Name: "Campañas", Price: 250, PointCost: 5},
		}},
	}
	plans := []domain.Plan{
		{ID: "plan-s", Name: "Plan S", Price: 100, Points: 10},
		{ID: "plan-m", Name: "Plan M", Price: 400, Points: 20},
	}
	for _, opt := range opts {
		opt(categories, &plans)
	}
	return domain.NewCatalog(categories, plans)
}

// NewTestStore wraps NewTestCatalog in a catalog.Store.
func NewTestStore(t *testing.T, opts ...CatalogOption) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore(NewTestCatalog(opts...))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return s
}

// Proposal options
type ProposalOption func(*domain.Proposal)

func WithStatus(s domain.ProposalStatus) ProposalOption {
	return func(p *domain.Proposal) {
		p.Status = s
	}
}

func WithBody(b domain.ProposalBody) ProposalOption {
	return func(p *domain.Proposal) {
		p.Body = b
	}
}

func WithMargin(m float64) ProposalOption {
	return func(p *domain.Proposal) {
		p.Margin = m
	}
}

// NewTestProposal returns a puntual proposal with one standard service.
func NewTestProposal(client string, opts ...ProposalOption) *domain.Proposal {
	p := &domain.Proposal{
		ID:          uuid.New().String(),
		ClientName:  client,
		WebName:     client + ".test",
		Margin:      0.5,
		Type:        domain.ModePuntual,
		Status:      domain.StatusSaved,
		DateUpdated: time.Now().UTC().Truncate(time.Second),
		Body: domain.StandardBody{
			Services: []domain.SelectedItem{
				{ID: "landing", Name: "Landing page", Price: 300, Type: domain.ItemStandard},
			},
			TotalDev:    300,
			TotalClient: 600,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
