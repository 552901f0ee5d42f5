package repository

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRepo_PutGetReplace(t *testing.T) {
	repo := NewSQLiteCollectionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, "proposals")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put(ctx, "proposals", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "proposals", []byte(`[2]`)))

	got, err := repo.Get(ctx, "proposals")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestCollectionRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLiteCollectionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, ChatHistoryCollection(domain.ModeMensual), []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, CollectionLocalServices, []byte(`[]`)))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chat_history:mensual", "local_services"}, names)

	require.NoError(t, repo.Delete(ctx, CollectionLocalServices))
	assert.ErrorIs(t, repo.Delete(ctx, CollectionLocalServices), ErrNotFound)
}

func TestProposalRepo_EmptyWhenMissing(t *testing.T) {
	repo := NewBlobProposalRepo(testutil.NewTestDB(t), nil)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProposalRepo_StandardRoundTrip(t *testing.T) {
	repo := NewBlobProposalRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	plan := &domain.SelectedItem{ID: "plan-s", Name: "Plan S", Price: 100, Type: domain.ItemPlan}
	p := testutil.NewTestProposal("acme",
		testutil.WithStatus(domain.StatusNegotiating),
		testutil.WithBody(domain.StandardBody{
			Plan: plan,
			Services: []domain.SelectedItem{
				{ID: "seo", Name: "SEO", Price: 150, Type: domain.ItemPlanService, PointCost: 4},
				{ID: "custom-1", Name: "Extra", Price: 30, Type: domain.ItemCustom},
			},
			Ledger:      domain.LedgerState{TotalPlanPoints: 10, UsedPlanPoints: 4, ExtraPointsPurchased: 2, ExtraPointsCost: 10, PointPrice: 5},
			TotalDev:    110,
			TotalClient: 220,
		}),
	)
	p.Type = domain.ModeMensual
	p.IsUrgent = true

	require.NoError(t, repo.Save(ctx, []*domain.Proposal{p}))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, p.ID, got[0].ID)
	assert.Equal(t, domain.StatusNegotiating, got[0].Status)
	assert.True(t, got[0].IsUrgent)
	assert.True(t, p.DateUpdated.Equal(got[0].DateUpdated))
	assert.Equal(t, p.Body, got[0].Body)
}

func TestProposalRepo_TieredRoundTrip(t *testing.T) {
	repo := NewBlobProposalRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	tiers := []domain.Tier{
		{Name: "Básico", Services: []domain.TierService{{ID: "landing", Name: "Landing", Price: 300}}, TotalDev: 300},
		{Name: "Pro", Services: []domain.TierService{{ID: "shop", Name: "Tienda", Price: 800}}, TotalDev: 800},
	}
	p := testutil.NewTestProposal("tiered", testutil.WithBody(domain.TieredBody{Tiers: tiers}))

	require.NoError(t, repo.Save(ctx, []*domain.Proposal{p}))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].IsTiered())

	body, _ := got[0].Tiered()
	assert.Equal(t, tiers, body.Tiers)
}

func TestProposalRepo_LegacyRecordDefaults(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	coll := NewSQLiteCollectionRepo(database)
	require.NoError(t, coll.Put(ctx, CollectionProposals, []byte(
		`[{"clientName":"Viejo","webName":"viejo.com","margin":0.6,"totalDev":100,"totalClient":250,
		  "package":null,"plan":null,"services":[{"id":"blog","name":"Blog","price":100,"type":"standard"}],
		  "isTiered":false,"dateUpdated":"2024-03-01T10:00:00Z"}]`)))

	got, err := NewBlobProposalRepo(database, nil).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.StatusSaved, p.Status)
	assert.Equal(t, domain.ModePuntual, p.Type)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.DateUpdated)
	body, ok := p.Standard()
	require.True(t, ok)
	assert.Len(t, body.Services, 1)
}

func TestProposalRepo_MissingIDsAreStableAcrossLoads(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteCollectionRepo(database).Put(ctx, CollectionProposals, []byte(
		`[{"clientName":"Viejo","dateUpdated":"2024-03-01T10:00:00Z","services":[]},
		  {"clientName":"Viejo","dateUpdated":"2024-03-01T10:00:00Z","services":[]}]`)))
	repo := NewBlobProposalRepo(database, nil)

	first, err := repo.Load(ctx)
	require.NoError(t, err)
	second, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)

	require.NoError(t, repo.Save(ctx, first))
	third, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, third[0].ID)
}

func TestProposalRepo_CorruptBlobIsEmptyAndLogged(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteCollectionRepo(database).Put(ctx, CollectionProposals, []byte(`{not json`)))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	repo := NewBlobProposalRepo(database, logger)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "discarding corrupt collection")
	assert.Contains(t, buf.String(), "collection=proposals")

	// the next save replaces the corrupt payload
	require.NoError(t, repo.Save(ctx, []*domain.Proposal{testutil.NewTestProposal("nuevo")}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLocalServiceRepo_RoundTrip(t *testing.T) {
	repo := NewBlobLocalServiceRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	items := []domain.CatalogItem{{ID: "local-1", Name: "Fotografía", Price: 120, PointCost: 2}}
	require.NoError(t, repo.Save(ctx, items))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	require.NoError(t, repo.Save(ctx, nil))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChatHistoryRepo_SeparatedByMode(t *testing.T) {
	repo := NewBlobChatHistoryRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, domain.ModePuntual, []domain.ChatMessage{{Role: "user", Content: "hola", At: at}}))

	puntual, err := repo.Load(ctx, domain.ModePuntual)
	require.NoError(t, err)
	require.Len(t, puntual, 1)
	assert.Equal(t, "hola", puntual[0].Content)
	assert.True(t, at.Equal(puntual[0].At))

	mensual, err := repo.Load(ctx, domain.ModeMensual)
	require.NoError(t, err)
	assert.Empty(t, mensual)
}
