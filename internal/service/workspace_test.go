package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/ledger"
	"github.com/alexanderramin/cotizador/internal/repository"
	"github.com/alexanderramin/cotizador/internal/selection"
	"github.com/alexanderramin/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_RejectsNegativeDefaults(t *testing.T) {
	store := testutil.NewTestStore(t)
	_, err := NewWorkspace(store, nil, nil, nil, WorkspaceConfig{PointPrice: -1})
	assert.True(t, domain.IsValidation(err))
	_, err = NewWorkspace(store, nil, nil, nil, WorkspaceConfig{DefaultMargin: -0.1})
	assert.True(t, domain.IsValidation(err))
}

func TestWorkspace_TotalsFollowMargin(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	require.NoError(t, f.ws.ApplyAll(
		selection.ToggleStandard{ID: "landing", Checked: true},
		selection.ToggleStandard{ID: "blog", Checked: true},
	))

	totals := f.ws.Totals()
	assert.Equal(t, 500.0, totals.TotalDev)
	assert.Equal(t, 1000.0, totals.TotalClient)

	require.NoError(t, f.ws.SetMargin(1.5))
	assert.Equal(t, 1250.0, f.ws.Totals().TotalClient)
	assert.True(t, domain.IsValidation(f.ws.SetMargin(-1)))
}

func TestWorkspace_SaveEmptySelectionRejected(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	f.ws.SetClient("Acme", "acme.com")

	_, _, err := f.ws.SaveProposal(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, f.proposals.List())

	stored, err := f.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestWorkspace_SaveBuildsStandardProposalAndResets(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	f.ws.SetClient(" Acme ", "acme.com")
	f.ws.SetUrgent(true)
	require.NoError(t, f.ws.ApplyAll(
		selection.ToggleStandard{ID: "seo", Checked: true},
		selection.AddCustom{Name: "Hosting", Price: 50},
	))

	idx, saved, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Acme", saved.ClientName)
	assert.True(t, saved.IsUrgent)
	assert.Equal(t, domain.StatusSaved, saved.Status)

	body, ok := saved.Standard()
	require.True(t, ok)
	assert.Nil(t, body.Package)
	assert.Nil(t, body.Plan)
	require.Len(t, body.Services, 2)
	assert.Equal(t, 200.0, body.TotalDev)
	assert.Equal(t, 400.0, body.TotalClient)

	assert.False(t, f.ws.Draft().HasSelection())
	assert.Equal(t, DraftMeta{Margin: 0.5}, f.ws.Meta())
}

func TestWorkspace_SavePlanStoresLedger(t *testing.T) {
	f := newWorkspace(t, domain.ModeMensual)
	require.NoError(t, f.ws.ApplyAll(
		selection.SelectPlan{ID: "plan-s"},
		selection.TogglePlanService{ID: "shop", Checked: true},
		selection.PurchaseExtraPoints{Amount: 2},
	))

	_, saved, err := f.ws.SaveProposal(context.Background())
	require.NoError(t, err)
	body, _ := saved.Standard()
	require.NotNil(t, body.Plan)
	assert.Equal(t, 6, body.Ledger.UsedPlanPoints)
	assert.Equal(t, 2, body.Ledger.ExtraPointsPurchased)
	assert.Equal(t, 110.0, body.TotalDev)
	assert.Equal(t, domain.ModeMensual, saved.Type)
}

func TestWorkspace_EditRoundTripDropsMissingPlanServices(t *testing.T) {
	f := newWorkspace(t, domain.ModeMensual)
	ctx := context.Background()

	stored := testutil.NewTestProposal("acme", testutil.WithStatus(domain.StatusNegotiating), testutil.WithBody(domain.StandardBody{
		Plan: &domain.SelectedItem{ID: "plan-s", Name: "Plan S", Price: 100, Type: domain.ItemPlan},
		Services: []domain.SelectedItem{
			{ID: "seo", Name: "SEO", Price: 150, Type: domain.ItemPlanService, PointCost: 4},
			{ID: "retired", Name: "Retirado", Price: 10, Type: domain.ItemPlanService, PointCost: 1},
			{ID: "custom-1", Name: "Extra", Price: 40, Type: domain.ItemCustom},
		},
		Ledger:   domain.LedgerState{TotalPlanPoints: 10, UsedPlanPoints: 5, ExtraPointsPurchased: 3, ExtraPointsCost: 12, PointPrice: 4},
		TotalDev: 112,
	}))
	stored.Type = domain.ModeMensual
	require.NoError(t, f.repo.Save(ctx, []*domain.Proposal{stored}))
	require.NoError(t, f.proposals.Load(ctx))

	ready, err := f.ws.EditProposal(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, ready.Index)
	assert.Equal(t, []string{"retired"}, ready.Report.Dropped)
	assert.Equal(t, 0, f.proposals.EditingIndex())

	st := f.ws.Ledger().State()
	assert.Equal(t, 4, st.UsedPlanPoints)
	assert.Equal(t, 3, st.ExtraPointsPurchased)
	assert.Equal(t, 12.0, st.ExtraPointsCost)
	assert.Equal(t, "acme", f.ws.Meta().ClientName)

	sel := f.ws.Selection()
	require.Len(t, sel, 3)
	assert.Equal(t, "plan-s", sel[0].ID)
	assert.Equal(t, "seo", sel[1].ID)
	assert.Equal(t, "custom-1", sel[2].ID)

	_, saved, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNegotiating, saved.Status)
	assert.Equal(t, stored.ID, saved.ID)
	body, _ := saved.Standard()
	assert.Len(t, body.Services, 2)
	assert.Equal(t, 112.0, body.TotalDev)
	assert.Len(t, f.proposals.List(), 1)
}

func TestWorkspace_EditStandardWithPlaceholder(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	stored := testutil.NewTestProposal("acme", testutil.WithBody(domain.StandardBody{
		Services: []domain.SelectedItem{
			{ID: "blog", Name: "Blog", Price: 200, Type: domain.ItemStandard},
			{ID: "old-service", Name: "Viejo", Price: 75, Type: domain.ItemStandard},
		},
	}))
	require.NoError(t, f.repo.Save(ctx, []*domain.Proposal{stored}))
	require.NoError(t, f.proposals.Load(ctx))

	ready, err := f.ws.EditProposal(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"old-service"}, ready.Report.Placeholders)
	assert.Equal(t, 200.0, f.ws.Totals().TotalDev)
}

func TestWorkspace_EditTieredRestoresTiers(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	require.NoError(t, f.ws.AddTier("Básico", []string{"landing"}))
	require.NoError(t, f.ws.AddTier("Pro", []string{"landing", "shop"}))

	_, saved, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)
	require.True(t, saved.IsTiered())
	assert.Empty(t, f.ws.Tiers())

	_, err = f.ws.EditProposal(ctx, 0)
	require.NoError(t, err)
	tiers := f.ws.Tiers()
	require.Len(t, tiers, 2)
	assert.Equal(t, 1100.0, tiers[1].TotalDev)
	totals := f.ws.TierTotals()
	assert.Equal(t, 2200.0, totals[1].TotalClient)
}

func TestWorkspace_AddTierValidates(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	assert.Error(t, f.ws.AddTier("", []string{"landing"}))
	assert.Error(t, f.ws.AddTier("Vacío", nil))
	assert.Error(t, f.ws.AddTier("Roto", []string{"nope"}))
	assert.Error(t, f.ws.RemoveTier(0))
	assert.Empty(t, f.ws.Tiers())
}

func TestWorkspace_AddTierRejectsExclusive(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)

	for _, ids := range [][]string{
		{"pkg-pro", "landing"},
		{"plan-m", "landing"},
		{"pkg-pro", "plan-m", "landing"},
	} {
		err := f.ws.AddTier("Básico", ids)
		require.Error(t, err, "ids %v", ids)
		assert.True(t, domain.IsValidation(err))
	}
	assert.Empty(t, f.ws.Tiers())

	_, err := f.ws.AddLocalService(context.Background(), catalog.ServiceInput{Name: "Soporte", Price: 80})
	require.NoError(t, err)
	require.NoError(t, f.ws.Apply(selection.AddCustom{Name: "Fotos", Price: 40}))
	local := f.ws.Store().Local()[0]
	custom := f.ws.Store().Custom()[0]

	require.NoError(t, f.ws.AddTier("Completo", []string{"landing", local.ID, custom.ID}))
	tiers := f.ws.Tiers()
	require.Len(t, tiers, 1)
	assert.InDelta(t, 420.0, tiers[0].TotalDev, 1e-9)
}

func TestWorkspace_DeleteEditingResetsDraft(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	require.NoError(t, f.ws.Apply(selection.ToggleStandard{ID: "blog", Checked: true}))
	_, _, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)

	_, err = f.ws.EditProposal(ctx, 0)
	require.NoError(t, err)
	require.True(t, f.ws.Draft().HasSelection())

	require.NoError(t, f.ws.DeleteProposal(ctx, 0))
	assert.False(t, f.ws.Draft().HasSelection())
	assert.Equal(t, NotEditing, f.proposals.EditingIndex())
}

func TestWorkspace_CancelClosesEditSession(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	require.NoError(t, f.ws.Apply(selection.ToggleStandard{ID: "blog", Checked: true}))
	_, _, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)
	_, err = f.ws.EditProposal(ctx, 0)
	require.NoError(t, err)

	f.ws.Cancel()
	assert.Equal(t, NotEditing, f.proposals.EditingIndex())
	assert.False(t, f.ws.Draft().HasSelection())

	require.NoError(t, f.ws.Apply(selection.ToggleStandard{ID: "seo", Checked: true}))
	idx, _, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestWorkspace_SetStatusStoresAnyString(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	require.NoError(t, f.ws.Apply(selection.ToggleStandard{ID: "blog", Checked: true}))
	_, _, err := f.ws.SaveProposal(ctx)
	require.NoError(t, err)

	for _, status := range []domain.ProposalStatus{" Pendiente de firma ", domain.StatusSent} {
		require.NoError(t, f.ws.SetStatus(ctx, 0, status))
		p, err := f.proposals.Get(0)
		require.NoError(t, err)
		assert.Equal(t, status, p.Status)
	}
}

func TestWorkspace_LocalServicesPersist(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()

	item, err := f.ws.AddLocalService(ctx, catalog.ServiceInput{Name: "Fotografía", Price: 120})
	require.NoError(t, err)
	require.NoError(t, f.ws.Apply(selection.ToggleStandard{ID: item.ID, Checked: true}))
	assert.Equal(t, 120.0, f.ws.Totals().TotalDev)

	stored, err := repository.NewBlobLocalServiceRepo(f.db, nil).Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, item.ID, stored[0].ID)

	_, err = f.ws.AddLocalService(ctx, catalog.ServiceInput{Name: "Gratis", Price: 0})
	assert.True(t, domain.IsValidation(err))

	require.NoError(t, f.ws.RemoveLocalService(ctx, item.ID))
	assert.True(t, IsNotFound(f.ws.RemoveLocalService(ctx, item.ID)))
	stored, err = repository.NewBlobLocalServiceRepo(f.db, nil).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestWorkspace_OpenLoadsLocalServices(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	locals := repository.NewBlobLocalServiceRepo(database, nil)
	require.NoError(t, locals.Save(ctx, []domain.CatalogItem{{ID: "local-1", Name: "Video", Price: 90}}))

	store := testutil.NewTestStore(t)
	ws, err := NewWorkspace(store, NewProposalService(repository.NewBlobProposalRepo(database, nil)),
		locals, repository.NewBlobChatHistoryRepo(database, nil), WorkspaceConfig{})
	require.NoError(t, err)
	require.NoError(t, ws.Open(ctx))

	assert.NotNil(t, store.Resolve("local-1", domain.ItemStandard))
}

func TestWorkspace_ModeSwitchResetsLedgerAndCustom(t *testing.T) {
	f := newWorkspace(t, domain.ModeMensual)
	require.NoError(t, f.ws.ApplyAll(
		selection.SelectPlan{ID: "plan-m"},
		selection.TogglePlanService{ID: "ads", Checked: true},
		selection.PurchaseExtraPoints{Amount: 4},
		selection.AddCustom{Name: "Soporte", Price: 60},
		selection.SwitchMode{Mode: domain.ModePuntual},
	))

	assert.Equal(t, domain.ModePuntual, f.ws.Mode())
	assert.Empty(t, f.ws.Selection())
	assert.Zero(t, f.ws.Ledger().State().ExtraPointsPurchased)
	assert.Zero(t, f.ws.Totals().TotalDev)
}

func TestWorkspace_ApplyRecommendation(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)

	res := f.ws.ApplyRecommendation(&domain.Recommendation{Items: []domain.RecommendedItem{
		{ID: "landing", Type: domain.ItemStandard},
		{ID: "ghost", Type: domain.ItemStandard},
		{ID: "seo"},
		{ID: "plan-s", Type: domain.ItemPlan},
	}})

	assert.Equal(t, []string{"landing", "seo"}, res.Applied)
	assert.Equal(t, []string{"ghost"}, res.NotFound)
	require.Contains(t, res.Rejected, "plan-s")
	assert.True(t, domain.IsValidation(res.Rejected["plan-s"]))
	assert.Len(t, f.ws.Selection(), 2)
}

func TestWorkspace_ApplyRecommendationUnderPlan(t *testing.T) {
	f := newWorkspace(t, domain.ModeMensual)

	res := f.ws.ApplyRecommendation(&domain.Recommendation{Items: []domain.RecommendedItem{
		{ID: "plan-s", Type: domain.ItemPlan},
		{ID: "shop", Type: domain.ItemStandard},
		{ID: "ads", Type: domain.ItemStandard},
	}})

	assert.Equal(t, []string{"plan-s", "shop"}, res.Applied)
	require.Contains(t, res.Rejected, "ads")
	assert.ErrorIs(t, res.Rejected["ads"], ledger.ErrInsufficientPoints)
}

func TestWorkspace_ChatHistoryPerMode(t *testing.T) {
	f := newWorkspace(t, domain.ModePuntual)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, f.ws.AppendChat(ctx, domain.ModePuntual,
		domain.ChatMessage{Role: "user", Content: "quiero una web", At: at},
		domain.ChatMessage{Role: "assistant", Content: "te sugiero landing", At: at},
	))
	require.NoError(t, f.ws.AppendChat(ctx, domain.ModeMensual, domain.ChatMessage{Role: "user", Content: "plan", At: at}))

	puntual, err := f.ws.ChatHistory(ctx, domain.ModePuntual)
	require.NoError(t, err)
	assert.Len(t, puntual, 2)

	require.NoError(t, f.ws.ClearChat(ctx, domain.ModePuntual))
	puntual, err = f.ws.ChatHistory(ctx, domain.ModePuntual)
	require.NoError(t, err)
	assert.Empty(t, puntual)
	mensual, err := f.ws.ChatHistory(ctx, domain.ModeMensual)
	require.NoError(t, err)
	assert.Len(t, mensual, 1)
}

func TestWorkspace_EditObserved(t *testing.T) {
	var buf bytes.Buffer
	database := testutil.NewTestDB(t)
	obs := NewLogUseCaseObserver(&buf)
	ws, err := NewWorkspace(testutil.NewTestStore(t),
		NewProposalService(repository.NewBlobProposalRepo(database, nil), obs),
		repository.NewBlobLocalServiceRepo(database, nil),
		repository.NewBlobChatHistoryRepo(database, nil),
		WorkspaceConfig{DefaultMargin: 0.5}, obs)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, ws.Open(ctx))

	_, err = ws.EditProposal(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "use_case=edit-proposal")
	assert.Contains(t, buf.String(), "success=false")
}
