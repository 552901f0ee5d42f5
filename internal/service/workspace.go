package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/ledger"
	"github.com/alexanderramin/cotizador/internal/pricing"
	"github.com/alexanderramin/cotizador/internal/repository"
	"github.com/alexanderramin/cotizador/internal/selection"
)

// WorkspaceConfig holds the session defaults of a workspace.
type WorkspaceConfig struct {
	PointPrice    float64
	DefaultMargin float64
	Mode          domain.SaleMode
}

// DraftMeta is the proposal header being edited alongside the selection.
type DraftMeta struct {
	ClientName string
	WebName    string
	Margin     float64
	IsUrgent   bool
}

// EditReady is returned once a stored proposal has been applied to the
// draft. The caller decides when to present it.
type EditReady struct {
	Index    int
	Proposal *domain.Proposal
	Report   selection.RestoreReport
}

// RecommendationResult reports how an assistant suggestion was applied.
type RecommendationResult struct {
	Applied  []string
	NotFound []string
	Rejected map[string]error
}

// Workspace owns one configurator session: the catalog store, the draft
// selection with its ledger, the header fields, tiered drafts and the saved
// proposals.
type Workspace struct {
	store     *catalog.Store
	ledger    *ledger.Ledger
	draft     *selection.Draft
	proposals ProposalService
	locals    repository.LocalServiceRepo
	chats     repository.ChatHistoryRepo
	observer  UseCaseObserver

	cfg   WorkspaceConfig
	meta  DraftMeta
	tiers []domain.Tier
}

func NewWorkspace(
	store *catalog.Store,
	proposals ProposalService,
	locals repository.LocalServiceRepo,
	chats repository.ChatHistoryRepo,
	cfg WorkspaceConfig,
	observers ...UseCaseObserver,
) (*Workspace, error) {
	l := ledger.New(0)
	if err := l.SetPointPrice(cfg.PointPrice); err != nil {
		return nil, err
	}
	if cfg.DefaultMargin < 0 {
		return nil, domain.Invalidf("default margin cannot be negative, got %v", cfg.DefaultMargin)
	}
	return &Workspace{
		store:     store,
		ledger:    l,
		draft:     selection.NewDraft(store, l, cfg.Mode),
		proposals: proposals,
		locals:    locals,
		chats:     chats,
		observer:  useCaseObserverOrNoop(observers),
		cfg:       cfg,
		meta:      DraftMeta{Margin: cfg.DefaultMargin},
	}, nil
}

// Open loads the saved proposals and local services.
func (w *Workspace) Open(ctx context.Context) error {
	if err := w.proposals.Load(ctx); err != nil {
		return err
	}
	items, err := w.locals.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading local services: %w", err)
	}
	w.store.SetLocal(items)
	return nil
}

func (w *Workspace) Store() *catalog.Store            { return w.store }
func (w *Workspace) Draft() *selection.Draft          { return w.draft }
func (w *Workspace) Ledger() *ledger.Ledger           { return w.ledger }
func (w *Workspace) Proposals() ProposalService       { return w.proposals }
func (w *Workspace) Meta() DraftMeta                  { return w.meta }
func (w *Workspace) Mode() domain.SaleMode            { return w.draft.Mode() }
func (w *Workspace) Selection() []domain.SelectedItem { return w.draft.Selection() }

// Apply forwards a selection event to the draft.
func (w *Workspace) Apply(ev selection.Event) error {
	return w.draft.Apply(ev)
}

// ApplyAll applies events in order and stops at the first failure.
func (w *Workspace) ApplyAll(events ...selection.Event) error {
	for _, ev := range events {
		if err := w.draft.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

// Totals prices the current selection with the draft margin.
func (w *Workspace) Totals() pricing.Totals {
	return pricing.ComputeTotals(w.draft.Selection(), w.ledger.State(), w.meta.Margin)
}

func (w *Workspace) SetMargin(margin float64) error {
	if margin < 0 {
		return domain.Invalidf("margin cannot be negative, got %v", margin)
	}
	w.meta.Margin = margin
	return nil
}

func (w *Workspace) SetClient(client, web string) {
	w.meta.ClientName = strings.TrimSpace(client)
	w.meta.WebName = strings.TrimSpace(web)
}

func (w *Workspace) SetUrgent(urgent bool) {
	w.meta.IsUrgent = urgent
}

// AddTier appends a tier built from catalog, local or custom service ids.
func (w *Workspace) AddTier(name string, ids []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Invalidf("tier name is required")
	}
	if len(ids) == 0 {
		return domain.Invalidf("tier %q has no services", name)
	}
	tier := domain.Tier{Name: name}
	for _, id := range ids {
		item, err := w.resolveTierService(id)
		if err != nil {
			return err
		}
		tier.Services = append(tier.Services, domain.TierService{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	tier.TotalDev = pricing.SumTier(tier.Services)
	w.tiers = append(w.tiers, tier)
	return nil
}

// RemoveTier drops the tier at index.
func (w *Workspace) RemoveTier(index int) error {
	if index < 0 || index >= len(w.tiers) {
		return domain.Invalidf("tier %d out of range", index)
	}
	w.tiers = append(w.tiers[:index], w.tiers[index+1:]...)
	return nil
}

func (w *Workspace) Tiers() []domain.Tier {
	return append([]domain.Tier(nil), w.tiers...)
}

// TierTotals prices the tiered draft with the draft margin.
func (w *Workspace) TierTotals() []pricing.TierTotal {
	return pricing.TierTotals(w.tiers, w.meta.Margin)
}

// resolveTierService accepts standard, local and custom services only;
// tiers have no package or plan.
func (w *Workspace) resolveTierService(id string) (*domain.SelectedItem, error) {
	for _, t := range []domain.ItemType{domain.ItemStandard, domain.ItemCustom} {
		if it := w.store.Resolve(id, t); it != nil {
			return it, nil
		}
	}
	if w.store.Resolve(id, domain.ItemPackage) != nil || w.store.Resolve(id, domain.ItemPlan) != nil {
		return nil, domain.Invalidf("%q is a package or plan and cannot be part of a tier", id)
	}
	return nil, domain.Invalidf("service %q not found", id)
}

func (w *Workspace) resolveAny(id string) *domain.SelectedItem {
	for _, t := range []domain.ItemType{domain.ItemStandard, domain.ItemPackage, domain.ItemPlan, domain.ItemCustom} {
		if it := w.store.Resolve(id, t); it != nil {
			return it
		}
	}
	return nil
}

// BuildProposal assembles a proposal from the draft without saving it.
func (w *Workspace) BuildProposal() (*domain.Proposal, error) {
	p := &domain.Proposal{
		ClientName: w.meta.ClientName,
		WebName:    w.meta.WebName,
		Margin:     w.meta.Margin,
		Type:       w.draft.Mode(),
		IsUrgent:   w.meta.IsUrgent,
	}

	if len(w.tiers) > 0 {
		p.Body = domain.TieredBody{Tiers: w.Tiers()}
		return p, nil
	}

	sel := w.draft.Selection()
	if len(sel) == 0 {
		return nil, domain.Invalidf("select at least one service before saving")
	}
	pkg, plan, rest := domain.SplitSelection(sel)
	totals := pricing.ComputeTotals(sel, w.ledger.State(), w.meta.Margin)
	body := domain.StandardBody{
		Package:     pkg,
		Plan:        plan,
		Services:    rest,
		TotalDev:    totals.TotalDev,
		TotalClient: totals.TotalClient,
	}
	if plan != nil {
		body.Ledger = w.ledger.State()
	}
	p.Body = body
	return p, nil
}

// SaveProposal stores the draft as a proposal, overwriting the one being
// edited if any, then resets the draft.
func (w *Workspace) SaveProposal(ctx context.Context) (int, *domain.Proposal, error) {
	p, err := w.BuildProposal()
	if err != nil {
		return NotEditing, nil, err
	}
	index, err := w.proposals.Save(ctx, p)
	if err != nil {
		return NotEditing, nil, err
	}
	saved, err := w.proposals.Get(index)
	if err != nil {
		return NotEditing, nil, err
	}
	w.resetDraft()
	return index, saved, nil
}

// EditProposal opens index for editing and loads it into the draft.
func (w *Workspace) EditProposal(ctx context.Context, index int) (ready EditReady, err error) {
	startedAt := time.Now()
	fields := map[string]any{"index": index}
	defer func() {
		reportUseCase(ctx, w.observer, "edit-proposal", startedAt, err, fields)
	}()

	p, err := w.proposals.Edit(index)
	if err != nil {
		return EditReady{}, err
	}

	w.resetDraft()
	w.meta = DraftMeta{
		ClientName: p.ClientName,
		WebName:    p.WebName,
		Margin:     p.Margin,
		IsUrgent:   p.IsUrgent,
	}

	ready = EditReady{Index: index, Proposal: p}
	switch b := p.Body.(type) {
	case domain.TieredBody:
		w.draft.Restore(selection.Snapshot{Mode: p.Type})
		w.tiers = append([]domain.Tier(nil), b.Tiers...)
	case domain.StandardBody:
		ready.Report = w.draft.Restore(snapshotOf(p.Type, b))
	}
	fields["placeholders"] = len(ready.Report.Placeholders)
	fields["dropped"] = len(ready.Report.Dropped)
	return ready, nil
}

func snapshotOf(mode domain.SaleMode, b domain.StandardBody) selection.Snapshot {
	snap := selection.Snapshot{
		Mode:    mode,
		Package: b.Package,
		Plan:    b.Plan,
		Ledger:  b.Ledger,
	}
	for _, it := range b.Services {
		switch it.Type {
		case domain.ItemCustom:
			snap.Custom = append(snap.Custom, it)
		case domain.ItemPlanService:
			snap.PlanServiceIDs = append(snap.PlanServiceIDs, it.ID)
		default:
			if b.Plan != nil {
				snap.PlanServiceIDs = append(snap.PlanServiceIDs, it.ID)
			} else {
				snap.Standard = append(snap.Standard, it)
			}
		}
	}
	return snap
}

// DeleteProposal removes index. Deleting the proposal being edited also
// resets the draft.
func (w *Workspace) DeleteProposal(ctx context.Context, index int) error {
	cancelled, err := w.proposals.Delete(ctx, index)
	if err != nil {
		return err
	}
	if cancelled {
		w.resetDraft()
	}
	return nil
}

// SetStatus changes the status of a saved proposal. Any string is stored
// as given.
func (w *Workspace) SetStatus(ctx context.Context, index int, status domain.ProposalStatus) error {
	return w.proposals.SetStatus(ctx, index, status)
}

// Cancel discards the draft and closes any edit session.
func (w *Workspace) Cancel() {
	w.proposals.CancelEdit()
	w.resetDraft()
}

func (w *Workspace) resetDraft() {
	w.draft.Reset()
	w.tiers = nil
	w.meta = DraftMeta{Margin: w.cfg.DefaultMargin}
}

// AddLocalService validates, adds and persists a local service.
func (w *Workspace) AddLocalService(ctx context.Context, in catalog.ServiceInput) (item domain.CatalogItem, err error) {
	startedAt := time.Now()
	defer func() {
		reportUseCase(ctx, w.observer, "add-local-service", startedAt, err, map[string]any{"name": in.Name, "id": item.ID})
	}()

	prev := w.store.Local()
	item, err = w.store.AddLocal(in)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	if err = w.locals.Save(ctx, w.store.Local()); err != nil {
		w.store.SetLocal(prev)
		return domain.CatalogItem{}, fmt.Errorf("saving local services: %w", err)
	}
	return item, nil
}

// RemoveLocalService deletes and persists a local service.
func (w *Workspace) RemoveLocalService(ctx context.Context, id string) error {
	prev := w.store.Local()
	if !w.store.RemoveLocal(id) {
		return fmt.Errorf("local service %s: %w", id, repository.ErrNotFound)
	}
	if err := w.locals.Save(ctx, w.store.Local()); err != nil {
		w.store.SetLocal(prev)
		return fmt.Errorf("saving local services: %w", err)
	}
	return nil
}

// ApplyRecommendation selects the suggested items through the normal
// events. Ids that do not resolve are reported and never added.
func (w *Workspace) ApplyRecommendation(rec *domain.Recommendation) RecommendationResult {
	res := RecommendationResult{Rejected: map[string]error{}}
	if rec == nil {
		return res
	}
	for _, it := range rec.Items {
		resolved := w.store.Resolve(it.ID, it.Type)
		if resolved == nil && it.Type == "" {
			resolved = w.resolveAny(it.ID)
		}
		if resolved == nil {
			res.NotFound = append(res.NotFound, it.ID)
			continue
		}
		if resolved.Type == domain.ItemCustom {
			// already part of the draft
			res.Applied = append(res.Applied, it.ID)
			continue
		}
		if err := w.draft.Apply(w.eventFor(*resolved)); err != nil {
			res.Rejected[it.ID] = err
			continue
		}
		res.Applied = append(res.Applied, it.ID)
	}
	return res
}

func (w *Workspace) eventFor(item domain.SelectedItem) selection.Event {
	switch item.Type {
	case domain.ItemPackage:
		return selection.SelectPackage{ID: item.ID}
	case domain.ItemPlan:
		return selection.SelectPlan{ID: item.ID}
	default:
		if w.draft.Plan() != nil {
			return selection.TogglePlanService{ID: item.ID, Checked: true}
		}
		return selection.ToggleStandard{ID: item.ID, Checked: true}
	}
}

// ChatHistory returns the stored conversation of mode.
func (w *Workspace) ChatHistory(ctx context.Context, mode domain.SaleMode) ([]domain.ChatMessage, error) {
	return w.chats.Load(ctx, mode)
}

// AppendChat adds messages to the conversation of mode and persists it.
func (w *Workspace) AppendChat(ctx context.Context, mode domain.SaleMode, messages ...domain.ChatMessage) error {
	history, err := w.chats.Load(ctx, mode)
	if err != nil {
		return err
	}
	return w.chats.Save(ctx, mode, append(history, messages...))
}

// ClearChat drops the conversation of mode.
func (w *Workspace) ClearChat(ctx context.Context, mode domain.SaleMode) error {
	return w.chats.Save(ctx, mode, nil)
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
