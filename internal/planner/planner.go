// Package planner is the single entry point the CLI and TUI drive. A Planner
// owns the plan store and the edit session and is built once per process.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pablasso/planbook/internal/plan"
)

// Planner coordinates the edit session with the plan store. Session methods
// may be called while a Save runs on another goroutine.
type Planner struct {
	store *plan.Store

	mu      sync.Mutex // guards session
	session *plan.EditSession

	log *slog.Logger
	now func() time.Time
}

// New returns a planner over store. The store should already be loaded.
func New(store *plan.Store, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		store:   store,
		session: plan.NewEditSession(),
		log:     logger,
		now:     time.Now,
	}
}

// Open builds a store over slot, loads it and returns a planner for it.
func Open(ctx context.Context, slot plan.Slot, logger *slog.Logger) (*Planner, error) {
	store := plan.NewStore(slot, logger)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return New(store, logger), nil
}

// ListPlansSortedNewestFirst returns all plans, most recently saved first.
func (p *Planner) ListPlansSortedNewestFirst() []plan.Plan {
	return p.store.ListNewestFirst()
}

// Find returns the plan with the given id.
func (p *Planner) Find(id string) (plan.Plan, bool) {
	return p.store.FindByID(id)
}

// Len returns the number of stored plans.
func (p *Planner) Len() int {
	return p.store.Len()
}

// BeginEdit loads the plan with id into the form and marks it as being edited.
func (p *Planner) BeginEdit(id string) (plan.FormState, error) {
	existing, ok := p.store.FindByID(id)
	if !ok {
		return plan.FormState{}, fmt.Errorf("%w: %s", plan.ErrNotFound, id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Begin(existing), nil
}

// CancelEdit abandons the current edit and clears the form.
func (p *Planner) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session.Cancel()
}

// Editing returns the id of the plan being edited, if any.
func (p *Planner) Editing() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.EditingID()
}

// Form returns the session's current form state.
func (p *Planner) Form() plan.FormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Form()
}

// PrepareCommit records form in the session and returns the plan saving it
// would store: the edited plan's id when editing, a fresh id otherwise. The
// store is not touched.
func (p *Planner) PrepareCommit(form plan.FormState) plan.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session.SetForm(form)
	return p.session.Commit(form, p.now())
}

// Save stores a plan built by PrepareCommit. It does not touch the session,
// so it can run on a command goroutine.
func (p *Planner) Save(ctx context.Context, candidate plan.Plan) (plan.Plan, error) {
	saved, err := p.store.Upsert(ctx, candidate)
	if err != nil {
		return plan.Plan{}, err
	}
	p.log.Debug("saved plan", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// FinishCommit returns the session to idle after saved was stored. An edit of
// another plan begun since PrepareCommit is left alone.
func (p *Planner) FinishCommit(saved plan.Plan) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, editing := p.session.EditingID(); editing && id != saved.ID {
		return
	}
	p.session.Done()
}

// CommitEdit saves form as a new plan, or over the plan being edited. The
// session returns to idle only when the save succeeds, so a failed save can
// be retried with the same form.
func (p *Planner) CommitEdit(ctx context.Context, form plan.FormState) (plan.Plan, error) {
	saved, err := p.Save(ctx, p.PrepareCommit(form))
	if err != nil {
		return plan.Plan{}, err
	}
	p.FinishCommit(saved)
	return saved, nil
}

// DeletePlan removes the plan with id. Unknown ids are ignored. Deleting the
// plan being edited does not end the edit.
func (p *Planner) DeletePlan(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, id); err != nil {
		return err
	}
	p.log.Debug("deleted plan", "id", id)
	return nil
}

// DuplicatePlan stores a copy of the plan with id and returns the copy.
func (p *Planner) DuplicatePlan(ctx context.Context, id string) (plan.Plan, error) {
	dup, err := p.store.Duplicate(ctx, id)
	if err != nil {
		return plan.Plan{}, err
	}
	p.log.Debug("duplicated plan", "from", id, "id", dup.ID)
	return dup, nil
}

// ExportSnapshot returns the encoded export of the whole collection.
func (p *Planner) ExportSnapshot() ([]byte, error) {
	return p.store.Export(p.now()).Encode()
}

// ImportPayload merges the plans in text into the collection and returns how
// many were added.
func (p *Planner) ImportPayload(ctx context.Context, text []byte) (int, error) {
	return p.store.Import(ctx, text)
}

// Reset deletes every plan and clears the durable slot.
func (p *Planner) Reset(ctx context.Context) error {
	if err := p.store.Reset(ctx); err != nil {
		return err
	}
	p.CancelEdit()
	p.log.Info("reset all plans")
	return nil
}
