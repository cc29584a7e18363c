package plan

import (
	"time"

	"github.com/pablasso/planbook/internal/util"
)

// FormState is the raw field state of the plan form, before normalization.
type FormState struct {
	Name     string
	Style    string
	Size     string
	Goal     string
	Notes    string
	Tags     []string
	Services []string // checked catalog services
}

// DefaultForm returns the state of a cleared form.
func DefaultForm() FormState {
	return FormState{
		Style: string(DefaultStyle),
		Size:  string(DefaultSize),
		Goal:  string(DefaultGoal),
	}
}

// FormFromPlan populates a form with p's current values. Enum values the
// form cannot show fall back to their defaults.
func FormFromPlan(p Plan) FormState {
	return FormState{
		Name:     p.Name,
		Style:    string(ParseStyle(string(p.Style))),
		Size:     string(ParseSize(string(p.Size))),
		Goal:     string(ParseGoal(string(p.Goal))),
		Notes:    p.Notes,
		Tags:     NormalizeTags(p.Tags),
		Services: SelectedServices(p),
	}
}

// HasTag reports whether tag is set on the form.
func (f FormState) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ToggleTag adds tag to the form or removes it when already present.
func (f *FormState) ToggleTag(tag string) {
	f.Tags = toggle(f.Tags, tag)
}

// HasService reports whether the catalog service is checked on the form.
func (f FormState) HasService(name string) bool {
	for _, s := range f.Services {
		if s == name {
			return true
		}
	}
	return false
}

// ToggleService checks or unchecks a catalog service.
func (f *FormState) ToggleService(name string) {
	f.Services = toggle(f.Services, name)
}

func toggle(set []string, v string) []string {
	for i, s := range set {
		if s == v {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

// EditSession tracks whether the form is creating a new plan or editing an
// existing one. The zero value is idle with an empty form; use
// NewEditSession for a form holding the defaults.
type EditSession struct {
	editID  string
	editing bool
	form    FormState

	newID func() string
}

// NewEditSession returns an idle session with a cleared form.
func NewEditSession() *EditSession {
	return &EditSession{form: DefaultForm(), newID: util.NewID}
}

// Begin starts editing p and loads its values into the form.
func (e *EditSession) Begin(p Plan) FormState {
	e.editID = p.ID
	e.editing = true
	e.form = FormFromPlan(p)
	return e.form
}

// Cancel drops any edit in progress and clears the form.
func (e *EditSession) Cancel() {
	e.editID = ""
	e.editing = false
	e.form = DefaultForm()
}

// Done returns the session to idle after a successful save.
func (e *EditSession) Done() {
	e.Cancel()
}

// EditingID returns the id of the plan being edited, if any.
func (e *EditSession) EditingID() (string, bool) {
	return e.editID, e.editing
}

// Form returns the current form state.
func (e *EditSession) Form() FormState {
	return e.form
}

// SetForm replaces the current form state.
func (e *EditSession) SetForm(f FormState) {
	e.form = f
}

// Commit builds the plan to save from form. When editing, the plan keeps the
// edited id; otherwise it gets a fresh one. The timestamp is always now, so
// it records the last save rather than the creation time.
func (e *EditSession) Commit(form FormState, now time.Time) Plan {
	id := e.editID
	if !e.editing {
		newID := e.newID
		if newID == nil {
			newID = util.NewID
		}
		id = newID()
	}

	return Plan{
		ID:       id,
		TS:       now.UnixMilli(),
		Name:     NormalizeName(form.Name),
		Style:    ParseStyle(form.Style),
		Size:     ParseSize(form.Size),
		Goal:     ParseGoal(form.Goal),
		Tags:     NormalizeTags(form.Tags),
		Notes:    NormalizeNotes(form.Notes),
		Services: ServicesFromSelection(form.Services),
	}
}
