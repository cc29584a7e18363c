// Package msgs defines the messages views send to the app model.
package msgs

import "github.com/pablasso/planbook/internal/plan"

// View transition messages

// GoToListMsg returns to the plan list.
type GoToListMsg struct{}

// NewPlanMsg opens an empty form.
type NewPlanMsg struct{}

// EditPlanMsg opens the form on an existing plan.
type EditPlanMsg struct {
	ID string
}

// GoToImportMsg opens the import dialog.
type GoToImportMsg struct{}

// Intents

// SavePlanMsg asks to save the form.
type SavePlanMsg struct {
	Form plan.FormState
}

// CancelEditMsg abandons the form.
type CancelEditMsg struct{}

// DuplicatePlanMsg asks to copy a plan.
type DuplicatePlanMsg struct {
	ID string
}

// DeletePlanMsg asks to delete a plan. The list view confirms first.
type DeletePlanMsg struct {
	ID string
}

// ExportMsg asks to copy an export of every plan to the clipboard.
type ExportMsg struct{}

// ImportPayloadMsg asks to merge the pasted export text.
type ImportPayloadMsg struct {
	Text string
}

// Results

// PlanSavedMsg reports a successful save.
type PlanSavedMsg struct {
	Plan plan.Plan
}

// PlansChangedMsg reports a finished list operation with a status line.
type PlansChangedMsg struct {
	Status string
}

// ImportDoneMsg reports how many plans an import added.
type ImportDoneMsg struct {
	Added int
}

// OpErrorMsg reports a failed operation.
type OpErrorMsg struct {
	Err error
}
