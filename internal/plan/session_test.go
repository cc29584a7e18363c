package plan

import (
	"reflect"
	"testing"
	"time"
)

func TestDefaultForm(t *testing.T) {
	f := DefaultForm()
	if f.Style != "curvy" || f.Size != "medium" || f.Goal != "fast-growth" {
		t.Errorf("unexpected defaults: %+v", f)
	}
	if f.Name != "" || f.Notes != "" || len(f.Tags) != 0 || len(f.Services) != 0 {
		t.Errorf("text fields should be empty: %+v", f)
	}
}

func TestFormToggles(t *testing.T) {
	f := DefaultForm()
	f.ToggleTag("coast")
	f.ToggleService("Power")
	f.ToggleService("Water")

	if !f.HasTag("coast") || !f.HasService("Power") {
		t.Fatalf("toggle on failed: %+v", f)
	}
	f.ToggleService("Power")
	if f.HasService("Power") || !f.HasService("Water") {
		t.Errorf("toggle off failed: %+v", f)
	}
	f.ToggleTag("coast")
	if f.HasTag("coast") {
		t.Error("tag should be removed")
	}
}

func TestEditSession_CommitNew(t *testing.T) {
	e := NewEditSession()
	e.newID = func() string { return "fresh" }

	now := time.UnixMilli(1234)
	p := e.Commit(FormState{
		Name:     "   ",
		Style:    "grid",
		Size:     "bogus",
		Goal:     "money",
		Notes:    "  near the river \n",
		Tags:     []string{" a", "", "a", "b"},
		Services: []string{"Power", "Unknown"},
	}, now)

	if p.ID != "fresh" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.TS != 1234 {
		t.Errorf("TS = %d", p.TS)
	}
	if p.Name != UntitledName {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Style != StyleGrid || p.Size != SizeMedium || p.Goal != GoalMoney {
		t.Errorf("enums = %q %q %q", p.Style, p.Size, p.Goal)
	}
	if p.Notes != "near the river" {
		t.Errorf("Notes = %q", p.Notes)
	}
	if !reflect.DeepEqual(p.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %q", p.Tags)
	}
	if len(p.Services) != len(ServiceCatalog) || !p.Services["Power"] || p.Services["Water"] {
		t.Errorf("Services = %v", p.Services)
	}
}

func TestEditSession_BeginAndCommitKeepsID(t *testing.T) {
	e := NewEditSession()
	e.newID = func() string { t.Fatal("editing must not mint a new id"); return "" }

	existing := Plan{
		ID:       "p1",
		TS:       1,
		Name:     "Harbor",
		Style:    "organic",
		Size:     "large",
		Goal:     "pretty",
		Tags:     []string{"coast"},
		Notes:    "n",
		Services: map[string]bool{"Water": true, "Power": false},
	}
	form := e.Begin(existing)

	if id, editing := e.EditingID(); !editing || id != "p1" {
		t.Errorf("EditingID = %q, %v", id, editing)
	}
	if form.Name != "Harbor" || form.Style != "organic" || !reflect.DeepEqual(form.Services, []string{"Water"}) {
		t.Errorf("form not populated: %+v", form)
	}

	form.Name = "Harbor 2"
	p := e.Commit(form, time.UnixMilli(99))
	if p.ID != "p1" || p.TS != 99 || p.Name != "Harbor 2" {
		t.Errorf("unexpected commit: %+v", p)
	}

	// Commit does not end the session; Done does.
	if _, editing := e.EditingID(); !editing {
		t.Error("commit alone should keep editing state")
	}
	e.Done()
	if _, editing := e.EditingID(); editing {
		t.Error("Done should return to idle")
	}
}

func TestEditSession_Cancel(t *testing.T) {
	e := NewEditSession()
	e.Begin(Plan{ID: "p1", Name: "Harbor", Style: "grid"})
	e.Cancel()

	if _, editing := e.EditingID(); editing {
		t.Error("Cancel should end editing")
	}
	if !reflect.DeepEqual(e.Form(), DefaultForm()) {
		t.Errorf("form should be cleared: %+v", e.Form())
	}
}

func TestFormFromPlan_UnknownEnums(t *testing.T) {
	f := FormFromPlan(Plan{Style: "hex", Size: "", Goal: "chaos"})
	if f.Style != "curvy" || f.Size != "medium" || f.Goal != "fast-growth" {
		t.Errorf("unknown enums should show defaults: %+v", f)
	}
}
