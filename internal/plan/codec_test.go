package plan

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPlanJSON_WellFormedHasNoExtra(t *testing.T) {
	in := Plan{
		ID: "a", TS: 7, Name: "Harbor", Style: StyleGrid, Size: SizeLarge, Goal: GoalMoney,
		Tags: []string{"coast"}, Notes: "n", Services: map[string]bool{"Power": true},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"a","ts":7,"name":"Harbor","style":"grid","size":"large","goal":"money","tags":["coast"],"notes":"n","services":{"Power":true}}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}

	var out Plan
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Extra != nil {
		t.Errorf("Extra = %v, want nil", out.Extra)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestPlanJSON_KeepsUnexpectedValues(t *testing.T) {
	in := `{"id":"a","ts":"yesterday","name":"A","tags":["x",2],"zone":{"r":1},"area":3}`

	var p Plan
	if err := json.Unmarshal([]byte(in), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "a" || p.Name != "A" {
		t.Errorf("well-typed fields should decode: %+v", p)
	}
	if p.TS != 0 || p.Tags != nil {
		t.Errorf("mistyped fields should stay zero: ts=%d tags=%v", p.TS, p.Tags)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"a","ts":"yesterday","name":"A","style":"","size":"","goal":"","tags":["x",2],"notes":"","services":null,"area":3,"zone":{"r":1}}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}
}

func TestPlanJSON_NotAnObject(t *testing.T) {
	for _, in := range []string{`42`, `"str"`, `[1]`} {
		var p Plan
		if err := json.Unmarshal([]byte(in), &p); err == nil {
			t.Errorf("%s: expected an error", in)
		}
	}
}

func TestClone_CopiesExtra(t *testing.T) {
	p := Plan{ID: "a", Extra: map[string]json.RawMessage{"zone": json.RawMessage(`1`)}}
	c := p.Clone()
	c.Extra["zone"][0] = '2'
	c.Extra["more"] = json.RawMessage(`3`)
	if string(p.Extra["zone"]) != "1" || len(p.Extra) != 1 {
		t.Errorf("Clone shares Extra with the original: %v", p.Extra)
	}
}
