package plan

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Plan is one planning note about a city layout design choice.
type Plan struct {
	ID       string          `json:"id"`
	TS       int64           `json:"ts"` // ms since epoch of the last create/duplicate/save
	Name     string          `json:"name"`
	Style    Style           `json:"style"`
	Size     Size            `json:"size"`
	Goal     Goal            `json:"goal"`
	Tags     []string        `json:"tags"`
	Notes    string          `json:"notes"`
	Services map[string]bool `json:"services"`

	// Extra holds fields kept verbatim from imported or persisted JSON: keys
	// planbook does not know, and known keys whose value had another type.
	Extra map[string]json.RawMessage `json:"-"`
}

// Style is the road layout style of a plan.
type Style string

const (
	StyleCurvy   Style = "curvy"
	StyleGrid    Style = "grid"
	StyleOrganic Style = "organic"
)

// Size is the intended footprint of a plan.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Goal is what a plan optimizes for.
type Goal string

const (
	GoalFastGrowth Goal = "fast-growth"
	GoalLowTraffic Goal = "low-traffic"
	GoalPretty     Goal = "pretty"
	GoalMoney      Goal = "money"
)

// Defaults applied when a form field is empty or unknown.
const (
	DefaultStyle = StyleCurvy
	DefaultSize  = SizeMedium
	DefaultGoal  = GoalFastGrowth

	// UntitledName replaces a blank plan name.
	UntitledName = "Untitled plan"

	copySuffix   = " (copy)"
	copyFallback = "Plan"
)

var (
	// Styles lists every Style in display order.
	Styles = []Style{StyleCurvy, StyleGrid, StyleOrganic}
	// Sizes lists every Size in display order.
	Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}
	// Goals lists every Goal in display order.
	Goals = []Goal{GoalFastGrowth, GoalLowTraffic, GoalPretty, GoalMoney}
)

// ServiceCatalog is the fixed checklist every plan's services are read against.
var ServiceCatalog = []string{
	"Power", "Water", "Garbage",
	"Fire", "Police", "Health",
	"Education", "Parks", "Transport",
	"Road upgrades", "Industry buffer", "Flood plan",
}

// NormalizeName trims raw and substitutes UntitledName when nothing is left.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return UntitledName
	}
	return name
}

// NormalizeNotes trims raw. Empty notes are allowed.
func NormalizeNotes(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeTags trims each tag, drops empty ones and removes repeats,
// keeping the first occurrence.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// ServicesFromSelection returns an entry for every catalog service, true when
// it appears in selected. Names outside the catalog are ignored.
func ServicesFromSelection(selected []string) map[string]bool {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	services := make(map[string]bool, len(ServiceCatalog))
	for _, name := range ServiceCatalog {
		services[name] = picked[name]
	}
	return services
}

// SelectedServices returns the catalog services checked in p, in catalog order.
// Keys missing from p count as unchecked.
func SelectedServices(p Plan) []string {
	var selected []string
	for _, name := range ServiceCatalog {
		if p.Services[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

// ServicesDone counts the checked entries of p.Services, including keys from
// a foreign catalog.
func ServicesDone(p Plan) int {
	done := 0
	for _, checked := range p.Services {
		if checked {
			done++
		}
	}
	return done
}

// ParseStyle returns the Style named by raw, or DefaultStyle.
func ParseStyle(raw string) Style {
	for _, s := range Styles {
		if string(s) == strings.TrimSpace(raw) {
			return s
		}
	}
	return DefaultStyle
}

// ParseSize returns the Size named by raw, or DefaultSize.
func ParseSize(raw string) Size {
	for _, s := range Sizes {
		if string(s) == strings.TrimSpace(raw) {
			return s
		}
	}
	return DefaultSize
}

// ParseGoal returns the Goal named by raw, or DefaultGoal.
func ParseGoal(raw string) Goal {
	for _, g := range Goals {
		if string(g) == strings.TrimSpace(raw) {
			return g
		}
	}
	return DefaultGoal
}

// Label returns the display label of a goal. Unknown goals read as "Money".
func (g Goal) Label() string {
	switch g {
	case GoalFastGrowth:
		return "Fast growth"
	case GoalLowTraffic:
		return "Low traffic"
	case GoalPretty:
		return "Pretty"
	default:
		return "Money"
	}
}

// Label returns the style with its first letter upper-cased.
func (s Style) Label() string { return capitalize(string(s)) }

// Label returns the size with its first letter upper-cased.
func (s Size) Label() string { return capitalize(string(s)) }

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Clone returns a deep copy of p.
func (p Plan) Clone() Plan {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Services != nil {
		c.Services = make(map[string]bool, len(p.Services))
		for k, v := range p.Services {
			c.Services[k] = v
		}
	}
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}

// copyName is the name given to a duplicate of a plan called name.
func copyName(name string) string {
	if name == "" {
		name = copyFallback
	}
	return name + copySuffix
}
