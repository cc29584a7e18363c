package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/planbook/internal/plan"
)

// formFlags holds the plan fields settable from add and edit.
type formFlags struct {
	name     string
	style    string
	size     string
	goal     string
	notes    string
	tags     []string
	services []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Plan name")
	cmd.Flags().StringVar(&f.style, "style", "", "Road style: "+joinValues(plan.Styles))
	cmd.Flags().StringVar(&f.size, "size", "", "Size: "+joinValues(plan.Sizes))
	cmd.Flags().StringVar(&f.goal, "goal", "", "Goal: "+joinValues(plan.Goals))
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", nil, "Tag (repeatable or comma-separated)")
	cmd.Flags().StringSliceVarP(&f.services, "service", "s", nil, "Checked service (repeatable or comma-separated)")
}

// apply copies every flag the user set onto form. Flags left unset keep the
// form's value.
func (f *formFlags) apply(cmd *cobra.Command, form plan.FormState) (plan.FormState, error) {
	changed := cmd.Flags().Changed

	if changed("style") {
		if err := checkValue("style", f.style, plan.Styles); err != nil {
			return form, err
		}
		form.Style = f.style
	}
	if changed("size") {
		if err := checkValue("size", f.size, plan.Sizes); err != nil {
			return form, err
		}
		form.Size = f.size
	}
	if changed("goal") {
		if err := checkValue("goal", f.goal, plan.Goals); err != nil {
			return form, err
		}
		form.Goal = f.goal
	}
	if changed("service") {
		for _, s := range f.services {
			if !slices.Contains(plan.ServiceCatalog, s) {
				return form, fmt.Errorf("unknown service %q (choose from: %s)", s, strings.Join(plan.ServiceCatalog, ", "))
			}
		}
		form.Services = f.services
	}
	if changed("name") {
		form.Name = f.name
	}
	if changed("notes") {
		form.Notes = f.notes
	}
	if changed("tag") {
		form.Tags = f.tags
	}
	return form, nil
}

func checkValue[T ~string](field, value string, allowed []T) error {
	for _, a := range allowed {
		if string(a) == value {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (choose from: %s)", field, value, joinValues(allowed))
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
