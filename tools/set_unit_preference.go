package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"cocktails/catalog"
	"cocktails/prefs"
)

type SetUnitPreferenceInput struct {
	Unit string `json:"unit"`
}

type SetUnitPreference struct{ prefs prefs.Store }

func NewSetUnitPreference(store prefs.Store) *SetUnitPreference {
	return &SetUnitPreference{prefs: store}
}

func (t *SetUnitPreference) Name() string  { return "set-unit-preference" }
func (t *SetUnitPreference) Title() string { return "Set Measurement Unit" }
func (t *SetUnitPreference) Description() string {
	return "Remembers the unit (ml, oz or part) the user wants recipe measurements shown in."
}

func (t *SetUnitPreference) InputSchema() *jsonschema.Schema {
	units := make([]any, 0, len(catalog.Units))
	for _, u := range catalog.Units {
		units = append(units, string(u))
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"unit": {Type: "string", Enum: units},
		},
		Required: []string{"unit"},
	}
}

func (t *SetUnitPreference) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"unit": {Type: "string"},
		},
		Required: []string{"unit"},
	}
}

func (t *SetUnitPreference) Run(ctx context.Context, input map[string]any) (*Result, error) {
	var in SetUnitPreferenceInput
	if err := decodeInput(t.Name(), input, &in); err != nil {
		return nil, err
	}

	unit, err := catalog.ParseUnit(in.Unit)
	if err != nil {
		return ErrorResult("Unknown unit %q. Use one of: %s.", in.Unit, unitList()), nil
	}
	if err := t.prefs.Set(ctx, UserFrom(ctx), unit); err != nil {
		return nil, fmt.Errorf("save unit preference: %w", err)
	}

	return &Result{
		Text:       []string{fmt.Sprintf("Measurements will be shown in %s.", unit)},
		Structured: map[string]any{"unit": string(unit)},
	}, nil
}
