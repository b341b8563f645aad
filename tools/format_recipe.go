package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"cocktails/catalog"
	"cocktails/prefs"
)

type FormatRecipeInput struct {
	Name     *string `json:"name,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Servings *int    `json:"servings,omitempty"`
}

type FormatRecipeOutput struct {
	Cocktail   string       `json:"cocktail"`
	Unit       catalog.Unit `json:"unit"`
	Multiplier float64      `json:"multiplier"`
	Lines      []string     `json:"lines"`
}

// FormatRecipe renders a recipe's ingredient quantities in one unit, scaled to a serving option.
type FormatRecipe struct {
	catalog *catalog.Catalog
	prefs   prefs.Store
}

func NewFormatRecipe(c *catalog.Catalog, store prefs.Store) *FormatRecipe {
	return &FormatRecipe{catalog: c, prefs: store}
}

func (t *FormatRecipe) Name() string  { return "format-recipe" }
func (t *FormatRecipe) Title() string { return "Scale Cocktail Recipe" }
func (t *FormatRecipe) Description() string {
	return "Lists a cocktail's ingredient quantities in ml, oz or parts, scaled by a serving option " +
		"(0 = half, 1 = single, 2 = double, 3 = triple). Defaults to the user's preferred unit."
}

func (t *FormatRecipe) InputSchema() *jsonschema.Schema {
	minServing := 0.0
	maxServing := float64(len(catalog.ServingOptions) - 1)
	units := make([]any, 0, len(catalog.Units))
	for _, u := range catalog.Units {
		units = append(units, string(u))
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string"},
			"unit": {Type: "string", Enum: units},
			"servings": {
				Type:    "integer",
				Minimum: &minServing,
				Maximum: &maxServing,
			},
		},
	}
}

func (t *FormatRecipe) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"cocktail":   {Type: "string"},
			"unit":       {Type: "string"},
			"multiplier": {Type: "number"},
			"lines": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"cocktail", "unit", "multiplier", "lines"},
	}
}

func (t *FormatRecipe) Run(ctx context.Context, input map[string]any) (*Result, error) {
	var in FormatRecipeInput
	if err := decodeInput(t.Name(), input, &in); err != nil {
		return nil, err
	}

	var query string
	if in.Name != nil {
		query = *in.Name
	}
	recipe, err := t.catalog.Resolve(query)
	if errors.Is(err, catalog.ErrNotFound) {
		return ErrorResult("Cocktail %q was not found.", query), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve cocktail: %w", err)
	}

	var unit catalog.Unit
	if in.Unit != nil {
		unit, err = catalog.ParseUnit(*in.Unit)
		if err != nil {
			return ErrorResult("Unknown unit %q. Use one of: %s.", *in.Unit, unitList()), nil
		}
	} else {
		unit, err = prefs.UnitFor(ctx, t.prefs, UserFrom(ctx))
		if err != nil {
			return nil, fmt.Errorf("load unit preference: %w", err)
		}
	}

	servingIndex := catalog.DefaultServingIndex
	if in.Servings != nil {
		servingIndex = *in.Servings
	}
	multiplier := catalog.ServingMultiplier(servingIndex)
	lines := catalog.CardLines(recipe, unit, servingIndex)

	header := fmt.Sprintf("%s (x%s, %s):", recipe.Name, catalog.FormatNumber(multiplier), unit)
	return &Result{
		Text: append([]string{header}, lines...),
		Structured: FormatRecipeOutput{
			Cocktail:   recipe.ID,
			Unit:       unit,
			Multiplier: multiplier,
			Lines:      lines,
		},
	}, nil
}

func unitList() string {
	names := make([]string, 0, len(catalog.Units))
	for _, u := range catalog.Units {
		names = append(names, string(u))
	}
	return strings.Join(names, ", ")
}
