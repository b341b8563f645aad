package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"cocktails/catalog"
)

// RecipeCardNote keeps the model from repeating what the widget already shows.
const RecipeCardNote = "The recipe card with ingredients, measurements and instructions is already shown to the user. " +
	"Do not repeat the measurements or steps in your reply."

type GetRecipeInput struct {
	Name *string `json:"name,omitempty"`
}

type GetRecipeOutput struct {
	Cocktail           *catalog.Recipe   `json:"cocktail"`
	AvailableCocktails []catalog.Summary `json:"availableCocktails"`
}

type GetRecipe struct{ catalog *catalog.Catalog }

func NewGetRecipe(c *catalog.Catalog) *GetRecipe { return &GetRecipe{catalog: c} }

func (t *GetRecipe) Name() string  { return "get-recipe" }
func (t *GetRecipe) Title() string { return "Show Cocktail Recipe" }
func (t *GetRecipe) Description() string {
	return "Shows a cocktail recipe card by id or name. Without a name, shows the featured cocktail."
}

func (t *GetRecipe) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Cocktail id or name, e.g. old_fashioned or Old Fashioned.",
			},
		},
	}
}

func (t *GetRecipe) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"cocktail": {
				Type: "object",
				// the widget reads the recipe as-is
			},
			"availableCocktails": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":        {Type: "string"},
						"name":      {Type: "string"},
						"tagline":   {Type: "string"},
						"subName":   {Type: "string"},
						"imagePath": {Type: "string"},
					},
					Required: []string{"id", "name", "tagline", "imagePath"},
				},
			},
		},
		Required: []string{"cocktail", "availableCocktails"},
	}
}

func (t *GetRecipe) Run(ctx context.Context, input map[string]any) (*Result, error) {
	var in GetRecipeInput
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

	return &Result{
		Text: []string{
			fmt.Sprintf("%s: %s", recipe.Name, recipe.Description),
			RecipeCardNote,
		},
		Structured: GetRecipeOutput{
			Cocktail:           recipe,
			AvailableCocktails: t.catalog.Summaries(),
		},
	}, nil
}
