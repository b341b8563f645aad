package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"cocktails/catalog"
)

type ListRecipes struct{ catalog *catalog.Catalog }

func NewListRecipes(c *catalog.Catalog) *ListRecipes { return &ListRecipes{catalog: c} }

func (t *ListRecipes) Name() string  { return "list-recipes" }
func (t *ListRecipes) Title() string { return "List Cocktails" }
func (t *ListRecipes) Description() string {
	return "Lists every cocktail in the collection with its tagline."
}

func (t *ListRecipes) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

// OutputSchema is nil: the listing is text only.
func (t *ListRecipes) OutputSchema() *jsonschema.Schema { return nil }

func (t *ListRecipes) Run(ctx context.Context, input map[string]any) (*Result, error) {
	summaries := t.catalog.Summaries()
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("• %s — %s", s.Name, s.Tagline))
	}
	return &Result{Text: []string{strings.Join(lines, "\n")}}, nil
}
