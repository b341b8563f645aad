// Package catalog holds the fixed cocktail recipe table, lookup by slug or name, and quantity formatting.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is matched by every lookup failure.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a query that matched no recipe. Query is kept exactly as the caller sent it.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cocktail %q not found", e.Query)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

var separatorRun = regexp.MustCompile(`[\p{Z}\s-]+`)

// Normalize turns a recipe id or name into its canonical slug form: trimmed, lower-cased, with every run of
// whitespace or hyphens collapsed into a single underscore.
func Normalize(s string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}

// Catalog is an ordered, read-only table of recipes. It is never written after New returns, so it is safe
// for concurrent use without locking.
type Catalog struct {
	recipes []Recipe
	ids     []string
	names   []string
}

// New validates recipes and builds a catalog from them. The first recipe becomes the default.
func New(recipes []Recipe) (*Catalog, error) {
	if err := validate(recipes); err != nil {
		return nil, err
	}

	c := &Catalog{
		recipes: make([]Recipe, len(recipes)),
		ids:     make([]string, len(recipes)),
		names:   make([]string, len(recipes)),
	}
	copy(c.recipes, recipes)
	for i := range c.recipes {
		c.ids[i] = Normalize(c.recipes[i].ID)
		c.names[i] = Normalize(c.recipes[i].Name)
	}
	return c, nil
}

// Len returns the number of recipes.
func (c *Catalog) Len() int { return len(c.recipes) }

// Recipes returns every recipe in catalog order.
func (c *Catalog) Recipes() []*Recipe {
	out := make([]*Recipe, len(c.recipes))
	for i := range c.recipes {
		out[i] = &c.recipes[i]
	}
	return out
}

// Summaries returns the summary of every recipe in catalog order.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.recipes))
	for i := range c.recipes {
		out = append(out, c.recipes[i].Summary())
	}
	return out
}

// Resolve finds a recipe by id or name. An empty query returns the first recipe; a blank one is not
// empty and matches nothing. Ids are tried before names; within each pass the first match in catalog order
// wins.
func (c *Catalog) Resolve(query string) (*Recipe, error) {
	if query == "" {
		return &c.recipes[0], nil
	}

	key := Normalize(query)
	for i, id := range c.ids {
		if id == key {
			return &c.recipes[i], nil
		}
	}
	for i, name := range c.names {
		if name == key {
			return &c.recipes[i], nil
		}
	}
	return nil, &NotFoundError{Query: query}
}

func validate(recipes []Recipe) error {
	if len(recipes) == 0 {
		return errors.New("catalog has no recipes")
	}

	var errs []error
	ids := map[string]string{}
	names := map[string]string{}
	for _, r := range recipes {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("recipe %q: missing id", r.Name))
			continue
		}
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("recipe %q: missing name", r.ID))
		}
		if prev, ok := ids[Normalize(r.ID)]; ok {
			errs = append(errs, fmt.Errorf("recipe %q: id collides with %q", r.ID, prev))
		}
		ids[Normalize(r.ID)] = r.ID
		if prev, ok := names[Normalize(r.Name)]; ok {
			errs = append(errs, fmt.Errorf("recipe %q: name collides with %q", r.ID, prev))
		}
		names[Normalize(r.Name)] = r.ID

		for i, ing := range r.Ingredients {
			if err := validateIngredient(ing); err != nil {
				errs = append(errs, fmt.Errorf("recipe %q ingredient %d: %w", r.ID, i, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validateIngredient(ing RecipeIngredient) error {
	if ing.Ingredient == nil {
		return errors.New("missing ingredient asset")
	}

	var errs []error
	for _, u := range Units {
		v, ok := ing.Measurements[u]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s: no %s measurement", ing.Ingredient.ID, u))
		case v < 0:
			errs = append(errs, fmt.Errorf("%s: negative %s measurement %v", ing.Ingredient.ID, u, v))
		}
	}
	for u := range ing.Measurements {
		if _, err := ParseUnit(string(u)); err != nil {
			errs = append(errs, fmt.Errorf("%s: measurement: %w", ing.Ingredient.ID, err))
		}
	}
	for u := range ing.DisplayOverrides {
		if _, err := ParseUnit(string(u)); err != nil {
			errs = append(errs, fmt.Errorf("%s: display override: %w", ing.Ingredient.ID, err))
		}
	}
	return errors.Join(errs...)
}
