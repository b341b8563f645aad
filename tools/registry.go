package tools

import (
	"fmt"

	"cocktails/catalog"
	"cocktails/prefs"
)

// Registry maps tool names to implementations and keeps registration order.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry creates the tool registry over a catalog and a unit preference store.
func NewRegistry(c *catalog.Catalog, store prefs.Store) (*Registry, error) {
	if c == nil {
		return nil, fmt.Errorf("tool registry requires a catalog")
	}
	if store == nil {
		return nil, fmt.Errorf("tool registry requires a preference store")
	}

	r := &Registry{byName: map[string]Tool{}}
	for _, t := range []Tool{
		NewGetRecipe(c),
		NewListRecipes(c),
		NewFormatRecipe(c, store),
		NewSetUnitPreference(store),
	} {
		if _, dup := r.byName[t.Name()]; dup {
			return nil, fmt.Errorf("tool %q registered twice", t.Name())
		}
		r.tools = append(r.tools, t)
		r.byName[t.Name()] = t
	}
	return r, nil
}

// GetTools returns all tools in registration order
func (r *Registry) GetTools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// GetTool retrieves a tool by name from the registry
func (r *Registry) GetTool(name string) (Tool, error) {
	tool, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
