package catalog

import "fmt"

// Unit is a measurement unit an ingredient quantity can be displayed in.
type Unit string

const (
	UnitML   Unit = "ml"
	UnitOz   Unit = "oz"
	UnitPart Unit = "part"
)

// Units is the full unit set, in display order. Every ingredient defines a quantity for each of them.
var Units = []Unit{UnitML, UnitOz, UnitPart}

// ParseUnit converts a unit name into a Unit.
func ParseUnit(s string) (Unit, error) {
	for _, u := range Units {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// IngredientAsset is an ingredient identity shared by every recipe that uses it.
type IngredientAsset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SubName   *string `json:"subName,omitempty"`
	ImagePath string  `json:"imagePath"`
}

// Measurements maps each unit to the quantity needed for a single serving.
type Measurements map[Unit]float64

// RecipeIngredient is an ingredient as used in one recipe.
type RecipeIngredient struct {
	Ingredient       *IngredientAsset `json:"ingredient"`
	Measurements     Measurements     `json:"measurements"`
	DisplayOverrides map[Unit]string  `json:"displayOverrides,omitempty"`
	Note             *string          `json:"note,omitempty"`
	Optional         bool             `json:"optional,omitempty"`
}

// Override returns the literal display text for unit, if the ingredient has one.
func (ri RecipeIngredient) Override(unit Unit) (string, bool) {
	s, ok := ri.DisplayOverrides[unit]
	return s, ok
}

// Nutrition holds per-serving nutrition facts as display strings.
type Nutrition struct {
	ABV      string `json:"abv"`
	Sugar    string `json:"sugar"`
	Volume   string `json:"volume"`
	Calories string `json:"calories"`
}

// Summary is the projection of a recipe used in navigation lists.
type Summary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Tagline   string  `json:"tagline"`
	SubName   *string `json:"subName,omitempty"`
	ImagePath string  `json:"imagePath"`
}

// Recipe is a complete cocktail recipe.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Tagline      string             `json:"tagline"`
	SubName      *string            `json:"subName,omitempty"`
	ImagePath    string             `json:"imagePath"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions"`
	Hashtags     []string           `json:"hashtags"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Nutrition    Nutrition          `json:"nutrition"`
	Garnish      *string            `json:"garnish,omitempty"`
	PlaylistURL  *string            `json:"playlistUrl,omitempty"`
	Author       *string            `json:"author,omitempty"`
}

// Summary projects the recipe to its summary fields.
func (r *Recipe) Summary() Summary {
	return Summary{
		ID:        r.ID,
		Name:      r.Name,
		Tagline:   r.Tagline,
		SubName:   r.SubName,
		ImagePath: r.ImagePath,
	}
}
