package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/cocktails.yaml
var defaultData []byte

// DefaultData returns the built-in catalog document.
func DefaultData() []byte { return defaultData }

// Default builds the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

type document struct {
	Ingredients []ingredientDoc `yaml:"ingredients"`
	Recipes     []recipeDoc     `yaml:"recipes"`
}

type ingredientDoc struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	SubName   *string `yaml:"sub_name"`
	ImagePath string  `yaml:"image_path"`
}

type recipeIngredientDoc struct {
	Ingredient       string             `yaml:"ingredient"`
	Measurements     map[string]float64 `yaml:"measurements"`
	DisplayOverrides map[string]string  `yaml:"display_overrides"`
	Note             *string            `yaml:"note"`
	Optional         bool               `yaml:"optional"`
}

type recipeDoc struct {
	ID           string                `yaml:"id"`
	Name         string                `yaml:"name"`
	Tagline      string                `yaml:"tagline"`
	SubName      *string               `yaml:"sub_name"`
	ImagePath    string                `yaml:"image_path"`
	Description  string                `yaml:"description"`
	Instructions string                `yaml:"instructions"`
	Hashtags     []string              `yaml:"hashtags"`
	Ingredients  []recipeIngredientDoc `yaml:"ingredients"`
	Nutrition    struct {
		ABV      string `yaml:"abv"`
		Sugar    string `yaml:"sugar"`
		Volume   string `yaml:"volume"`
		Calories string `yaml:"calories"`
	} `yaml:"nutrition"`
	Garnish     *string `yaml:"garnish"`
	PlaylistURL *string `yaml:"playlist_url"`
	Author      *string `yaml:"author"`
}

// Parse decodes a YAML catalog document and builds a validated catalog from it.
// Recipes reference ingredients by id; every recipe using an ingredient shares the same asset.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	assets := make(map[string]*IngredientAsset, len(doc.Ingredients))
	for _, d := range doc.Ingredients {
		if _, dup := assets[d.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate ingredient %q", d.ID)
		}
		assets[d.ID] = &IngredientAsset{
			ID:        d.ID,
			Name:      d.Name,
			SubName:   d.SubName,
			ImagePath: d.ImagePath,
		}
	}

	var errs []error
	recipes := make([]Recipe, 0, len(doc.Recipes))
	for _, rd := range doc.Recipes {
		r := Recipe{
			ID:           rd.ID,
			Name:         rd.Name,
			Tagline:      rd.Tagline,
			SubName:      rd.SubName,
			ImagePath:    rd.ImagePath,
			Description:  rd.Description,
			Instructions: rd.Instructions,
			Hashtags:     rd.Hashtags,
			Nutrition: Nutrition{
				ABV:      rd.Nutrition.ABV,
				Sugar:    rd.Nutrition.Sugar,
				Volume:   rd.Nutrition.Volume,
				Calories: rd.Nutrition.Calories,
			},
			Garnish:     rd.Garnish,
			PlaylistURL: rd.PlaylistURL,
			Author:      rd.Author,
		}
		for _, id := range rd.Ingredients {
			asset, ok := assets[id.Ingredient]
			if !ok {
				errs = append(errs, fmt.Errorf("recipe %q: unknown ingredient %q", rd.ID, id.Ingredient))
				continue
			}
			ri := RecipeIngredient{
				Ingredient:   asset,
				Measurements: make(Measurements, len(id.Measurements)),
				Note:         id.Note,
				Optional:     id.Optional,
			}
			for u, v := range id.Measurements {
				ri.Measurements[Unit(u)] = v
			}
			if len(id.DisplayOverrides) > 0 {
				ri.DisplayOverrides = make(map[Unit]string, len(id.DisplayOverrides))
				for u, s := range id.DisplayOverrides {
					ri.DisplayOverrides[Unit(u)] = s
				}
			}
			r.Ingredients = append(r.Ingredients, ri)
		}
		recipes = append(recipes, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c, err := New(recipes)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return c, nil
}
