package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DashText is shown for an ingredient whose quantity in the requested unit is zero.
//
// Zero doubles as "not expressible in this unit", so a real zero quantity also renders as a dash.
const DashText = "Dash"

// ServingOptions are the serving multipliers a card can be scaled by, indexed by serving option.
var ServingOptions = []float64{0.5, 1, 2, 3}

// DefaultServingIndex selects the single-serving option.
const DefaultServingIndex = 1

// ServingMultiplier returns the multiplier for a serving option, or 1 when index is out of range.
func ServingMultiplier(index int) float64 {
	if index < 0 || index >= len(ServingOptions) {
		return 1
	}
	return ServingOptions[index]
}

// FormatQuantity renders an ingredient's quantity in unit, scaled by multiplier.
// A display override for the unit wins and is never scaled.
func FormatQuantity(ing RecipeIngredient, unit Unit, multiplier float64) string {
	if s, ok := ing.Override(unit); ok {
		return s
	}

	base := ing.Measurements[unit]
	if base == 0 {
		return DashText
	}

	scaled := base * multiplier
	n := FormatNumber(scaled)
	switch unit {
	case UnitPart:
		if scaled == 1 {
			return n + " part"
		}
		return n + " parts"
	default:
		return n + " " + string(unit)
	}
}

// FormatNumber renders integers as-is, values below one with up to two decimals and everything else with
// up to one decimal. Halves round away from zero, so 0.125 becomes "0.13".
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	prec := 1
	if v < 1 {
		prec = 2
	}
	p := math.Pow(10, float64(prec))
	s := strconv.FormatFloat(math.Round(v*p)/p, 'f', prec, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// CardLines renders one "<quantity> <ingredient>" line per ingredient of r.
func CardLines(r *Recipe, unit Unit, servingIndex int) []string {
	multiplier := ServingMultiplier(servingIndex)
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		line := fmt.Sprintf("%s %s", FormatQuantity(ing, unit, multiplier), ing.Ingredient.Name)
		if ing.Optional {
			line += " (optional)"
		}
		if ing.Note != nil {
			line += " - " + *ing.Note
		}
		lines = append(lines, line)
	}
	return lines
}
