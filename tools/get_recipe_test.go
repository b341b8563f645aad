package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktails/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestGetRecipe_Run(t *testing.T) {
	c := testCatalog(t)
	tool := NewGetRecipe(c)

	tests := []struct {
		name     string
		input    map[string]any
		wantID   string
		wantName string
	}{
		{name: "no name returns featured cocktail", input: map[string]any{}, wantID: "old_fashioned", wantName: "Old Fashioned"},
		{name: "nil input", input: nil, wantID: "old_fashioned", wantName: "Old Fashioned"},
		{name: "empty name", input: map[string]any{"name": ""}, wantID: "old_fashioned", wantName: "Old Fashioned"},
		{name: "hyphenated name", input: map[string]any{"name": "Old-Fashioned"}, wantID: "old_fashioned", wantName: "Old Fashioned"},
		{name: "by id", input: map[string]any{"name": "negroni"}, wantID: "negroni", wantName: "Negroni"},
		{name: "case insensitive name", input: map[string]any{"name": "  NEGRONI "}, wantID: "negroni", wantName: "Negroni"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Run(context.Background(), tt.input)
			require.NoError(t, err)
			require.False(t, result.IsError)

			out, ok := result.Structured.(GetRecipeOutput)
			require.True(t, ok, "structured payload should be GetRecipeOutput, got %T", result.Structured)
			assert.Equal(t, tt.wantID, out.Cocktail.ID)
			assert.Equal(t, tt.wantName, out.Cocktail.Name)
			assert.Equal(t, c.Summaries(), out.AvailableCocktails)

			require.Len(t, result.Text, 2)
			assert.Equal(t, out.Cocktail.Name+": "+out.Cocktail.Description, result.Text[0])
			assert.Equal(t, RecipeCardNote, result.Text[1])
		})
	}

	t.Run("unknown cocktail", func(t *testing.T) {
		result, err := tool.Run(context.Background(), map[string]any{"name": "not-a-real-drink"})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Nil(t, result.Structured)
		require.Len(t, result.Text, 1)
		assert.Contains(t, result.Text[0], "not-a-real-drink")
	})

	t.Run("wrong argument type", func(t *testing.T) {
		_, err := tool.Run(context.Background(), map[string]any{"name": 42.0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid get-recipe input")
	})

	t.Run("payload field names", func(t *testing.T) {
		result, err := tool.Run(context.Background(), map[string]any{"name": "old_fashioned"})
		require.NoError(t, err)

		data, err := json.Marshal(result.Structured)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Contains(t, payload, "cocktail")
		assert.Contains(t, payload, "availableCocktails")

		cocktail := payload["cocktail"].(map[string]any)
		assert.Equal(t, "Old Fashioned", cocktail["name"])
		assert.Contains(t, cocktail, "playlistUrl")
		assert.Contains(t, cocktail, "imagePath")
	})
}

func TestGetRecipe_ToolMethods(t *testing.T) {
	tool := NewGetRecipe(testCatalog(t))

	assert.Equal(t, "get-recipe", tool.Name())
	assert.NotEmpty(t, tool.Title())
	assert.NotEmpty(t, tool.Description())

	in := tool.InputSchema()
	assert.Equal(t, "object", in.Type)
	assert.Contains(t, in.Properties, "name")
	assert.Empty(t, in.Required)

	out := tool.OutputSchema()
	assert.Equal(t, "object", out.Type)
	assert.ElementsMatch(t, []string{"cocktail", "availableCocktails"}, out.Required)
}
