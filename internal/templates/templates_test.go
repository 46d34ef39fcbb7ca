package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/ai"
	"fridgechef/internal/pantry"
)

// mirrors kitchen.View without importing it (kitchen imports us)
type viewData struct {
	Checking     bool
	Gated        bool
	Loading      bool
	Ingredients  []string
	Meal         pantry.MealTime
	MealTimes    []pantry.MealTime
	Recipes      []ai.Recipe
	Message      string
	Connectivity string
	BatchID      string
}

func render(t *testing.T, data viewData) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Home.Execute(&sb, data))
	return sb.String()
}

func TestHomeRendersGateModal(t *testing.T) {
	out := render(t, viewData{Gated: true, MealTimes: pantry.MealTimes(), Connectivity: "untested"})
	assert.Contains(t, out, "API key required")
	assert.Contains(t, out, "/credential/select")
	assert.NotContains(t, out, "/generate")
}

func TestHomeRendersLoadingWithRefresh(t *testing.T) {
	out := render(t, viewData{Loading: true, MealTimes: pantry.MealTimes(), Connectivity: "untested"})
	assert.Contains(t, out, `http-equiv="refresh"`)
	assert.Contains(t, out, "Cooking up ideas")
}

func TestHomeRendersResults(t *testing.T) {
	out := render(t, viewData{
		MealTimes: pantry.MealTimes(),
		Meal:      pantry.Lunch,
		Recipes: []ai.Recipe{
			{Title: "Egg Fried Rice", Description: "Quick", Ingredients: []string{"egg"}, Steps: []string{"fry"}, ImageURL: ai.PlaceholderURL("Egg Fried Rice")},
			{Title: "Onion Soup", Description: "Cozy", Ingredients: []string{"onion"}, Steps: []string{"simmer"}},
			{Title: "Omelette", Description: "Fluffy", Ingredients: []string{"egg"}, Steps: []string{"whisk"}},
		},
		Connectivity: "passed",
	})
	assert.Contains(t, out, "Egg Fried Rice")
	assert.Contains(t, out, "picsum.photos")
	assert.Contains(t, out, "connectivity: passed")
	assert.NotContains(t, out, `http-equiv="refresh"`)
}

func TestHomeRendersValidationMessage(t *testing.T) {
	out := render(t, viewData{
		MealTimes:    pantry.MealTimes(),
		Message:      "Add at least one ingredient before generating recipes.",
		Connectivity: "untested",
	})
	assert.Contains(t, out, "Add at least one ingredient")
}
