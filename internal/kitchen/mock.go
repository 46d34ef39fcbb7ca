package kitchen

import (
	"context"

	"fridgechef/internal/ai"
	"fridgechef/internal/pantry"
)

type mock struct{}

func (mock) GenerateRecipes(_ context.Context, ingredients []string, meal pantry.MealTime) (*ai.Batch, error) {
	return &ai.Batch{
		Recipes: []ai.Recipe{
			{
				Title:       "Glue Pizza",
				Description: "Sticky sauce trash style",
				Ingredients: append([]string{"dough", "tomato sauce", "glue"}, ingredients...),
				Steps: []string{
					"roll dough",
					"mix glue and sauce",
					"attach cheese to dough with sticky sauce",
					"bake that sucker",
				},
			},
			{
				Title:       "Everything Scramble",
				Description: "Whatever was left in the " + meal.String() + " drawer",
				Ingredients: ingredients,
				Steps: []string{
					"chop it all",
					"into the pan",
					"stir until it looks done",
				},
			},
			{
				Title:       "Desperation Soup",
				Description: "Broth forgives everything",
				Ingredients: append([]string{"water", "bouillon"}, ingredients...),
				Steps: []string{
					"boil water",
					"add everything",
					"simmer 20 minutes",
				},
			},
		},
	}, nil
}

func (mock) GenerateRecipeImage(_ context.Context, title string) string {
	return ai.PlaceholderURL(title)
}
