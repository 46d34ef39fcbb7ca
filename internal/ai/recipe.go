package ai

// RecipeCount is the number of recipes every generation run must produce.
const RecipeCount = 3

type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	// ImageURL is attached after the fact by image enrichment. Either a
	// data:image/png;base64 URI or a deterministic placeholder.
	ImageURL string `json:"imageUrl,omitempty"`
}

type Batch struct {
	Recipes []Recipe `json:"recipes"`
}
