package generator

import (
	"fmt"
	"hash/fnv"
	"strings"

	"recipehub/internal/models"
)

// fallbackCatalog serves recipe generation when no AI backend is
// configured or the backend misbehaves. Selection is deterministic on
// the ingredient list so repeated requests return the same template.
var fallbackCatalog = []models.GeneratedRecipe{
	{
		Name:              "Rustic Stir-Fry",
		Instructions:      "Heat oil in a wok over high heat. Add the firmest ingredients first and stir-fry for 3-4 minutes. Add the remaining ingredients with soy sauce and garlic, toss for another 2-3 minutes, and serve over rice.",
		EstimatedCalories: 420,
		EstimatedTime:     25,
		Servings:          2,
	},
	{
		Name:              "Hearty One-Pot Stew",
		Instructions:      "Brown any proteins in a large pot. Add chopped vegetables and cover with stock. Season with salt, pepper, and a bay leaf, then simmer uncovered for 35 minutes until everything is tender.",
		EstimatedCalories: 510,
		EstimatedTime:     50,
		Servings:          4,
	},
	{
		Name:              "Oven-Roasted Tray Bake",
		Instructions:      "Preheat the oven to 200C. Toss all ingredients with olive oil, salt, and herbs on a baking tray. Roast for 30 minutes, turning once halfway, until browned at the edges.",
		EstimatedCalories: 460,
		EstimatedTime:     40,
		Servings:          3,
	},
	{
		Name:              "Fresh Chopped Salad",
		Instructions:      "Chop all ingredients into bite-sized pieces. Whisk olive oil, lemon juice, mustard, salt, and pepper into a dressing. Toss everything together and rest for 10 minutes before serving.",
		EstimatedCalories: 320,
		EstimatedTime:     15,
		Servings:          2,
	},
	{
		Name:              "Creamy Weeknight Pasta",
		Instructions:      "Cook pasta until al dente. Saute the remaining ingredients in butter, add a splash of cream and the drained pasta, and toss with grated cheese until the sauce coats every piece.",
		EstimatedCalories: 640,
		EstimatedTime:     30,
		Servings:          4,
	},
	{
		Name:              "Spiced Skillet Curry",
		Instructions:      "Fry onion, garlic, and curry paste in a deep skillet. Add the main ingredients and coat in the paste, then pour in coconut milk. Simmer for 20 minutes and finish with fresh coriander.",
		EstimatedCalories: 550,
		EstimatedTime:     35,
		Servings:          4,
	},
}

// fallbackRecipe picks a catalog template and personalizes it with the
// requested ingredients.
func fallbackRecipe(ingredients []string, preferences string) *models.GeneratedRecipe {
	h := fnv.New32a()
	for _, ing := range ingredients {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(ing))))
	}
	template := fallbackCatalog[int(h.Sum32())%len(fallbackCatalog)]

	recipe := template
	recipe.Ingredients = append([]string(nil), ingredients...)
	recipe.Generated = true

	highlight := ingredients
	if len(highlight) > 3 {
		highlight = highlight[:3]
	}
	recipe.Name = fmt.Sprintf("%s with %s", template.Name, strings.Join(highlight, ", "))

	if preferences != "" {
		recipe.Instructions += fmt.Sprintf(" Adjust seasoning and substitutions to keep the dish %s.", preferences)
	}

	return &recipe
}
