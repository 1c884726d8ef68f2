// Package recipe contains the recipe types returned by the assistant.
// A recipe is a read model: it is replaced wholesale on every successful
// query and never mutated in place.
package recipe

import "strings"

// Ingredient is a single recipe ingredient with its display quantity.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
}

// Recipe is the structured result of an assistant query.
type Recipe struct {
	Name         string       `json:"recipe_name"`
	Instructions []string     `json:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// FindIngredient returns the ingredient with the given name.
func (r *Recipe) FindIngredient(name string) (Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// QueryResult is the tagged union produced at the network boundary.
// Exactly one of Recipe or Text is meaningful: a structured result carries
// a Recipe, an unstructured one carries the raw assistant text. Downstream
// code must branch on IsStructured and never re-inspect payload shapes.
type QueryResult struct {
	Recipe *Recipe
	Text   string
}

// Structured builds a structured query result.
func Structured(r *Recipe) QueryResult {
	return QueryResult{Recipe: r}
}

// Unstructured builds a fallback text query result.
func Unstructured(text string) QueryResult {
	return QueryResult{Text: text}
}

// IsStructured reports whether the result carries a parsed recipe.
func (q QueryResult) IsStructured() bool {
	return q.Recipe != nil
}
