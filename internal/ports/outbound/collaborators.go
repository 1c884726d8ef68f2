// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/dishcart/assistant/internal/domain/catalog"
	"github.com/dishcart/assistant/internal/domain/recipe"
)

// RecipeQueryClient sends a free-text query to the external assistant and
// returns the decoded result. It performs no retries and no caching; every
// call is independent.
type RecipeQueryClient interface {
	Query(ctx context.Context, text string) (recipe.QueryResult, error)
}

// OfferCatalog supplies the static brand offers shown for any ingredient.
type OfferCatalog interface {
	Offers(ctx context.Context) (catalog.Catalog, error)
}

// ImageResolver maps an ingredient display name to an image URL, falling
// back to a placeholder when no asset matches.
type ImageResolver interface {
	Resolve(name string) string
}
