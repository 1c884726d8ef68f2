// Package catalog provides the static brand offer catalog adapter.
// Offers are read from configuration; the catalog never changes at
// runtime and is safe for concurrent reads.
package catalog

import (
	"context"

	"github.com/dishcart/assistant/internal/domain/catalog"
	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/ports/outbound"
)

// StaticCatalog serves a fixed offer list.
type StaticCatalog struct {
	offers catalog.Catalog
}

// NewStaticCatalog builds the catalog from configuration.
func NewStaticCatalog(cfg *config.Config) (outbound.OfferCatalog, error) {
	offers := make(catalog.Catalog, 0, len(cfg.Catalog.Offers))
	for _, entry := range cfg.Catalog.Offers {
		offer := catalog.BrandOffer{
			Brand:         entry.Brand,
			UnitPrice:     entry.UnitPrice,
			PackageWeight: entry.PackageWeight,
			Store:         entry.Store,
		}
		if err := offer.Validate(); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return &StaticCatalog{offers: offers}, nil
}

// Offers returns a copy of the configured offer list.
func (c *StaticCatalog) Offers(ctx context.Context) (catalog.Catalog, error) {
	out := make(catalog.Catalog, len(c.offers))
	copy(out, c.offers)
	return out, nil
}
