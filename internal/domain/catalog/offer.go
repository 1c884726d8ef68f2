// Package catalog contains the grocery brand catalog domain types.
package catalog

import "errors"

// BrandOffer is an immutable offer for a branded grocery product.
// Prices are whole currency units.
type BrandOffer struct {
	Brand         string
	UnitPrice     int
	PackageWeight string
	Store         string
}

// Validate validates the offer
func (o BrandOffer) Validate() error {
	if o.Brand == "" {
		return errors.New("offer brand is required")
	}
	if o.UnitPrice < 0 {
		return errors.New("offer unit price cannot be negative")
	}
	if o.Store == "" {
		return errors.New("offer store is required")
	}
	return nil
}

// Catalog is a read-only ordered collection of brand offers.
type Catalog []BrandOffer

// FindByBrand returns the first offer for the given brand name.
func (c Catalog) FindByBrand(brand string) (BrandOffer, bool) {
	for _, offer := range c {
		if offer.Brand == brand {
			return offer, true
		}
	}
	return BrandOffer{}, false
}
