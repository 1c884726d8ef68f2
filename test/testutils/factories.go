// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dishcart/assistant/internal/domain/cart"
	"github.com/dishcart/assistant/internal/domain/catalog"
	"github.com/dishcart/assistant/internal/domain/recipe"
	"github.com/google/uuid"
)

// CartFactory provides methods to create test cart lines
type CartFactory struct {
	faker *gofakeit.Faker
}

// NewCartFactory creates a new cart factory with seeded faker
func NewCartFactory(seed int64) *CartFactory {
	return &CartFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateLine returns a valid cart line with randomized content
func (f *CartFactory) CreateLine() cart.Line {
	ingredient := f.faker.Vegetable()
	return cart.Line{
		ID:             uuid.New(),
		IngredientName: ingredient,
		Brand:          f.faker.Company(),
		UnitPrice:      f.faker.Number(20, 500),
		PackageWeight:  fmt.Sprintf("%dg", f.faker.Number(1, 10)*100),
		Store:          f.faker.RandomString([]string{"Amazon", "JioMart", "Flipkart"}),
		ImageRef:       "/images/placeholder.jpg",
		Quantity:       f.faker.Number(cart.MinQuantity, 5),
	}
}

// CreateLineForStore returns a valid line pinned to the given store
func (f *CartFactory) CreateLineForStore(store string) cart.Line {
	line := f.CreateLine()
	line.Store = store
	return line
}

// LineBuilder provides a fluent interface for building test cart lines
type LineBuilder struct {
	line cart.Line
}

// NewLineBuilder creates a line builder with valid defaults
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{
		line: cart.Line{
			ID:             uuid.New(),
			IngredientName: "Basmati Rice",
			Brand:          "India Gate",
			UnitPrice:      120,
			PackageWeight:  "1kg",
			Store:          "Amazon",
			ImageRef:       "/images/basmatirice.jpg",
			Quantity:       1,
		},
	}
}

// WithIngredient sets the ingredient name
func (b *LineBuilder) WithIngredient(name string) *LineBuilder {
	b.line.IngredientName = name
	return b
}

// WithBrand sets the brand
func (b *LineBuilder) WithBrand(brand string) *LineBuilder {
	b.line.Brand = brand
	return b
}

// WithUnitPrice sets the unit price
func (b *LineBuilder) WithUnitPrice(price int) *LineBuilder {
	b.line.UnitPrice = price
	return b
}

// WithStore sets the store
func (b *LineBuilder) WithStore(store string) *LineBuilder {
	b.line.Store = store
	return b
}

// WithQuantity sets the quantity
func (b *LineBuilder) WithQuantity(quantity int) *LineBuilder {
	b.line.Quantity = quantity
	return b
}

// Build returns the assembled line
func (b *LineBuilder) Build() cart.Line {
	return b.line
}

// CatalogFactory provides methods to create test brand offers
type CatalogFactory struct {
	faker *gofakeit.Faker
}

// NewCatalogFactory creates a new catalog factory with seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateOffer returns a valid brand offer with randomized content
func (f *CatalogFactory) CreateOffer() catalog.BrandOffer {
	return catalog.BrandOffer{
		Brand:         f.faker.Company(),
		UnitPrice:     f.faker.Number(20, 500),
		PackageWeight: fmt.Sprintf("%dg", f.faker.Number(1, 10)*100),
		Store:         f.faker.RandomString([]string{"Amazon", "JioMart", "Flipkart"}),
	}
}

// DefaultOffers returns the stock three-offer catalog used across tests
func DefaultOffers() catalog.Catalog {
	return catalog.Catalog{
		{Brand: "India Gate", UnitPrice: 120, PackageWeight: "1kg", Store: "Amazon"},
		{Brand: "Daawat", UnitPrice: 100, PackageWeight: "1kg", Store: "JioMart"},
		{Brand: "Organic Choice", UnitPrice: 140, PackageWeight: "500g", Store: "Flipkart"},
	}
}

// SampleRecipe returns a small structured recipe for session tests
func SampleRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Name: "Vegetable Biryani",
		Instructions: []string{
			"Rinse the rice until the water runs clear.",
			"Saute the onions and spices, then layer with rice.",
			"Steam on low heat for twenty minutes.",
		},
		Ingredients: []recipe.Ingredient{
			{Name: "Basmati Rice", Quantity: "2 cups"},
			{Name: "Onion", Quantity: "2 large"},
			{Name: "Curd", Quantity: "1 cup"},
		},
	}
}
