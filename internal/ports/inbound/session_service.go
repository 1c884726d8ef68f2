// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionService drives the recipe-to-cart workflow for one browser
// session: query submission, ingredient selection, brand choice, cart
// edits, checkout and the order summary.
// This is the primary port that HTTP handlers and other driving adapters will use
type SessionService interface {
	// Commands - operations that modify state
	SubmitQuery(ctx context.Context, cmd SubmitQueryCommand) (*QueryResultDTO, error)
	SelectIngredient(ctx context.Context, cmd SelectIngredientCommand) (*BrandSelectionDTO, error)
	CancelBrandSelection(ctx context.Context, sessionID string) error
	AddBrandToCart(ctx context.Context, cmd AddBrandCommand) (*CartDTO, error)
	UpdateLineQuantity(ctx context.Context, cmd UpdateQuantityCommand) (*CartDTO, error)
	RemoveLine(ctx context.Context, cmd RemoveLineCommand) (*CartDTO, error)
	OpenCheckout(ctx context.Context, sessionID string) error
	CancelCheckout(ctx context.Context, sessionID string) error
	ConfirmCheckout(ctx context.Context, sessionID string) (*OrderDTO, error)
	ToggleOrderSummary(ctx context.Context, sessionID string) (bool, error)

	// Queries - operations that read state
	CartView(ctx context.Context, sessionID string) (*CartDTO, error)
	LastOrder(ctx context.Context, sessionID string) (*OrderDTO, error)
	SessionView(ctx context.Context, sessionID string) (*SessionDTO, error)
}

// Command objects for operations

// SubmitQueryCommand carries a free-text recipe query
type SubmitQueryCommand struct {
	SessionID string
	Text      string
}

// SelectIngredientCommand opens brand selection for one ingredient
type SelectIngredientCommand struct {
	SessionID      string
	IngredientName string
}

// AddBrandCommand adds the chosen brand offer for the selected ingredient
type AddBrandCommand struct {
	SessionID string
	Brand     string
}

// UpdateQuantityCommand replaces the quantity of one cart line
type UpdateQuantityCommand struct {
	SessionID string
	LineIndex int
	Quantity  int
}

// RemoveLineCommand removes one cart line
type RemoveLineCommand struct {
	SessionID string
	LineIndex int
}

// DTOs returned to driving adapters

// IngredientDTO is one recipe ingredient with its resolved image
type IngredientDTO struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	ImageURL string `json:"image_url"`
}

// RecipeDTO is the recipe currently displayed
type RecipeDTO struct {
	Name         string          `json:"recipe_name"`
	Instructions []string        `json:"instructions"`
	Ingredients  []IngredientDTO `json:"ingredients"`
}

// QueryResultDTO is the outcome of a query submission. Structured results
// carry a recipe; fallback results carry the assistant's raw text.
type QueryResultDTO struct {
	Recipe       *RecipeDTO `json:"recipe,omitempty"`
	FallbackText string     `json:"fallback_text,omitempty"`
}

// BrandOfferDTO is one catalog offer presented in the brand dialog
type BrandOfferDTO struct {
	Brand         string `json:"brand"`
	UnitPrice     int    `json:"unit_price"`
	PackageWeight string `json:"package_weight"`
	Store         string `json:"store"`
}

// BrandSelectionDTO is the open brand dialog state
type BrandSelectionDTO struct {
	Ingredient IngredientDTO   `json:"ingredient"`
	Offers     []BrandOfferDTO `json:"offers"`
}

// CartLineDTO is one cart line for display
type CartLineDTO struct {
	ID             uuid.UUID `json:"id"`
	IngredientName string    `json:"ingredient"`
	Brand          string    `json:"brand"`
	UnitPrice      int       `json:"unit_price"`
	PackageWeight  string    `json:"package_weight"`
	Store          string    `json:"store"`
	ImageRef       string    `json:"image_ref"`
	Quantity       int       `json:"quantity"`
	Subtotal       int       `json:"subtotal"`
}

// StoreGroupDTO is one store bucket of the grouped cart view
type StoreGroupDTO struct {
	Store string        `json:"store"`
	Lines []CartLineDTO `json:"lines"`
}

// CartDTO is the cart panel view: flat lines, store grouping and total
type CartDTO struct {
	Lines  []CartLineDTO   `json:"lines"`
	Groups []StoreGroupDTO `json:"groups"`
	Total  int             `json:"total"`
}

// OrderDTO is the recorded order summary
type OrderDTO struct {
	ID       uuid.UUID     `json:"id"`
	Items    []CartLineDTO `json:"items"`
	Total    int           `json:"total"`
	PlacedAt time.Time     `json:"placed_at"`
}

// SessionDTO is the full session state for the frontend
type SessionDTO struct {
	Phase            string     `json:"phase"`
	Recipe           *RecipeDTO `json:"recipe,omitempty"`
	SelectedIngredient string   `json:"selected_ingredient,omitempty"`
	BrandDialogOpen  bool       `json:"brand_dialog_open"`
	CheckoutOpen     bool       `json:"checkout_open"`
	ShowOrderSummary bool       `json:"show_order_summary"`
	CartCount        int        `json:"cart_count"`
}
