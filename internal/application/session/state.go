package session

import "github.com/dishcart/assistant/internal/domain/recipe"

// Phase is the main workflow phase of a session.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseRecipeShown Phase = "recipe_shown"
)

// State is the per-session workflow state. Transitions are pure functions
// from a state value to the next one, independent of any transport or
// rendering concern, so the whole machine is unit-testable in isolation.
//
// BrandDialogOpen and CheckoutOpen are orthogonal sub-states layered on
// top of Phase; ShowOrderSummary is a display flag guarded by HasOrder.
type State struct {
	Phase            Phase
	Recipe           *recipe.Recipe
	Selected         *recipe.Ingredient
	BrandDialogOpen  bool
	CheckoutOpen     bool
	ShowOrderSummary bool
	HasOrder         bool
}

// Initial returns the idle state a fresh session starts in.
func Initial() State {
	return State{Phase: PhaseIdle}
}

// BeginQuery enters the loading phase. Returns false when a query is
// already in flight; the submission must then be ignored.
func (s State) BeginQuery() (State, bool) {
	if s.Phase == PhaseLoading {
		return s, false
	}
	s.Phase = PhaseLoading
	return s, true
}

// ResolveQuery applies a completed query. A structured result shows the
// recipe; a fallback result clears it and returns the session to idle.
func (s State) ResolveQuery(result recipe.QueryResult) State {
	if result.IsStructured() {
		s.Phase = PhaseRecipeShown
		s.Recipe = result.Recipe
	} else {
		s.Phase = PhaseIdle
		s.Recipe = nil
	}
	s.Selected = nil
	s.BrandDialogOpen = false
	return s
}

// FailQuery applies a transport or decode failure: never fatal, the
// session degrades to the empty-recipe idle state.
func (s State) FailQuery() State {
	s.Phase = PhaseIdle
	s.Recipe = nil
	s.Selected = nil
	s.BrandDialogOpen = false
	return s
}

// SelectIngredient opens brand selection for one ingredient. Only legal
// while a recipe is shown.
func (s State) SelectIngredient(ing recipe.Ingredient) (State, bool) {
	if s.Phase != PhaseRecipeShown {
		return s, false
	}
	s.Selected = &ing
	s.BrandDialogOpen = true
	return s, true
}

// CloseBrandDialog exits brand selection, either after adding to cart or
// on cancel. Idempotent with respect to repeated open/close actions.
func (s State) CloseBrandDialog() State {
	s.Selected = nil
	s.BrandDialogOpen = false
	return s
}

// OpenCheckout enters the checkout sub-state. Allowed from any phase.
func (s State) OpenCheckout() State {
	s.CheckoutOpen = true
	return s
}

// CancelCheckout exits checkout leaving everything else unchanged.
func (s State) CancelCheckout() State {
	s.CheckoutOpen = false
	return s
}

// ConfirmCheckout applies a confirmed checkout: the session returns to
// idle and, when clearRecipe is set, the displayed recipe is reset.
// Cart clearing and order capture happen outside the state machine;
// recorded reports whether an order was actually stored. A confirm on an
// empty cart resets dialogs without unlocking the order summary.
func (s State) ConfirmCheckout(clearRecipe, recorded bool) State {
	s.CheckoutOpen = false
	if recorded {
		s.HasOrder = true
	}
	s.Selected = nil
	s.BrandDialogOpen = false
	if clearRecipe {
		s.Phase = PhaseIdle
		s.Recipe = nil
	}
	return s
}

// ToggleOrderSummary flips the order summary flag. No-op until the first
// order has been recorded.
func (s State) ToggleOrderSummary() State {
	if !s.HasOrder {
		return s
	}
	s.ShowOrderSummary = !s.ShowOrderSummary
	return s
}
