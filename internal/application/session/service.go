// Package session provides the application layer orchestrating the
// recipe-to-cart workflow. It owns all per-session state and implements
// the use cases defined in the inbound ports.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/dishcart/assistant/internal/domain/cart"
	"github.com/dishcart/assistant/internal/domain/order"
	"github.com/dishcart/assistant/internal/domain/recipe"
	"github.com/dishcart/assistant/internal/ports/inbound"
	"github.com/dishcart/assistant/internal/ports/outbound"
	"github.com/dishcart/assistant/pkg/errors"
	"go.uber.org/zap"
)

// FallbackMessage is surfaced when a query fails outright.
const FallbackMessage = "Sorry, something went wrong while fetching your recipe. Please try again."

// Config holds session service behavior toggles
type Config struct {
	// ClearRecipeOnCheckout resets the displayed recipe when a checkout
	// is confirmed.
	ClearRecipeOnCheckout bool
}

// sessionState bundles everything one browser session owns. All access
// goes through its mutex so updates keep strict last-write-wins ordering.
type sessionState struct {
	mu        sync.Mutex
	state     State
	cart      *cart.Cart
	lastOrder *order.Order
}

// Service implements the session use cases
type Service struct {
	queryClient outbound.RecipeQueryClient
	catalog     outbound.OfferCatalog
	images      outbound.ImageResolver
	config      Config
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// NewService creates a new session service
func NewService(
	queryClient outbound.RecipeQueryClient,
	catalog outbound.OfferCatalog,
	images outbound.ImageResolver,
	config Config,
	logger *zap.Logger,
) inbound.SessionService {
	return &Service{
		queryClient: queryClient,
		catalog:     catalog,
		images:      images,
		config:      config,
		logger:      logger.Named("session-service"),
		sessions:    make(map[string]*sessionState),
	}
}

// session returns the state for the given session, creating it on first use.
func (s *Service) session(sessionID string) *sessionState {
	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.sessions[sessionID]; ok {
		return st
	}
	st = &sessionState{
		state: Initial(),
		cart:  cart.New(),
	}
	s.sessions[sessionID] = st
	return st
}

// Drop removes a session outright. Used when the cookie session expires.
func (s *Service) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// SubmitQuery sends a free-text query to the assistant and resolves the
// session's recipe state from the result. Whitespace-only input is
// rejected before any network call. A failure never propagates as fatal:
// the recipe clears and a generic fallback message is surfaced instead.
func (s *Service) SubmitQuery(ctx context.Context, cmd inbound.SubmitQueryCommand) (*inbound.QueryResultDTO, error) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return nil, errors.NewEmptyInputError()
	}

	st := s.session(cmd.SessionID)

	st.mu.Lock()
	next, ok := st.state.BeginQuery()
	if !ok {
		st.mu.Unlock()
		s.logger.Debug("Ignoring query while another is in flight",
			zap.String("session_id", cmd.SessionID),
		)
		return nil, errors.NewAppError(errors.CodeQueryInFlight,
			"Query already in flight",
			"A previous query for this session has not resolved yet",
		)
	}
	st.state = next
	st.mu.Unlock()

	s.logger.Info("Submitting recipe query",
		zap.String("session_id", cmd.SessionID),
		zap.Int("query_len", len(text)),
	)

	// The only suspension point in the workflow. The session lock is not
	// held across it; completion re-acquires the lock to resolve state.
	result, err := s.queryClient.Query(ctx, text)

	st.mu.Lock()
	defer st.mu.Unlock()

	if err != nil {
		st.state = st.state.FailQuery()
		s.logger.Warn("Recipe query failed",
			zap.String("session_id", cmd.SessionID),
			zap.Error(err),
		)
		return &inbound.QueryResultDTO{FallbackText: FallbackMessage}, nil
	}

	st.state = st.state.ResolveQuery(result)

	if !result.IsStructured() {
		return &inbound.QueryResultDTO{FallbackText: result.Text}, nil
	}

	return &inbound.QueryResultDTO{Recipe: s.recipeToDTO(result.Recipe)}, nil
}

// SelectIngredient opens brand selection for the named ingredient of the
// currently shown recipe.
func (s *Service) SelectIngredient(ctx context.Context, cmd inbound.SelectIngredientCommand) (*inbound.BrandSelectionDTO, error) {
	st := s.session(cmd.SessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.state.Recipe == nil {
		return nil, errors.NewBadRequestError("No recipe is currently shown")
	}

	ing, found := st.state.Recipe.FindIngredient(cmd.IngredientName)
	if !found {
		return nil, errors.NewAppError(errors.CodeNotFound,
			"Ingredient not found",
			cmd.IngredientName,
		)
	}

	next, ok := st.state.SelectIngredient(ing)
	if !ok {
		return nil, errors.NewBadRequestError("Ingredient selection requires a shown recipe")
	}
	st.state = next

	offers, err := s.catalog.Offers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load brand offers")
	}

	dto := &inbound.BrandSelectionDTO{
		Ingredient: inbound.IngredientDTO{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			ImageURL: s.images.Resolve(ing.Name),
		},
	}
	for _, offer := range offers {
		dto.Offers = append(dto.Offers, inbound.BrandOfferDTO{
			Brand:         offer.Brand,
			UnitPrice:     offer.UnitPrice,
			PackageWeight: offer.PackageWeight,
			Store:         offer.Store,
		})
	}

	return dto, nil
}

// CancelBrandSelection closes the brand dialog without adding anything.
func (s *Service) CancelBrandSelection(ctx context.Context, sessionID string) error {
	st := s.session(sessionID)

	st.mu.Lock()
	st.state = st.state.CloseBrandDialog()
	st.mu.Unlock()
	return nil
}

// AddBrandToCart adds the chosen brand offer for the selected ingredient
// and closes the brand dialog. Duplicate (ingredient, brand, store)
// combinations merge into the existing line.
func (s *Service) AddBrandToCart(ctx context.Context, cmd inbound.AddBrandCommand) (*inbound.CartDTO, error) {
	st := s.session(cmd.SessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.state.Selected == nil {
		return nil, errors.NewNoIngredientSelectedError()
	}
	selected := *st.state.Selected

	offers, err := s.catalog.Offers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load brand offers")
	}
	offer, found := offers.FindByBrand(cmd.Brand)
	if !found {
		return nil, errors.NewAppError(errors.CodeNotFound, "Brand not found", cmd.Brand)
	}

	line := cart.Line{
		IngredientName: selected.Name,
		Brand:          offer.Brand,
		UnitPrice:      offer.UnitPrice,
		PackageWeight:  offer.PackageWeight,
		Store:          offer.Store,
		ImageRef:       s.images.Resolve(selected.Name),
	}
	if err := st.cart.AddLine(line); err != nil {
		return nil, errors.Wrap(err, "failed to add cart line")
	}

	st.state = st.state.CloseBrandDialog()
	s.drainCartEvents(cmd.SessionID, st)

	return s.cartToDTO(st.cart), nil
}

// UpdateLineQuantity replaces the quantity of one cart line. Quantities
// below one clamp to one; an out-of-range index is a no-op returning the
// unchanged cart, same as removal.
func (s *Service) UpdateLineQuantity(ctx context.Context, cmd inbound.UpdateQuantityCommand) (*inbound.CartDTO, error) {
	st := s.session(cmd.SessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.cart.UpdateQuantity(cmd.LineIndex, cmd.Quantity); err != nil {
		return s.cartToDTO(st.cart), nil
	}
	s.drainCartEvents(cmd.SessionID, st)

	return s.cartToDTO(st.cart), nil
}

// RemoveLine removes one cart line; out-of-range indices are a no-op.
func (s *Service) RemoveLine(ctx context.Context, cmd inbound.RemoveLineCommand) (*inbound.CartDTO, error) {
	st := s.session(cmd.SessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.cart.RemoveLine(cmd.LineIndex); err != nil {
		return s.cartToDTO(st.cart), nil
	}
	s.drainCartEvents(cmd.SessionID, st)

	return s.cartToDTO(st.cart), nil
}

// OpenCheckout enters the checkout dialog.
func (s *Service) OpenCheckout(ctx context.Context, sessionID string) error {
	st := s.session(sessionID)

	st.mu.Lock()
	st.state = st.state.OpenCheckout()
	st.mu.Unlock()
	return nil
}

// CancelCheckout leaves the checkout dialog with state otherwise unchanged.
func (s *Service) CancelCheckout(ctx context.Context, sessionID string) error {
	st := s.session(sessionID)

	st.mu.Lock()
	st.state = st.state.CancelCheckout()
	st.mu.Unlock()
	return nil
}

// ConfirmCheckout records the order snapshot, empties the cart and resets
// the session. A confirm on an empty cart still resets state but records
// nothing, keeping any previously recorded order.
func (s *Service) ConfirmCheckout(ctx context.Context, sessionID string) (*inbound.OrderDTO, error) {
	st := s.session(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	items := st.cart.Snapshot()
	total := st.cart.Total()

	recorded := false
	if len(items) > 0 {
		placed, err := order.New(items, total)
		if err != nil {
			return nil, errors.Wrap(err, "failed to record order")
		}
		st.lastOrder = placed
		recorded = true

		s.logger.Info("Order recorded",
			zap.String("session_id", sessionID),
			zap.String("order_id", placed.ID().String()),
			zap.Int("items", len(items)),
			zap.Int("total", total),
		)
	}

	st.cart.Clear()
	s.drainCartEvents(sessionID, st)
	st.state = st.state.ConfirmCheckout(s.config.ClearRecipeOnCheckout, recorded)

	if st.lastOrder == nil {
		return nil, errors.NewNoOrderError()
	}
	return s.orderToDTO(st.lastOrder), nil
}

// ToggleOrderSummary flips the order summary flag; no-op before the first
// checkout. The resulting visibility is returned either way.
func (s *Service) ToggleOrderSummary(ctx context.Context, sessionID string) (bool, error) {
	st := s.session(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.state = st.state.ToggleOrderSummary()
	return st.state.ShowOrderSummary, nil
}

// CartView returns the cart panel view: flat lines, store groups, total.
func (s *Service) CartView(ctx context.Context, sessionID string) (*inbound.CartDTO, error) {
	st := s.session(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()
	return s.cartToDTO(st.cart), nil
}

// LastOrder returns the most recent order snapshot.
func (s *Service) LastOrder(ctx context.Context, sessionID string) (*inbound.OrderDTO, error) {
	st := s.session(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.lastOrder == nil {
		return nil, errors.NewNoOrderError()
	}
	return s.orderToDTO(st.lastOrder), nil
}

// SessionView returns the full workflow state for the frontend.
func (s *Service) SessionView(ctx context.Context, sessionID string) (*inbound.SessionDTO, error) {
	st := s.session(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	dto := &inbound.SessionDTO{
		Phase:            string(st.state.Phase),
		BrandDialogOpen:  st.state.BrandDialogOpen,
		CheckoutOpen:     st.state.CheckoutOpen,
		ShowOrderSummary: st.state.ShowOrderSummary,
		CartCount:        st.cart.Len(),
	}
	if st.state.Recipe != nil {
		dto.Recipe = s.recipeToDTO(st.state.Recipe)
	}
	if st.state.Selected != nil {
		dto.SelectedIngredient = st.state.Selected.Name
	}
	return dto, nil
}

// DTO mapping

func (s *Service) recipeToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	dto := &inbound.RecipeDTO{
		Name:         r.Name,
		Instructions: append([]string{}, r.Instructions...),
	}
	for _, ing := range r.Ingredients {
		dto.Ingredients = append(dto.Ingredients, inbound.IngredientDTO{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			ImageURL: s.images.Resolve(ing.Name),
		})
	}
	return dto
}

func (s *Service) cartToDTO(c *cart.Cart) *inbound.CartDTO {
	dto := &inbound.CartDTO{
		Lines: []inbound.CartLineDTO{},
		Total: c.Total(),
	}
	for _, line := range c.Lines() {
		dto.Lines = append(dto.Lines, lineToDTO(line))
	}
	for _, group := range c.GroupByStore() {
		g := inbound.StoreGroupDTO{Store: group.Store}
		for _, line := range group.Lines {
			g.Lines = append(g.Lines, lineToDTO(line))
		}
		dto.Groups = append(dto.Groups, g)
	}
	return dto
}

func (s *Service) orderToDTO(o *order.Order) *inbound.OrderDTO {
	dto := &inbound.OrderDTO{
		ID:       o.ID(),
		Total:    o.Total(),
		PlacedAt: o.PlacedAt(),
	}
	for _, line := range o.Items() {
		dto.Items = append(dto.Items, lineToDTO(line))
	}
	return dto
}

func lineToDTO(line cart.Line) inbound.CartLineDTO {
	return inbound.CartLineDTO{
		ID:             line.ID,
		IngredientName: line.IngredientName,
		Brand:          line.Brand,
		UnitPrice:      line.UnitPrice,
		PackageWeight:  line.PackageWeight,
		Store:          line.Store,
		ImageRef:       line.ImageRef,
		Quantity:       line.Quantity,
		Subtotal:       line.Subtotal(),
	}
}

// drainCartEvents logs pending cart domain events. There is no message
// bus in this deployment; the log stream is the event sink.
func (s *Service) drainCartEvents(sessionID string, st *sessionState) {
	for _, event := range st.cart.Events() {
		s.logger.Debug("Cart event",
			zap.String("session_id", sessionID),
			zap.String("event", event.EventName()),
		)
	}
}
