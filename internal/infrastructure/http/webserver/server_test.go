package webserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dishcart/assistant/internal/application/session"
	"github.com/dishcart/assistant/internal/domain/catalog"
	"github.com/dishcart/assistant/internal/domain/recipe"
	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/infrastructure/monitoring"
	"github.com/dishcart/assistant/internal/ports/inbound"
	"github.com/dishcart/assistant/pkg/healthcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// stubQueryClient returns a canned result per query text
type stubQueryClient struct {
	result recipe.QueryResult
	err    error
}

func (s *stubQueryClient) Query(ctx context.Context, text string) (recipe.QueryResult, error) {
	return s.result, s.err
}

type stubCatalog struct{}

func (stubCatalog) Offers(ctx context.Context) (catalog.Catalog, error) {
	return catalog.Catalog{
		{Brand: "India Gate", UnitPrice: 120, PackageWeight: "1kg", Store: "Amazon"},
		{Brand: "Daawat", UnitPrice: 100, PackageWeight: "1kg", Store: "JioMart"},
	}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(name string) string { return "/images/placeholder.jpg" }

// WebServerTestSuite exercises the session API end to end over the router
type WebServerTestSuite struct {
	suite.Suite
	server *WebServer
	query  *stubQueryClient
	cookie *http.Cookie
}

func (suite *WebServerTestSuite) SetupTest() {
	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.App.Version = "test"
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Session.CookieName = "dishcart-session"
	cfg.Session.TTL = time.Hour

	log := zaptest.NewLogger(suite.T())
	suite.query = &stubQueryClient{}

	svc := session.NewService(suite.query, stubCatalog{}, stubResolver{}, session.Config{
		ClearRecipeOnCheckout: true,
	}, log)

	suite.server = NewWebServer(
		cfg,
		log,
		svc,
		NewSessionStore(cfg, log),
		healthcheck.New("test", log),
		monitoring.NewMetricsCollector(log),
	)
	suite.cookie = nil
}

// do performs a request against the router, carrying the session cookie
// across calls the way a browser would.
func (suite *WebServerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if suite.cookie != nil {
		req.AddCookie(suite.cookie)
	}

	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "dishcart-session" {
			suite.cookie = c
		}
	}
	return rec
}

func (suite *WebServerTestSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), v))
}

// showRecipe drives the session into the recipe-shown state
func (suite *WebServerTestSuite) showRecipe() {
	suite.query.result = recipe.Structured(&recipe.Recipe{
		Name:         "Vegetable Biryani",
		Instructions: []string{"Rinse.", "Steam."},
		Ingredients: []recipe.Ingredient{
			{Name: "Basmati Rice", Quantity: "2 cups"},
			{Name: "Onion", Quantity: "2 large"},
		},
	})
	suite.query.err = nil

	rec := suite.do(http.MethodPost, "/api/v1/chat", map[string]string{"user_message": "biryani"})
	require.Equal(suite.T(), http.StatusOK, rec.Code)
}

// addToCart selects an ingredient and adds the given brand
func (suite *WebServerTestSuite) addToCart(ingredient, brand string) inbound.CartDTO {
	rec := suite.do(http.MethodPost, "/api/v1/ingredient/select", map[string]string{"name": ingredient})
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"brand": brand})
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var cart inbound.CartDTO
	suite.decode(rec, &cart)
	return cart
}

func (suite *WebServerTestSuite) TestHealthEndpoints() {
	assert.Equal(suite.T(), http.StatusOK, suite.do(http.MethodGet, "/live", nil).Code)
	assert.Equal(suite.T(), http.StatusOK, suite.do(http.MethodGet, "/ready", nil).Code)
}

func (suite *WebServerTestSuite) TestSessionCookieIsIssuedOnce() {
	suite.do(http.MethodGet, "/api/v1/session", nil)
	require.NotNil(suite.T(), suite.cookie, "First API contact must set the session cookie")
	first := suite.cookie.Value

	suite.do(http.MethodGet, "/api/v1/session", nil)
	assert.Equal(suite.T(), first, suite.cookie.Value)
}

func (suite *WebServerTestSuite) TestSubmitQuery() {
	suite.Run("structured recipe", func() {
		suite.showRecipe()

		var view inbound.SessionDTO
		rec := suite.do(http.MethodGet, "/api/v1/session", nil)
		suite.decode(rec, &view)

		assert.Equal(suite.T(), "recipe_shown", view.Phase)
		require.NotNil(suite.T(), view.Recipe)
		assert.Equal(suite.T(), "Vegetable Biryani", view.Recipe.Name)
	})

	suite.Run("empty message is rejected", func() {
		rec := suite.do(http.MethodPost, "/api/v1/chat", map[string]string{"user_message": ""})

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("assistant failure degrades to fallback text", func() {
		suite.query.err = fmt.Errorf("connection refused")

		rec := suite.do(http.MethodPost, "/api/v1/chat", map[string]string{"user_message": "biryani"})

		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var result inbound.QueryResultDTO
		suite.decode(rec, &result)
		assert.Nil(suite.T(), result.Recipe)
		assert.Equal(suite.T(), session.FallbackMessage, result.FallbackText)
	})
}

func (suite *WebServerTestSuite) TestCartFlow() {
	suite.showRecipe()

	cart := suite.addToCart("Basmati Rice", "India Gate")
	require.Len(suite.T(), cart.Lines, 1)
	assert.Equal(suite.T(), 120, cart.Total)

	// Same brand again merges.
	cart = suite.addToCart("Basmati Rice", "India Gate")
	require.Len(suite.T(), cart.Lines, 1)
	assert.Equal(suite.T(), 2, cart.Lines[0].Quantity)

	// Quantity below one clamps to one.
	rec := suite.do(http.MethodPut, "/api/v1/cart/items/0", map[string]int{"quantity": 0})
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.decode(rec, &cart)
	assert.Equal(suite.T(), 1, cart.Lines[0].Quantity)

	// Grouped view contains every line.
	cart = suite.addToCart("Onion", "Daawat")
	rec = suite.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.decode(rec, &cart)
	require.Len(suite.T(), cart.Groups, 2)
	assert.Equal(suite.T(), "Amazon", cart.Groups[0].Store)
	assert.Equal(suite.T(), "JioMart", cart.Groups[1].Store)

	// Removal.
	rec = suite.do(http.MethodDelete, "/api/v1/cart/items/1", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.decode(rec, &cart)
	assert.Len(suite.T(), cart.Lines, 1)
}

func (suite *WebServerTestSuite) TestInvalidLineIndex() {
	suite.showRecipe()
	suite.addToCart("Basmati Rice", "India Gate")

	// Out-of-range index leaves the cart untouched.
	rec := suite.do(http.MethodPut, "/api/v1/cart/items/9", map[string]int{"quantity": 2})
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var cart inbound.CartDTO
	suite.decode(rec, &cart)
	require.Len(suite.T(), cart.Lines, 1)
	assert.Equal(suite.T(), 1, cart.Lines[0].Quantity)

	// A non-numeric index never reaches the cart.
	rec = suite.do(http.MethodPut, "/api/v1/cart/items/abc", map[string]int{"quantity": 2})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *WebServerTestSuite) TestCheckoutFlow() {
	suite.showRecipe()
	suite.addToCart("Basmati Rice", "India Gate")

	require.Equal(suite.T(), http.StatusNoContent, suite.do(http.MethodPost, "/api/v1/checkout/open", nil).Code)

	rec := suite.do(http.MethodPost, "/api/v1/checkout/confirm", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var order inbound.OrderDTO
	suite.decode(rec, &order)
	assert.Equal(suite.T(), 120, order.Total)
	require.Len(suite.T(), order.Items, 1)

	// Cart is empty and the recipe has been cleared.
	var cart inbound.CartDTO
	suite.decode(suite.do(http.MethodGet, "/api/v1/cart", nil), &cart)
	assert.Empty(suite.T(), cart.Lines)

	var view inbound.SessionDTO
	suite.decode(suite.do(http.MethodGet, "/api/v1/session", nil), &view)
	assert.Equal(suite.T(), "idle", view.Phase)
	assert.Nil(suite.T(), view.Recipe)

	// The order stays retrievable.
	rec = suite.do(http.MethodGet, "/api/v1/orders/last", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	var last inbound.OrderDTO
	suite.decode(rec, &last)
	assert.Equal(suite.T(), order.ID, last.ID)
}

func (suite *WebServerTestSuite) TestLastOrderWithoutCheckout() {
	rec := suite.do(http.MethodGet, "/api/v1/orders/last", nil)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *WebServerTestSuite) TestToggleOrderSummary() {
	suite.showRecipe()
	suite.addToCart("Basmati Rice", "India Gate")
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodPost, "/api/v1/checkout/confirm", nil).Code)

	rec := suite.do(http.MethodPost, "/api/v1/orders/toggle", nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var toggle map[string]bool
	suite.decode(rec, &toggle)
	assert.True(suite.T(), toggle["show_order_summary"])
}

// TestWebServerTestSuite runs the test suite
func TestWebServerTestSuite(t *testing.T) {
	suite.Run(t, new(WebServerTestSuite))
}
