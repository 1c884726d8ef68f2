// Package chat provides the HTTP client for the external recipe
// assistant endpoint.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dishcart/assistant/internal/domain/recipe"
	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/ports/outbound"
	"github.com/dishcart/assistant/pkg/errors"
	"go.uber.org/zap"
)

// Client handles communication with the recipe assistant endpoint.
// Every call is independent: no retries, no caching.
type Client struct {
	endpoint   string
	userID     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new assistant client instance
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.RecipeQueryClient {
	return &Client{
		endpoint: cfg.ChatEndpoint(),
		userID:   cfg.Chat.UserID,
		httpClient: &http.Client{
			Timeout: cfg.Chat.Timeout,
		},
		logger: logger.Named("chat-client"),
	}
}

// queryRequest is the wire format of a query submission
type queryRequest struct {
	UserID      string `json:"user_id"`
	UserMessage string `json:"user_message"`
}

// envelope is the wrapped response shape: the assistant message is itself
// a JSON-encoded string that may contain a recipe
type envelope struct {
	AssistantMessage string `json:"assistant_message"`
}

// Query sends the text to the assistant and decodes the reply into a
// tagged query result. The endpoint may answer with an envelope whose
// assistant_message wraps a JSON-encoded recipe, a direct recipe object,
// or a bare string; the shape is decided here, once, so downstream code
// never re-inspects payloads.
func (c *Client) Query(ctx context.Context, text string) (recipe.QueryResult, error) {
	body, err := json.Marshal(queryRequest{
		UserID:      c.userID,
		UserMessage: text,
	})
	if err != nil {
		return recipe.QueryResult{}, errors.Wrap(err, "failed to marshal query request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return recipe.QueryResult{}, errors.Wrap(err, "failed to create query request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Assistant request",
		zap.String("url", c.endpoint),
		zap.Int("query_len", len(text)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return recipe.QueryResult{}, errors.NewExternalServiceError("recipe assistant", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return recipe.QueryResult{}, errors.NewExternalServiceError("recipe assistant", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("Assistant error response",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_len", len(payload)),
		)
		return recipe.QueryResult{}, errors.NewExternalServiceError(
			"recipe assistant",
			fmt.Errorf("status %d", resp.StatusCode),
		)
	}

	return decodeResult(payload)
}

// decodeResult turns the raw response body into a tagged query result.
func decodeResult(payload []byte) (recipe.QueryResult, error) {
	// Envelope shape first: {assistant_message: "..."} where the inner
	// string is itself JSON-encoded.
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil && env.AssistantMessage != "" {
		return decodeMessage([]byte(env.AssistantMessage)), nil
	}

	// Bare JSON string: unstructured assistant text.
	var text string
	if err := json.Unmarshal(payload, &text); err == nil {
		return recipe.Unstructured(text), nil
	}

	// Direct recipe object.
	if result, ok := tryDecodeRecipe(payload); ok {
		return result, nil
	}

	return recipe.QueryResult{}, errors.NewMalformedResponseError(
		fmt.Errorf("unrecognized response shape"),
	)
}

// decodeMessage decodes the inner assistant message. Non-recipe content
// degrades to unstructured text rather than an error.
func decodeMessage(message []byte) recipe.QueryResult {
	if result, ok := tryDecodeRecipe(message); ok {
		return result
	}

	var text string
	if err := json.Unmarshal(message, &text); err == nil {
		return recipe.Unstructured(text)
	}

	return recipe.Unstructured(string(message))
}

// tryDecodeRecipe attempts the structured recipe shape. A decoded object
// without a recipe name does not count as a recipe.
func tryDecodeRecipe(payload []byte) (recipe.QueryResult, bool) {
	var r recipe.Recipe
	if err := json.Unmarshal(payload, &r); err != nil {
		return recipe.QueryResult{}, false
	}
	if r.Name == "" {
		return recipe.QueryResult{}, false
	}
	return recipe.Structured(&r), true
}
