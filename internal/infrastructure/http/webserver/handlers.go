package webserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dishcart/assistant/internal/ports/inbound"
	"github.com/dishcart/assistant/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Request payloads

type submitQueryRequest struct {
	Message string `json:"user_message" validate:"required"`
}

type selectIngredientRequest struct {
	Name string `json:"name" validate:"required"`
}

type addBrandRequest struct {
	Brand string `json:"brand" validate:"required"`
}

// Quantity is not tagged required: zero and negative values are
// legal input and clamp to the cart minimum.
type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *WebServer) handleSubmitQuery(w http.ResponseWriter, r *http.Request) {
	var req submitQueryRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := s.sessions.SubmitQuery(r.Context(), inbound.SubmitQueryCommand{
		SessionID: sessionID(r),
		Text:      req.Message,
	})
	if err != nil {
		s.metrics.RecordQuery("rejected", time.Since(start))
		s.writeError(w, r, err)
		return
	}

	outcome := "structured"
	if result.Recipe == nil {
		outcome = "fallback"
	}
	s.metrics.RecordQuery(outcome, time.Since(start))

	s.writeJSON(w, http.StatusOK, result)
}

func (s *WebServer) handleSessionView(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.SessionView(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *WebServer) handleSelectIngredient(w http.ResponseWriter, r *http.Request) {
	var req selectIngredientRequest
	if !s.decode(w, r, &req) {
		return
	}

	selection, err := s.sessions.SelectIngredient(r.Context(), inbound.SelectIngredientCommand{
		SessionID:      sessionID(r),
		IngredientName: req.Name,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, selection)
}

func (s *WebServer) handleCancelBrandSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.CancelBrandSelection(r.Context(), sessionID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *WebServer) handleCartView(w http.ResponseWriter, r *http.Request) {
	cart, err := s.sessions.CartView(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *WebServer) handleAddBrand(w http.ResponseWriter, r *http.Request) {
	var req addBrandRequest
	if !s.decode(w, r, &req) {
		return
	}

	cart, err := s.sessions.AddBrandToCart(r.Context(), inbound.AddBrandCommand{
		SessionID: sessionID(r),
		Brand:     req.Brand,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordCartAdd()
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *WebServer) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	index, ok := s.lineIndex(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if !s.decode(w, r, &req) {
		return
	}

	cart, err := s.sessions.UpdateLineQuantity(r.Context(), inbound.UpdateQuantityCommand{
		SessionID: sessionID(r),
		LineIndex: index,
		Quantity:  req.Quantity,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *WebServer) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	index, ok := s.lineIndex(w, r)
	if !ok {
		return
	}

	cart, err := s.sessions.RemoveLine(r.Context(), inbound.RemoveLineCommand{
		SessionID: sessionID(r),
		LineIndex: index,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *WebServer) handleOpenCheckout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.OpenCheckout(r.Context(), sessionID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *WebServer) handleCancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.CancelCheckout(r.Context(), sessionID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *WebServer) handleConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	order, err := s.sessions.ConfirmCheckout(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordCheckout(order.Total)
	s.writeJSON(w, http.StatusOK, order)
}

func (s *WebServer) handleLastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.sessions.LastOrder(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, order)
}

func (s *WebServer) handleToggleOrderSummary(w http.ResponseWriter, r *http.Request) {
	visible, err := s.sessions.ToggleOrderSummary(r.Context(), sessionID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"show_order_summary": visible})
}

// Helpers

// lineIndex parses the {index} route parameter
func (s *WebServer) lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	param := chi.URLParam(r, "index")
	index, err := strconv.Atoi(param)
	if err != nil {
		s.writeError(w, r, errors.NewAppError(errors.CodeInvalidCartIndex,
			"Invalid cart line index",
			param,
		))
		return 0, false
	}
	return index, true
}

// decode unmarshals and validates a JSON request body
func (s *WebServer) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, r, errors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.writeError(w, r, errors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (s *WebServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *WebServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	requestID := middleware.GetReqID(r.Context())
	s.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
