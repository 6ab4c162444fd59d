package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/foodgram-api/internal/common"
)

// Handler exposes shopping cart membership over HTTP.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

// Add handles POST /recipes/{id}/shopping_cart.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, ok := h.identify(w, r)
	if !ok {
		return
	}
	summary, err := h.Svc.Add(r.Context(), userID, recipeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, summary)
}

// Remove handles DELETE /recipes/{id}/shopping_cart.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, ok := h.identify(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Remove(r.Context(), userID, recipeID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := common.UserIDInt64(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", nil)
		return 0, 0, false
	}
	recipeID, err := ParseRecipeID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "recipe not found", nil)
		return 0, 0, false
	}
	return userID, recipeID, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "recipe not found", nil)
	case errors.Is(err, ErrAlreadyInCart):
		common.JSONError(w, http.StatusBadRequest, "ALREADY_IN_CART", "recipe already in shopping cart", nil)
	case errors.Is(err, ErrNotInCart):
		common.JSONError(w, http.StatusBadRequest, "NOT_IN_CART", "recipe not in shopping cart", nil)
	case errors.Is(err, ErrUnknownUser):
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user not found", nil)
	default:
		h.Logger.Error().Err(err).Msg("shopping cart change")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

// ParseRecipeID parses a positive recipe identifier from a path segment.
func ParseRecipeID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("recipe id must be positive")
	}
	return id, nil
}
