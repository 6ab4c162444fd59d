package favorites

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/foodgram-api/internal/cart"
	"github.com/noah-isme/foodgram-api/internal/common"
)

type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

// Add handles POST /recipes/{id}/favorite.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, ok := identify(w, r)
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

// Remove handles DELETE /recipes/{id}/favorite.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, recipeID, ok := identify(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Remove(r.Context(), userID, recipeID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func identify(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := common.UserIDInt64(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", nil)
		return 0, 0, false
	}
	recipeID, err := cart.ParseRecipeID(chi.URLParam(r, "id"))
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
	case errors.Is(err, ErrAlreadyFavorited):
		common.JSONError(w, http.StatusBadRequest, "ALREADY_FAVORITED", "recipe already in favorites", nil)
	case errors.Is(err, ErrNotFavorited):
		common.JSONError(w, http.StatusBadRequest, "NOT_FAVORITED", "recipe not in favorites", nil)
	case errors.Is(err, ErrUnknownUser):
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user not found", nil)
	default:
		h.Logger.Error().Err(err).Msg("favorites change")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
