package shoppinglist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/noah-isme/foodgram-api/internal/common"
)

// Handler serves shopping list downloads.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

// Download renders the authenticated user's cart as ?format=txt (default) or ?format=pdf.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := common.UserIDInt64(ctx)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized", nil)
		return
	}

	doc, err := h.Svc.Build(ctx, userID, r.URL.Query().Get("format"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			common.JSONError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported format", map[string]any{
				"supported": []string{TokenText, TokenPaginated},
			})
			return
		}
		h.Logger.Error().Err(err).Int64("user_id", userID).Msg("build shopping list")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to build shopping list", nil)
		return
	}

	headers := w.Header()
	headers.Set("Content-Type", doc.ContentType)
	headers.Set("Content-Disposition", doc.ContentDisposition())
	headers.Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
