package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserIDInt64(t *testing.T) {
	_, ok := UserIDInt64(context.Background())
	require.False(t, ok)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		_, ok := UserIDInt64(WithUserID(context.Background(), raw))
		require.False(t, ok, raw)
	}

	id, ok := UserIDInt64(WithUserID(context.Background(), " 17 "))
	require.True(t, ok)
	require.Equal(t, int64(17), id)
}

func TestWriteError(t *testing.T) {
	base := NewAppError("NOT_IN_CART", "recipe is not in the shopping cart", http.StatusBadRequest, errors.New("absent"))
	wrapped := fmt.Errorf("remove: %w", base.WithDetails(map[string]any{"recipe_id": 3}))

	rr := httptest.NewRecorder()
	WriteError(rr, wrapped)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "NOT_IN_CART", body.Error.Code)
	require.Equal(t, map[string]any{"recipe_id": float64(3)}, body.Error.Details)
	require.Nil(t, base.Details)

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("connection reset"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "connection reset")
}
