package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/foodgram-api/internal/common"
)

func protectedHandler(t *testing.T, m Middleware) http.Handler {
	t.Helper()
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.UserID(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id))
	}))
}

func TestRequireAuthBearer(t *testing.T) {
	svc := newTestService(t, time.Now())
	token, _, err := svc.IssueAccessToken("9")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	protectedHandler(t, Middleware{Tokens: svc}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "9", rr.Body.String())
}

func TestRequireAuthCookie(t *testing.T) {
	svc := newTestService(t, time.Now())
	token, _, err := svc.IssueAccessToken("11")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rr := httptest.NewRecorder()
	protectedHandler(t, Middleware{Tokens: svc, AccessCookie: "access_token"}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "11", rr.Body.String())
}

func TestRequireAuthRejects(t *testing.T) {
	svc := newTestService(t, time.Now())
	cases := map[string]string{
		"missing": "",
		"invalid": "Bearer nope",
		"scheme":  "Basic dXNlcjpwYXNz",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			protectedHandler(t, Middleware{Tokens: svc}).ServeHTTP(rr, req)

			require.Equal(t, http.StatusUnauthorized, rr.Code)
			var body common.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			require.Equal(t, "UNAUTHORIZED", body.Error.Code)
		})
	}
}
