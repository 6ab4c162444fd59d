package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/foodgram-api/internal/common"
)

const testSecret = "super-secret-key"

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: testSecret, AccessTokenTTL: time.Hour, ClockSkew: 30 * time.Second})
	require.NoError(t, err)
	svc.WithNow(func() time.Time { return now })
	return svc
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
	require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(Config{Secret: "  "})
	require.Error(t, err)
}

func TestIssueAndParseAccessToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	token, expiresAt, err := svc.IssueAccessToken("42")
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), expiresAt)

	userID, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "42", userID)
}

func TestParseAccessTokenExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	token, _, err := svc.IssueAccessToken("42")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return now.Add(2 * time.Hour) })
	_, err = svc.ParseAccessToken(token)
	requireUnauthorized(t, err)
}

func TestParseAccessTokenRejectsAlgorithmMismatch(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)

	tok, err := jwt.NewBuilder().
		Subject("42").
		Issuer(svc.issuer).
		Audience([]string{svc.audience}).
		IssuedAt(now).
		Expiration(now.Add(time.Hour)).
		Build()
	require.NoError(t, err)
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS384, []byte(testSecret)))
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(string(signed))
	requireUnauthorized(t, err)
}

func TestParseAccessTokenRejectsForeignIssuer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	other, err := NewService(Config{Secret: testSecret, Issuer: "someone-else"})
	require.NoError(t, err)
	other.WithNow(func() time.Time { return now })
	token, _, err := other.IssueAccessToken("42")
	require.NoError(t, err)

	_, err = newTestService(t, now).ParseAccessToken(token)
	requireUnauthorized(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, time.Now())
	for _, token := range []string{"", "   ", "not-a-token"} {
		_, err := svc.ParseAccessToken(token)
		requireUnauthorized(t, err)
	}
}

func TestTokenValidatorRejectsWrongAudience(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok, err := jwt.NewBuilder().
		Subject("7").
		Audience([]string{"mobile"}).
		Expiration(now.Add(time.Minute)).
		Build()
	require.NoError(t, err)

	v := TokenValidator{Audience: "foodgram-frontend", Algorithm: jwa.HS256}
	require.Error(t, v.Validate(tok, jwa.HS256, now))
	require.Error(t, TokenValidator{Algorithm: jwa.HS256}.Validate(tok, jwa.HS512, now))
	require.NoError(t, TokenValidator{Audience: "mobile"}.Validate(tok, jwa.HS256, now))
}
