package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T, secret string, validity time.Duration) *Issuer {
	t.Helper()
	i, err := NewIssuer([]byte(secret), validity)
	require.NoError(t, err)
	return i
}

func payload(t *testing.T, token string) map[string]any {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestNewIssuer_Validation(t *testing.T) {
	_, err := NewIssuer(nil, 0)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewIssuer([]byte("k"), -time.Second)
	assert.ErrorIs(t, err, ErrNegativeValidity)
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "super-secret", time.Hour)

	tok, err := i.Issue("user-123", "alice")
	require.NoError(t, err)

	claims, err := i.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
}

func TestIssue_ClaimsShape(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "secret", 0)
	fixed := time.Unix(1_700_000_000, 0)
	i.now = func() time.Time { return fixed }

	tok, err := i.Issue("u-1", "alice")
	require.NoError(t, err)

	m := payload(t, tok)
	assert.Equal(t, "u-1", m["user_id"])
	assert.Equal(t, "alice", m["sub"])
	assert.EqualValues(t, 1_700_000_000, m["iat"])
	assert.NotContains(t, m, "exp", "zero validity issues no exp")

	header, err := base64.RawURLEncoding.DecodeString(strings.Split(tok, ".")[0])
	require.NoError(t, err)
	assert.Contains(t, string(header), `"alg":"HS256"`)
}

func TestIssue_WithValiditySetsExp(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "secret", 30*time.Minute)
	fixed := time.Unix(1_700_000_000, 0)
	i.now = func() time.Time { return fixed }

	tok, err := i.Issue("u-1", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1_700_000_000+1800, payload(t, tok)["exp"])
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "secret", time.Minute)
	i.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := i.Issue("u1", "alice")
	require.NoError(t, err)

	i.now = time.Now
	_, err = i.Parse(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newIssuer(t, "right-secret", time.Hour).Issue("u2", "bob")
	require.NoError(t, err)

	_, err = newIssuer(t, "wrong-secret", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := newIssuer(t, "k", 0).Parse("not.a.jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newIssuer(t, "k", 0).Parse(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_MissingUserID(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = newIssuer(t, "k", 0).Parse(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
