package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_RejectsBadCost(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(3)
	require.Error(t, err)

	_, err = NewBcryptHasher(32)
	require.Error(t, err)
}

func TestHash_VerifyRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	for _, p := range []string{"11AAaa!!", "Ää1!aaaA", strings.Repeat("x", 72)} {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.True(t, h.Verify(p, hash), "password %q must verify against its own hash", p)
	}
}

func TestHash_FreshSaltEachCall(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	a, err := h.Hash("11AAaa!!")
	require.NoError(t, err)
	b, err := h.Hash("11AAaa!!")
	require.NoError(t, err)

	// different stored values, both verify
	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("11AAaa!!", a))
	assert.True(t, h.Verify("11AAaa!!", b))
}

func TestHash_DoesNotContainPlaintext(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	hash, err := h.Hash("11AAaa!!")
	require.NoError(t, err)
	assert.NotContains(t, hash, "11AAaa!!")
}

func TestVerify_Mismatch(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	hash, err := h.Hash("11AAaa!!")
	require.NoError(t, err)

	assert.False(t, h.Verify("11AAaa!?", hash))
	assert.False(t, h.Verify("", hash))
}

func TestVerify_MalformedHashReturnsFalse(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	for _, bad := range []string{"", "not-a-hash", "$2a$04$short", "$argon2id$v=19$m=1,t=1,p=1$AA$AA"} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("11AAaa!!", bad))
		})
	}
}

func TestVerify_HashFromOtherHasherCost(t *testing.T) {
	t.Parallel()

	other, err := bcrypt.GenerateFromPassword([]byte("11AAaa!!"), bcrypt.MinCost+1)
	require.NoError(t, err)

	h := newTestHasher(t)
	assert.True(t, h.Verify("11AAaa!!", string(other)))
}

func TestDummyHash_IsValidAndMatchesNothing(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	dummy := h.DummyHash()
	cost, err := bcrypt.Cost([]byte(dummy))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.False(t, h.Verify("11AAaa!!", dummy))
	assert.False(t, h.Verify("", dummy))
}
