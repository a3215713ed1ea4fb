package security

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueToken_LengthAndAlphabet(t *testing.T) {
	token, err := NewOpaqueToken(OpaqueTokenBytes)
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, OpaqueTokenBytes)
}

func TestNewOpaqueToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewOpaqueToken(OpaqueTokenBytes)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestNewOpaqueToken_DefaultLength(t *testing.T) {
	token, err := NewOpaqueToken(0)
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, OpaqueTokenBytes)
}

func TestTokenDigest_Deterministic(t *testing.T) {
	assert.Equal(t, TokenDigest("raw-token"), TokenDigest("raw-token"))
	assert.NotEqual(t, TokenDigest("raw-token"), TokenDigest("raw-token-2"))
}

func TestTokenDigest_NotRawToken(t *testing.T) {
	raw, err := NewOpaqueToken(OpaqueTokenBytes)
	require.NoError(t, err)

	digest := TokenDigest(raw)
	assert.NotEqual(t, raw, digest)

	decoded, err := base64.RawURLEncoding.DecodeString(digest)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}
