package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256HasherDeterministic(t *testing.T) {
	h := SHA256Hasher{}
	first := h.Hash("secret1")
	second := h.Hash("secret1")
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, h.Hash("secret2"))
}

func TestSHA256HasherFormat(t *testing.T) {
	h := SHA256Hasher{}
	digest := h.Hash("password")
	require.Len(t, digest, 64)
	// Known SHA-256 vector, pins the digest format across refactors.
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", digest)
}
