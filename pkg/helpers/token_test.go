package helpers

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOneTimeToken(t *testing.T) {
	a, err := GenOneTimeToken()
	require.NoError(t, err)
	b, err := GenOneTimeToken()
	require.NoError(t, err)

	assert.Len(t, a, OneTimeTokenBytes*2)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"abc123":          "abc123",
		"  abc123\n":      "abc123",
		"abc%20def":       "abc def",
		"%E2%9C%93ok":     "✓ok",
		"bad%zzescape":    "bad%zzescape",
		" padded%41 ":     "paddedA",
		"already decoded": "already decoded",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeToken(in), in)
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}
