package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/stowgate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveToken_InlineOnly(t *testing.T) {
	t.Parallel()

	token, err := keybackend.ResolveToken(keybackend.TokenConfig{Token: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "inline", token)
}

func TestResolveToken_FileWins(t *testing.T) {
	t.Parallel()

	token, err := keybackend.ResolveToken(keybackend.TokenConfig{
		Token: "inline",
		File:  writeTestFile(t, "from-file\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

func TestResolveToken_NeitherSet(t *testing.T) {
	t.Parallel()

	token, err := keybackend.ResolveToken(keybackend.TokenConfig{})
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestResolveToken_FileErrors(t *testing.T) {
	t.Parallel()

	_, err := keybackend.ResolveToken(keybackend.TokenConfig{
		Token: "inline",
		File:  filepath.Join(t.TempDir(), "missing"),
	})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = keybackend.ResolveToken(keybackend.TokenConfig{File: writeTestFile(t, "\n")})
	assert.ErrorIs(t, err, keybackend.ErrEmptyToken)
}
