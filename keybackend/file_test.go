package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/stowgate/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTokenFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "plain", content: "s3cret", want: "s3cret"},
		{name: "trailing newline", content: "s3cret\n", want: "s3cret"},
		{name: "surrounding whitespace", content: "  s3cret \r\n", want: "s3cret"},
		{name: "inner spaces kept", content: "two words\n", want: "two words"},
		{name: "empty", content: "", wantErr: keybackend.ErrEmptyToken},
		{name: "whitespace only", content: " \n\t\n", wantErr: keybackend.ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := keybackend.LoadTokenFromFile(writeTestFile(t, tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTokenFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := keybackend.LoadTokenFromFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "admin-token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
