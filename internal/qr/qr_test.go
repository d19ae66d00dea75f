package qr

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		"https://kclean.id/trash-transaction/ABC123",
		"VCHR-550e8400-e29b-41d4-a716-446655440000",
	}

	for _, content := range cases {
		path := filepath.Join(t.TempDir(), "code.png")
		require.NoError(t, EncodePNG(content, path, 256))

		decoded, err := DecodeImage(path)
		require.NoError(t, err)
		require.Equal(t, content, decoded)
	}
}

func TestDecodeImageMissingFile(t *testing.T) {
	_, err := DecodeImage(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
