package verifycode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	g := NewGenerator("https://proofdeck.example")
	assert.Equal(t, "https://proofdeck.example/verify/abc-123", g.URL("abc-123"))

	// Trailing slash on the base must not double up
	g = NewGenerator("https://proofdeck.example/")
	assert.Equal(t, "https://proofdeck.example/verify/abc-123", g.URL("abc-123"))
}

func TestQRPNG(t *testing.T) {
	g := NewGenerator("https://proofdeck.example")

	png, err := g.QRPNG("abc-123", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output should be a PNG")

	// Same id encodes the same URL content deterministically
	again, err := g.QRPNG("abc-123", 128)
	require.NoError(t, err)
	assert.Equal(t, png, again)
}
