// Package verifycode builds public verification URLs and their scannable
// QR representations for issued credentials.
package verifycode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Generator derives verification artifacts from a configured frontend
// base URL. It holds no other state and is safe for concurrent use.
type Generator struct {
	frontendBase string
}

func NewGenerator(frontendBase string) *Generator {
	return &Generator{frontendBase: strings.TrimRight(frontendBase, "/")}
}

// URL returns the public verification address for a credential. The
// verification id is the only identifier exposed outside the system.
func (g *Generator) URL(verificationID string) string {
	return fmt.Sprintf("%s/verify/%s", g.frontendBase, verificationID)
}

// QRPNG encodes the verification URL as a PNG image of the given pixel
// size. An encoding failure is a fatal render error for the credential.
func (g *Generator) QRPNG(verificationID string, size int) ([]byte, error) {
	png, err := qrcode.Encode(g.URL(verificationID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
