// Package renderer turns a certificate plus its template into a PDF
// document. Fixed-style families (classic, modern, receipt) are drawn
// from parameterized page layouts; visual templates are painted from
// their decoded canvas. Both paths embed a QR code pointing at the
// public verification page.
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/internal/placeholder"
	"github.com/proofdeck/proofdeck-api/internal/verifycode"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

type Renderer struct {
	verify *verifycode.Generator
	images ImageResolver
	signer *DocumentSigner
}

// New builds a renderer. The image resolver and signer may be nil, in
// which case image elements are skipped and documents stay unsigned.
func New(frontendBase string, images ImageResolver, signer *DocumentSigner) *Renderer {
	return &Renderer{
		verify: verifycode.NewGenerator(frontendBase),
		images: images,
		signer: signer,
	}
}

// Render produces the finished PDF for one certificate. The layout
// style on the template decides the drawing path; an unknown style is
// an error rather than a blank page.
func (r *Renderer) Render(ctx context.Context, cert *model.Certificate, template *model.Template, issuer *model.User) ([]byte, error) {
	if cert == nil || template == nil {
		return nil, fmt.Errorf("certificate and template are required for rendering")
	}

	var (
		pdfBytes []byte
		err      error
	)
	switch {
	case layout.IsVisual(template.LayoutStyle):
		pdfBytes, err = r.renderCanvas(ctx, cert, template)
	default:
		family, ok := layout.FamilyByTag(template.LayoutStyle)
		if !ok {
			return nil, fmt.Errorf("template %s has unknown layout style %q", template.ID, template.LayoutStyle)
		}
		pdfBytes, err = r.renderStyled(ctx, cert, template, issuer, family)
	}
	if err != nil {
		return nil, err
	}

	if r.signer != nil {
		signed, signErr := r.signer.Sign(pdfBytes, cert.ID, cert.VerificationID)
		if signErr != nil {
			slog.Warn("document signing failed, returning unsigned PDF",
				"cert_id", cert.ID,
				"error", signErr)
		} else {
			pdfBytes = signed
		}
	}

	return pdfBytes, nil
}

// Filename names the downloadable document: receipt_<verification_id>.pdf
// for receipt templates, certificate_<verification_id>.pdf otherwise.
func Filename(template *model.Template, cert *model.Certificate) string {
	kind := "certificate"
	if family, ok := layout.FamilyByTag(template.LayoutStyle); ok && family.Receipt {
		kind = "receipt"
	}
	return fmt.Sprintf("%s_%s.pdf", kind, cert.VerificationID)
}

// placeholderValues collects every substitutable field for a
// certificate, extra fields included. qr_code is intentionally absent;
// it is drawn as an image, never as text.
func placeholderValues(cert *model.Certificate) placeholder.Values {
	values := placeholder.Values{
		"recipient_name":  cert.RecipientName,
		"recipient_email": cert.RecipientEmail,
		"course_title":    cert.CourseTitle,
		"issuer_name":     cert.IssuerName,
		"issue_date":      cert.IssueDate.Format("January 2, 2006"),
		"signature":       cert.Signature,
		"verification_id": cert.VerificationID,
		"amount":          amountValue(cert),
	}
	if cert.ExtraFields != nil {
		for _, key := range cert.ExtraFields.Keys() {
			if _, taken := values[key]; taken {
				continue
			}
			v, _ := cert.ExtraFields.Get(key)
			values[key] = v
		}
	}
	return values
}

// coreFont maps a template font family onto one of the PDF core fonts.
func coreFont(family string) string {
	switch f := strings.ToLower(strings.TrimSpace(family)); {
	case strings.Contains(f, "georgia"), strings.Contains(f, "times"), strings.Contains(f, "garamond"), f == "serif":
		return "Times"
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"):
		return "Courier"
	default:
		return "Helvetica"
	}
}

func fontStyle(weight layout.FontWeight, slant layout.FontSlant) string {
	style := ""
	if weight == layout.WeightBold {
		style += "B"
	}
	if slant == layout.SlantItalic {
		style += "I"
	}
	return style
}

// parseHexColor reads #RGB and #RRGGBB strings, falling back to black
// on anything unparseable.
func parseHexColor(s string) (int, int, int) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

func alignString(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "C"
	case layout.AlignRight:
		return "R"
	default:
		return "L"
	}
}
