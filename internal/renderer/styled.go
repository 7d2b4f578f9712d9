package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// Landscape A4 in points for certificate pages, portrait for receipts.
const (
	certPageW = 842.0
	certPageH = 595.0
)

const (
	defaultPrimary   = "#2563EB"
	defaultSecondary = "#64748B"
	defaultBodyColor = "#333333"
)

var amountPattern = regexp.MustCompile(`[$€£₦]\s?[\d,]+(?:\.\d{2})?`)

// renderStyled draws one of the fixed-style families. The page
// structure is baked in; the template contributes colors, fonts,
// images and optional title/body overrides.
func (r *Renderer) renderStyled(ctx context.Context, cert *model.Certificate, template *model.Template, issuer *model.User, family layout.Family) ([]byte, error) {
	pageW, pageH := certPageW, certPageH
	if family.Receipt {
		pageW, pageH = certPageH, certPageW
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := newPainter(pdf, r.images)

	if template.BackgroundURL != "" {
		box := layout.Box{X: 0, Y: 0, W: pageW, H: pageH}
		if err := p.drawImage(ctx, template.BackgroundURL, box, true); err != nil {
			slog.Warn("skipping template background",
				"template_id", template.ID,
				"src", template.BackgroundURL,
				"error", err)
		}
	}

	page := styledPage{
		painter:  p,
		renderer: r,
		cert:     cert,
		template: template,
		issuer:   issuer,
		family:   family,
		pageW:    pageW,
		pageH:    pageH,
		font:     coreFont(template.FontFamily),
	}

	var err error
	switch {
	case family.Receipt:
		err = page.drawReceipt(ctx)
	case family.Tag == layout.TagClassic:
		err = page.drawClassic(ctx)
	default:
		err = page.drawModern(ctx)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type styledPage struct {
	*painter
	renderer *Renderer
	cert     *model.Certificate
	template *model.Template
	issuer   *model.User
	family   layout.Family
	pageW    float64
	pageH    float64
	font     string
}

func (s *styledPage) title() string {
	if s.template.CustomText != nil && strings.TrimSpace(s.template.CustomText.Title) != "" {
		return s.template.CustomText.Title
	}
	return s.family.DefaultTitle
}

func (s *styledPage) body() string {
	if s.template.CustomText != nil && strings.TrimSpace(s.template.CustomText.Body) != "" {
		return s.template.CustomText.Body
	}
	return s.family.DefaultBody
}

func (s *styledPage) color(value, fallback string) (int, int, int) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return parseHexColor(value)
}

func (s *styledPage) setTextColor(value, fallback string) {
	red, green, blue := s.color(value, fallback)
	s.pdf.SetTextColor(red, green, blue)
}

// centered writes one horizontally centered line at y.
func (s *styledPage) centered(y float64, text string) {
	s.pdf.SetXY(0, y)
	s.pdf.CellFormat(s.pageW, 0, s.tr(text), "", 0, "C", false, 0, "")
}

func (s *styledPage) drawLogo(ctx context.Context, box layout.Box) {
	if s.template.LogoURL == "" {
		return
	}
	if err := s.drawImage(ctx, s.template.LogoURL, box, false); err != nil {
		slog.Warn("skipping template logo",
			"template_id", s.template.ID,
			"src", s.template.LogoURL,
			"error", err)
	}
}

// drawSignature places either the signature text from the certificate
// or the issuer's signature image above a signing line.
func (s *styledPage) drawSignature(ctx context.Context, x, lineY, width float64) {
	switch {
	case s.cert.Signature != "":
		s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
		s.pdf.SetFont(s.font, "I", 16)
		s.pdf.SetXY(x, lineY-22)
		s.pdf.CellFormat(width, 0, s.tr(s.cert.Signature), "", 0, "C", false, 0, "")
	case s.issuer != nil && s.issuer.SignatureImageURL != "":
		box := layout.Box{X: x + width/2 - 45, Y: lineY - 42, W: 90, H: 36}
		if err := s.drawImage(ctx, s.issuer.SignatureImageURL, box, false); err != nil {
			slog.Warn("skipping issuer signature image",
				"issuer_id", s.issuer.ID,
				"error", err)
		}
	}

	red, green, blue := s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(0.8)
	s.pdf.Line(x, lineY, x+width, lineY)

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 9)
	s.pdf.SetXY(x, lineY+8)
	signer := s.cert.IssuerName
	if signer == "" && s.issuer != nil {
		signer = s.issuer.Name
	}
	s.pdf.CellFormat(width, 0, s.tr(signer), "", 0, "C", false, 0, "")
}

func (s *styledPage) drawVerification(x, y, side float64) error {
	box := layout.Box{X: x, Y: y, W: side, H: side}
	if err := s.drawQR(s.renderer, s.cert.VerificationID, box); err != nil {
		return fmt.Errorf("failed to draw verification code: %w", err)
	}

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 6.5)
	s.pdf.SetXY(x-side/2, y+side+4)
	s.pdf.CellFormat(side*2, 0, s.cert.VerificationID, "", 0, "C", false, 0, "")
	return nil
}

func (s *styledPage) drawClassic(ctx context.Context) error {
	// Double rule frame.
	red, green, blue := s.color(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(3)
	s.pdf.Rect(20, 20, s.pageW-40, s.pageH-40, "D")
	red, green, blue = s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(1)
	s.pdf.Rect(28, 28, s.pageW-56, s.pageH-56, "D")

	s.drawLogo(ctx, layout.Box{X: s.pageW/2 - 32, Y: 44, W: 64, H: 64})

	s.setTextColor(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFont(s.font, "B", 34)
	s.centered(134, s.title())

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "I", 13)
	s.centered(186, "This is to certify that")

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "B", 28)
	s.centered(228, s.cert.RecipientName)

	nameWidth := s.pdf.GetStringWidth(s.tr(s.cert.RecipientName)) + 60
	red, green, blue = s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(0.6)
	s.pdf.Line((s.pageW-nameWidth)/2, 248, (s.pageW+nameWidth)/2, 248)

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "", 13)
	s.centered(282, s.body())

	s.setTextColor(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFont(s.font, "B", 21)
	s.centered(318, s.cert.CourseTitle)

	// Date on the left, signature on the right, barcode in the corner.
	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "", 11)
	s.pdf.SetXY(90, 470)
	s.pdf.CellFormat(200, 0, s.tr(s.cert.IssueDate.Format("January 2, 2006")), "", 0, "C", false, 0, "")
	red, green, blue = s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(0.8)
	s.pdf.Line(90, 462, 290, 462)
	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 9)
	s.pdf.SetXY(90, 482)
	s.pdf.CellFormat(200, 0, "Date", "", 0, "C", false, 0, "")

	s.drawSignature(ctx, s.pageW-290, 462, 200)

	return s.drawVerification(s.pageW/2-33, s.pageH-130, 66)
}

func (s *styledPage) drawModern(ctx context.Context) error {
	// Accent band along the left edge.
	red, green, blue := s.color(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFillColor(red, green, blue)
	s.pdf.Rect(0, 0, 16, s.pageH, "F")
	red, green, blue = s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFillColor(red, green, blue)
	s.pdf.Rect(16, 0, 4, s.pageH, "F")

	const left = 72.0

	s.drawLogo(ctx, layout.Box{X: left, Y: 48, W: 56, H: 56})

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 12)
	s.pdf.SetXY(left, 138)
	s.pdf.CellFormat(0, 0, s.tr(strings.ToUpper(s.title())), "", 0, "L", false, 0, "")

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "B", 36)
	s.pdf.SetXY(left, 190)
	s.pdf.CellFormat(0, 0, s.tr(s.cert.RecipientName), "", 0, "L", false, 0, "")

	s.pdf.SetFont(s.font, "", 14)
	s.pdf.SetXY(left, 240)
	s.pdf.CellFormat(0, 0, s.tr(s.body()), "", 0, "L", false, 0, "")

	s.setTextColor(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFont(s.font, "B", 22)
	s.pdf.SetXY(left, 276)
	s.pdf.CellFormat(0, 0, s.tr(s.cert.CourseTitle), "", 0, "L", false, 0, "")

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 11)
	s.pdf.SetXY(left, 320)
	s.pdf.CellFormat(0, 0, s.tr(s.cert.IssueDate.Format("January 2, 2006")), "", 0, "L", false, 0, "")

	s.drawSignature(ctx, left, s.pageH-96, 200)

	return s.drawVerification(s.pageW-150, s.pageH-156, 66)
}

func (s *styledPage) drawReceipt(ctx context.Context) error {
	// Header band.
	red, green, blue := s.color(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFillColor(red, green, blue)
	s.pdf.Rect(0, 0, s.pageW, 100, "F")

	s.pdf.SetTextColor(255, 255, 255)
	s.pdf.SetFont(s.font, "B", 24)
	s.pdf.SetXY(48, 44)
	s.pdf.CellFormat(0, 0, s.tr(s.title()), "", 0, "L", false, 0, "")

	issuerName := s.cert.IssuerName
	if issuerName == "" && s.issuer != nil {
		issuerName = s.issuer.Name
	}
	s.pdf.SetFont(s.font, "", 11)
	s.pdf.SetXY(48, 72)
	s.pdf.CellFormat(0, 0, s.tr(issuerName), "", 0, "L", false, 0, "")

	s.drawLogo(ctx, layout.Box{X: s.pageW - 104, Y: 24, W: 52, H: 52})

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 9)
	s.pdf.SetXY(48, 140)
	s.pdf.CellFormat(0, 0, "RECEIVED FROM", "", 0, "L", false, 0, "")

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "B", 20)
	s.pdf.SetXY(48, 164)
	s.pdf.CellFormat(0, 0, s.tr(s.cert.RecipientName), "", 0, "L", false, 0, "")

	// Amount box.
	red, green, blue = s.color(s.template.PrimaryColor, defaultPrimary)
	s.pdf.SetFillColor(red, green, blue)
	s.pdf.RoundedRect(48, 196, s.pageW-96, 72, 8, "1234", "F")
	s.pdf.SetTextColor(255, 255, 255)
	s.pdf.SetFont(s.font, "B", 28)
	s.pdf.SetXY(48, 232)
	s.pdf.CellFormat(s.pageW-96, 0, s.tr(s.receiptAmount()), "", 0, "C", false, 0, "")

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "", 12)
	s.pdf.SetXY(48, 296)
	s.pdf.CellFormat(0, 0, s.tr(fmt.Sprintf("%s %s", s.body(), s.cert.CourseTitle)), "", 0, "L", false, 0, "")

	y := 340.0
	y = s.receiptRow(y, "Date", s.cert.IssueDate.Format("January 2, 2006"))
	y = s.receiptRow(y, "Receipt No", s.cert.VerificationID)
	if issuerName != "" {
		y = s.receiptRow(y, "Issued By", issuerName)
	}
	if s.cert.ExtraFields != nil {
		for _, key := range s.cert.ExtraFields.Keys() {
			if key == "amount" {
				continue
			}
			value, _ := s.cert.ExtraFields.Get(key)
			y = s.receiptRow(y, capitalizeLabel(key), value)
		}
	}

	if err := s.drawVerification(s.pageW/2-40, s.pageH-200, 80); err != nil {
		return err
	}

	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 8)
	s.centered(s.pageH-96, "Scan to verify this receipt")
	s.centered(s.pageH-82, s.renderer.verify.URL(s.cert.VerificationID))
	return nil
}

func (s *styledPage) receiptRow(y float64, label, value string) float64 {
	s.setTextColor(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetFont(s.font, "", 10)
	s.pdf.SetXY(48, y)
	s.pdf.CellFormat(140, 0, s.tr(label), "", 0, "L", false, 0, "")

	s.setTextColor(s.template.BodyFontColor, defaultBodyColor)
	s.pdf.SetFont(s.font, "B", 10)
	s.pdf.SetXY(188, y)
	s.pdf.CellFormat(0, 0, s.tr(value), "", 0, "L", false, 0, "")

	red, green, blue := s.color(s.template.SecondaryColor, defaultSecondary)
	s.pdf.SetDrawColor(red, green, blue)
	s.pdf.SetLineWidth(0.3)
	s.pdf.Line(48, y+12, s.pageW-48, y+12)
	return y + 28
}

func (s *styledPage) receiptAmount() string {
	return amountValue(s.cert)
}

// amountValue resolves the displayed amount: the explicit extra_fields
// value first, then a currency figure embedded in the course title,
// then a plain PAID stamp. The same chain backs the amount token on
// visual templates.
func amountValue(cert *model.Certificate) string {
	if cert.ExtraFields != nil {
		if v, ok := cert.ExtraFields.Get("amount"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if match := amountPattern.FindString(cert.CourseTitle); match != "" {
		return match
	}
	return "PAID"
}

func capitalizeLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
