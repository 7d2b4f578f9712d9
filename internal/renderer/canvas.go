package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/internal/placeholder"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// renderCanvas paints a visual template: background first, then every
// element in slice order. Malformed layout data fails the whole render;
// an unresolvable image only loses that element.
func (r *Renderer) renderCanvas(ctx context.Context, cert *model.Certificate, template *model.Template) ([]byte, error) {
	data, err := layout.Decode(template.LayoutData)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", template.ID, err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: data.Canvas.Width, Ht: data.Canvas.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := newPainter(pdf, r.images)

	if data.Background.Fill != "" {
		red, green, blue := parseHexColor(data.Background.Fill)
		pdf.SetFillColor(red, green, blue)
		pdf.Rect(0, 0, data.Canvas.Width, data.Canvas.Height, "F")
	}
	if data.Background.Image != "" {
		box := layout.Box{X: 0, Y: 0, W: data.Canvas.Width, H: data.Canvas.Height}
		if err := p.drawImage(ctx, data.Background.Image, box, true); err != nil {
			slog.Warn("skipping canvas background image",
				"template_id", template.ID,
				"src", data.Background.Image,
				"error", err)
		}
	}

	values := placeholderValues(cert)
	for i, element := range data.Elements {
		switch e := element.(type) {
		case *layout.Shape:
			p.drawShape(e)
		case *layout.Image:
			if err := p.drawImage(ctx, e.Src, e.Box, false); err != nil {
				slog.Warn("skipping canvas image element",
					"template_id", template.ID,
					"element", i,
					"src", e.Src,
					"error", err)
			}
		case *layout.Text:
			if placeholder.Contains(e.Content, "qr_code") {
				// The code is an image, so it cannot be inlined into the
				// text run; surrounding text becomes a caption under it.
				caption := placeholder.Resolve(stripQRToken(e.Content), values)
				box := e.Box
				if caption != "" {
					captionH := e.FontSize * 1.4
					if captionH <= 0 {
						captionH = 14
					}
					if box.H > captionH {
						box.H -= captionH
					}
				}
				if err := p.drawQR(r, cert.VerificationID, box); err != nil {
					return nil, fmt.Errorf("failed to draw verification code: %w", err)
				}
				if caption != "" {
					captionEl := *e
					captionEl.Y = box.Y + box.H
					captionEl.H = e.H - box.H
					p.drawText(&captionEl, caption)
				}
				continue
			}
			p.drawText(e, placeholder.Resolve(e.Content, values))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// painter wraps one gofpdf page with image registration bookkeeping
// and a codepage translator for the core fonts.
type painter struct {
	pdf        *gofpdf.Fpdf
	images     ImageResolver
	registered map[string]gofpdf.ImageOptions
	tr         func(string) string
}

func newPainter(pdf *gofpdf.Fpdf, images ImageResolver) *painter {
	return &painter{
		pdf:        pdf,
		images:     images,
		registered: map[string]gofpdf.ImageOptions{},
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// withRotation runs draw inside a transform rotated around the box
// origin. Canvas rotation is clockwise; gofpdf rotates counterclockwise.
func (p *painter) withRotation(box layout.Box, draw func()) {
	if box.Rotation == 0 {
		draw()
		return
	}
	p.pdf.TransformBegin()
	p.pdf.TransformRotate(-box.Rotation, box.X, box.Y)
	draw()
	p.pdf.TransformEnd()
}

func (p *painter) drawText(e *layout.Text, content string) {
	red, green, blue := parseHexColor(e.Fill)
	p.pdf.SetTextColor(red, green, blue)
	p.pdf.SetFont(coreFont(e.FontFamily), fontStyle(e.Weight, e.Slant), e.FontSize)

	p.withRotation(e.Box, func() {
		p.pdf.SetXY(e.X, e.Y)
		p.pdf.MultiCell(e.W, e.FontSize*1.3, p.tr(content), "", alignString(e.Align), false)
	})
}

func (p *painter) drawShape(e *layout.Shape) {
	style := ""
	if e.Fill != "" {
		red, green, blue := parseHexColor(e.Fill)
		p.pdf.SetFillColor(red, green, blue)
		style += "F"
	}
	if e.Stroke != "" {
		red, green, blue := parseHexColor(e.Stroke)
		p.pdf.SetDrawColor(red, green, blue)
		width := e.StrokeWidth
		if width <= 0 {
			width = 1
		}
		p.pdf.SetLineWidth(width)
		style += "D"
	}
	if style == "" {
		return
	}

	p.withRotation(e.Box, func() {
		if e.CornerRadius > 0 {
			p.pdf.RoundedRect(e.X, e.Y, e.W, e.H, e.CornerRadius, "1234", style)
		} else {
			p.pdf.Rect(e.X, e.Y, e.W, e.H, style)
		}
	})
}

// drawImage resolves and places an image. With cover set, the image is
// scaled to fill the box and clipped, keeping its aspect ratio.
func (p *painter) drawImage(ctx context.Context, src string, box layout.Box, cover bool) error {
	if p.images == nil {
		return fmt.Errorf("no image resolver configured")
	}

	data, err := p.images.Resolve(ctx, src)
	if err != nil {
		return err
	}
	return p.drawImageBytes(src, data, box, cover)
}

func (p *painter) drawImageBytes(name string, data []byte, box layout.Box, cover bool) error {
	options, ok := p.registered[name]
	if !ok {
		imageType := detectImageType(data)
		if imageType == "" {
			return fmt.Errorf("unsupported image format")
		}
		options = gofpdf.ImageOptions{ImageType: imageType}
		p.pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(data))
		if p.pdf.Err() {
			return fmt.Errorf("failed to register image: %w", p.pdf.Error())
		}
		p.registered[name] = options
	}

	p.withRotation(box, func() {
		if !cover {
			p.pdf.ImageOptions(name, box.X, box.Y, box.W, box.H, false, options, 0, "")
			return
		}

		info := p.pdf.GetImageInfo(name)
		scale := math.Max(box.W/info.Width(), box.H/info.Height())
		drawW := info.Width() * scale
		drawH := info.Height() * scale
		offsetX := box.X - (drawW-box.W)/2
		offsetY := box.Y - (drawH-box.H)/2

		p.pdf.ClipRect(box.X, box.Y, box.W, box.H, false)
		p.pdf.ImageOptions(name, offsetX, offsetY, drawW, drawH, false, options, 0, "")
		p.pdf.ClipEnd()
	})
	return nil
}

// stripQRToken removes the qr_code token from a text element so the
// rest of the content can render around the drawn code.
func stripQRToken(content string) string {
	return strings.TrimSpace(strings.ReplaceAll(content, "{{qr_code}}", ""))
}

// drawQR renders the verification barcode as a square centered in the
// element's box.
func (p *painter) drawQR(r *Renderer, verificationID string, box layout.Box) error {
	side := math.Min(box.W, box.H)
	pixels := int(side) * 3
	if pixels < 256 {
		pixels = 256
	}

	png, err := r.verify.QRPNG(verificationID, pixels)
	if err != nil {
		return err
	}

	qrBox := layout.Box{
		X:        box.X + (box.W-side)/2,
		Y:        box.Y + (box.H-side)/2,
		W:        side,
		H:        side,
		Rotation: box.Rotation,
	}
	return p.drawImageBytes("qr_"+verificationID, png, qrBox, false)
}
