// Package layout defines the declarative canvas model for visual
// templates and the registry of fixed-style layout families. The wire
// shape (duck-typed element maps) is decoded exactly once, here, into a
// closed set of element types; the renderer never re-parses attributes.
package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Default canvas size, a landscape A4 page in points.
const (
	DefaultCanvasWidth  = 842.0
	DefaultCanvasHeight = 595.0
)

type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Box is the absolutely positioned bounds of one element. Rotation is
// clockwise degrees around the box origin.
type Box struct {
	X        float64
	Y        float64
	W        float64
	H        float64
	Rotation float64
}

func (b Box) Bounds() Box { return b }

// Element is one positioned item on a visual canvas. The concrete types
// are Text, Image and Shape; elements draw in slice order, later ones
// over earlier ones.
type Element interface {
	Bounds() Box
}

type Text struct {
	Box
	Content    string
	FontFamily string
	FontSize   float64
	Fill       string
	Align      Align
	Weight     FontWeight
	Slant      FontSlant
}

type Image struct {
	Box
	Src string
}

type Shape struct {
	Box
	Fill         string
	Stroke       string
	StrokeWidth  float64
	CornerRadius float64
}

type Canvas struct {
	Width  float64
	Height float64
}

type Background struct {
	Fill  string
	Image string
}

// Data is a fully decoded visual layout.
type Data struct {
	Canvas     Canvas
	Background Background
	Elements   []Element
}

type rawCanvas struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type rawBackground struct {
	Fill  string `json:"fill"`
	Image string `json:"image"`
}

type rawElement struct {
	Type         string   `json:"type"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`
	Rotation     float64  `json:"rotation"`
	Text         string   `json:"text"`
	FontFamily   string   `json:"fontFamily"`
	FontSize     float64  `json:"fontSize"`
	Fill         string   `json:"fill"`
	Align        string   `json:"align"`
	FontStyle    string   `json:"fontStyle"`
	Src          string   `json:"src"`
	Stroke       string   `json:"stroke"`
	StrokeWidth  float64  `json:"strokeWidth"`
	CornerRadius float64  `json:"cornerRadius"`
}

type rawData struct {
	Canvas     *rawCanvas    `json:"canvas"`
	Background *rawBackground `json:"background"`
	Elements   []rawElement  `json:"elements"`
}

// Decode parses a layout_data document. An element missing its geometry
// or carrying an unknown type makes the whole layout malformed; the
// caller treats that as a fatal render error, never a partial page.
func Decode(data []byte) (*Data, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("visual template has no layout data")
	}

	raw := new(rawData)
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("malformed layout data: %w", err)
	}

	out := &Data{
		Canvas: Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
	}
	if raw.Canvas != nil {
		if raw.Canvas.Width != nil && *raw.Canvas.Width > 0 {
			out.Canvas.Width = *raw.Canvas.Width
		}
		if raw.Canvas.Height != nil && *raw.Canvas.Height > 0 {
			out.Canvas.Height = *raw.Canvas.Height
		}
	}
	if raw.Background != nil {
		out.Background = Background{Fill: raw.Background.Fill, Image: raw.Background.Image}
	}

	for i, el := range raw.Elements {
		if el.X == nil || el.Y == nil || el.Width == nil || el.Height == nil {
			return nil, fmt.Errorf("element %d (%s) is missing geometry", i, el.Type)
		}
		box := Box{X: *el.X, Y: *el.Y, W: *el.Width, H: *el.Height, Rotation: el.Rotation}

		switch el.Type {
		case "text", "placeholder":
			fontSize := el.FontSize
			if fontSize <= 0 {
				fontSize = 16
			}
			out.Elements = append(out.Elements, &Text{
				Box:        box,
				Content:    el.Text,
				FontFamily: el.FontFamily,
				FontSize:   fontSize,
				Fill:       el.Fill,
				Align:      parseAlign(el.Align),
				Weight:     parseWeight(el.FontStyle),
				Slant:      parseSlant(el.FontStyle),
			})
		case "image":
			out.Elements = append(out.Elements, &Image{Box: box, Src: el.Src})
		case "shape":
			out.Elements = append(out.Elements, &Shape{
				Box:          box,
				Fill:         el.Fill,
				Stroke:       el.Stroke,
				StrokeWidth:  el.StrokeWidth,
				CornerRadius: el.CornerRadius,
			})
		default:
			return nil, fmt.Errorf("element %d has unknown type %q", i, el.Type)
		}
	}

	return out, nil
}

func parseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// Free-form fontStyle values like "bold italic" are folded into the two
// explicit enums at decode time.
func parseWeight(style string) FontWeight {
	if strings.Contains(strings.ToLower(style), "bold") {
		return WeightBold
	}
	return WeightNormal
}

func parseSlant(style string) FontSlant {
	if strings.Contains(strings.ToLower(style), "italic") {
		return SlantItalic
	}
	return SlantNormal
}
