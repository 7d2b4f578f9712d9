package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	data := []byte(`{
		"canvas": {"width": 800, "height": 600},
		"background": {"fill": "#FFFFFF"},
		"elements": [
			{"type": "text", "x": 10, "y": 20, "width": 300, "height": 40,
			 "text": "Awarded to {{recipient_name}}", "fontSize": 24,
			 "fontFamily": "Georgia", "fill": "#111111", "align": "center",
			 "fontStyle": "bold italic", "rotation": 15},
			{"type": "image", "x": 0, "y": 0, "width": 100, "height": 100, "src": "/uploads/logo.png"},
			{"type": "shape", "x": 5, "y": 5, "width": 790, "height": 590,
			 "fill": "transparent", "stroke": "#2563EB", "strokeWidth": 3, "cornerRadius": 8},
			{"type": "placeholder", "x": 700, "y": 480, "width": 90, "height": 90, "text": "{{qr_code}}"}
		]
	}`)

	d, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 800.0, d.Canvas.Width)
	assert.Equal(t, 600.0, d.Canvas.Height)
	assert.Equal(t, "#FFFFFF", d.Background.Fill)
	require.Len(t, d.Elements, 4)

	text, ok := d.Elements[0].(*Text)
	require.True(t, ok)
	assert.Equal(t, "Awarded to {{recipient_name}}", text.Content)
	assert.Equal(t, 24.0, text.FontSize)
	assert.Equal(t, AlignCenter, text.Align)
	assert.Equal(t, WeightBold, text.Weight)
	assert.Equal(t, SlantItalic, text.Slant)
	assert.Equal(t, 15.0, text.Rotation)

	img, ok := d.Elements[1].(*Image)
	require.True(t, ok)
	assert.Equal(t, "/uploads/logo.png", img.Src)

	shape, ok := d.Elements[2].(*Shape)
	require.True(t, ok)
	assert.Equal(t, 3.0, shape.StrokeWidth)
	assert.Equal(t, 8.0, shape.CornerRadius)

	// "placeholder" decodes as a text element
	_, ok = d.Elements[3].(*Text)
	assert.True(t, ok)
}

func TestDecodeDefaultCanvas(t *testing.T) {
	d, err := Decode([]byte(`{"elements": []}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvasWidth, d.Canvas.Width)
	assert.Equal(t, DefaultCanvasHeight, d.Canvas.Height)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"invalid json", `{"elements": [`},
		{"missing geometry", `{"elements": [{"type": "text", "x": 1, "y": 2, "width": 10}]}`},
		{"unknown element type", `{"elements": [{"type": "video", "x": 1, "y": 2, "width": 10, "height": 10}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDefaultFontSize(t *testing.T) {
	d, err := Decode([]byte(`{"elements": [{"type": "text", "x": 0, "y": 0, "width": 10, "height": 10, "text": "hi"}]}`))
	require.NoError(t, err)
	text := d.Elements[0].(*Text)
	assert.Equal(t, 16.0, text.FontSize)
	assert.Equal(t, AlignLeft, text.Align)
	assert.Equal(t, WeightNormal, text.Weight)
}

func TestRegistry(t *testing.T) {
	for _, tag := range []string{TagClassic, TagModern, TagReceipt} {
		f, ok := FamilyByTag(tag)
		require.True(t, ok, tag)
		assert.Equal(t, tag, f.Tag)
		assert.NotEmpty(t, f.DefaultTitle)
	}

	receipt, _ := FamilyByTag(TagReceipt)
	assert.True(t, receipt.Receipt)

	classic, _ := FamilyByTag(TagClassic)
	assert.False(t, classic.Receipt)

	_, ok := FamilyByTag(TagVisual)
	assert.False(t, ok, "visual is not a fixed-style family")
	assert.True(t, IsVisual(TagVisual))
	assert.True(t, KnownTag(TagVisual))
	assert.True(t, KnownTag(TagClassic))
	assert.False(t, KnownTag("holographic"))
}
