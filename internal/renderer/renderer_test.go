package renderer

import (
	"context"
	"testing"
	"time"

	"github.com/proofdeck/proofdeck-api/type/shared"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCertificate() *model.Certificate {
	return &model.Certificate{
		ID:             "cert-1",
		UserID:         "user-1",
		TemplateID:     "tmpl-1",
		RecipientName:  "Jane Doe",
		RecipientEmail: "jane@example.com",
		CourseTitle:    "Intro to Go",
		IssuerName:     "Acme Academy",
		IssueDate:      time.Date(2024, time.October, 22, 0, 0, 0, 0, time.UTC),
		VerificationID: "ab12cd34-0000-0000-0000-000000000000",
		Status:         model.StatusValid,
	}
}

func TestRenderStyledFamilies(t *testing.T) {
	r := New("https://app.example.com", nil, nil)
	issuer := &model.User{ID: "user-1", Name: "Acme Academy"}

	for _, style := range []string{model.LayoutClassic, model.LayoutModern, model.LayoutReceipt} {
		t.Run(style, func(t *testing.T) {
			template := &model.Template{ID: "tmpl-1", Title: "Default", LayoutStyle: style}

			pdf, err := r.Render(context.Background(), testCertificate(), template, issuer)
			require.NoError(t, err)
			assert.True(t, len(pdf) > 500)
			assert.Equal(t, "%PDF-", string(pdf[:5]))
		})
	}
}

func TestRenderReceiptAmount(t *testing.T) {
	cases := []struct {
		name   string
		extras func() *shared.OrderedFields
		course string
		want   string
	}{
		{
			name: "explicit amount",
			extras: func() *shared.OrderedFields {
				f := shared.NewOrderedFields()
				f.Set("amount", "$150.00")
				return f
			},
			course: "Workshop",
			want:   "$150.00",
		},
		{
			name:   "amount in course title",
			extras: func() *shared.OrderedFields { return nil },
			course: "Workshop ($2,500.00)",
			want:   "$2,500.00",
		},
		{
			name:   "no amount anywhere",
			extras: func() *shared.OrderedFields { return nil },
			course: "Workshop",
			want:   "PAID",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cert := testCertificate()
			cert.CourseTitle = tc.course
			cert.ExtraFields = tc.extras()

			page := styledPage{cert: cert}
			assert.Equal(t, tc.want, page.receiptAmount())
		})
	}
}

func TestPlaceholderAmountAlwaysBound(t *testing.T) {
	cert := testCertificate()
	values := placeholderValues(cert)
	assert.Equal(t, "PAID", values["amount"])

	cert.CourseTitle = "Workshop ($150.00)"
	values = placeholderValues(cert)
	assert.Equal(t, "$150.00", values["amount"])

	cert.ExtraFields = shared.NewOrderedFields()
	cert.ExtraFields.Set("amount", "$99.00")
	values = placeholderValues(cert)
	assert.Equal(t, "$99.00", values["amount"])
}

func TestRenderCanvas(t *testing.T) {
	r := New("https://app.example.com", nil, nil)

	layoutData := []byte(`{
		"canvas": {"width": 842, "height": 595},
		"background": {"fill": "#FAF7F0"},
		"elements": [
			{"type": "shape", "x": 40, "y": 40, "width": 762, "height": 515, "stroke": "#2563EB", "strokeWidth": 2},
			{"type": "text", "x": 100, "y": 200, "width": 642, "height": 60, "text": "Awarded to {{recipient_name}}", "fontSize": 28, "align": "center", "fontStyle": "bold"},
			{"type": "text", "x": 371, "y": 420, "width": 100, "height": 100, "text": "{{qr_code}}"}
		]
	}`)
	template := &model.Template{ID: "tmpl-1", LayoutStyle: model.LayoutVisual, LayoutData: layoutData}

	pdf, err := r.Render(context.Background(), testCertificate(), template, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}

func TestStripQRToken(t *testing.T) {
	assert.Equal(t, "", stripQRToken("{{qr_code}}"))
	assert.Equal(t, "Scan to verify", stripQRToken("Scan to verify {{qr_code}}"))
	assert.Equal(t, "Scan to verify", stripQRToken("{{qr_code}} Scan to verify"))
	assert.Equal(t, "Plain text", stripQRToken("Plain text"))
}

func TestRenderCanvasMixedQRCaption(t *testing.T) {
	r := New("https://app.example.com", nil, nil)

	layoutData := []byte(`{
		"canvas": {"width": 842, "height": 595},
		"elements": [
			{"type": "text", "x": 371, "y": 400, "width": 120, "height": 140, "text": "Scan to verify {{qr_code}}", "fontSize": 9, "align": "center"}
		]
	}`)
	template := &model.Template{ID: "tmpl-1", LayoutStyle: model.LayoutVisual, LayoutData: layoutData}

	pdf, err := r.Render(context.Background(), testCertificate(), template, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}

func TestRenderCanvasErrors(t *testing.T) {
	r := New("https://app.example.com", nil, nil)
	cert := testCertificate()

	// Visual template with no layout data is a fatal render error.
	_, err := r.Render(context.Background(), cert, &model.Template{ID: "t", LayoutStyle: model.LayoutVisual}, nil)
	assert.Error(t, err)

	// Unknown layout style never falls back to a blank page.
	_, err = r.Render(context.Background(), cert, &model.Template{ID: "t", LayoutStyle: "gothic"}, nil)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	cert := testCertificate()

	name := Filename(&model.Template{LayoutStyle: model.LayoutModern}, cert)
	assert.Equal(t, "certificate_"+cert.VerificationID+".pdf", name)

	name = Filename(&model.Template{LayoutStyle: model.LayoutReceipt}, cert)
	assert.Equal(t, "receipt_"+cert.VerificationID+".pdf", name)
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
	}{
		{"#2563EB", 37, 99, 235},
		{"#fff", 255, 255, 255},
		{"333333", 51, 51, 51},
		{"", 0, 0, 0},
		{"nonsense", 0, 0, 0},
	}

	for _, tc := range cases {
		red, green, blue := parseHexColor(tc.in)
		assert.Equal(t, []int{tc.r, tc.g, tc.b}, []int{red, green, blue}, "input %q", tc.in)
	}
}
