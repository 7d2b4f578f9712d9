package payload

import "encoding/json"

type CreateTemplatePayload struct {
	Title          string          `json:"title" validate:"required"`
	LayoutStyle    string          `json:"layout_style" validate:"required,oneof=classic modern receipt visual"`
	BackgroundURL  string          `json:"background_url"`
	LogoURL        string          `json:"logo_url"`
	PrimaryColor   string          `json:"primary_color"`
	SecondaryColor string          `json:"secondary_color"`
	BodyFontColor  string          `json:"body_font_color"`
	FontFamily     string          `json:"font_family"`
	CustomTitle    string          `json:"custom_title"`
	CustomBody     string          `json:"custom_body"`
	LayoutData     json.RawMessage `json:"layout_data"`
}

type UpdateTemplatePayload struct {
	Title          *string         `json:"title"`
	BackgroundURL  *string         `json:"background_url"`
	LogoURL        *string         `json:"logo_url"`
	PrimaryColor   *string         `json:"primary_color"`
	SecondaryColor *string         `json:"secondary_color"`
	BodyFontColor  *string         `json:"body_font_color"`
	FontFamily     *string         `json:"font_family"`
	CustomTitle    *string         `json:"custom_title"`
	CustomBody     *string         `json:"custom_body"`
	LayoutData     json.RawMessage `json:"layout_data"`
}
