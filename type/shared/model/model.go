// Package model holds the persistent records backing the issuance core.
package model

import (
	"time"

	"github.com/proofdeck/proofdeck-api/type/shared"
)

const (
	StatusValid   = "valid"
	StatusRevoked = "revoked"
)

// Layout family tags. The first three are fixed-style pages with
// parameterized colors and fonts; "visual" templates carry their whole
// layout in LayoutData.
const (
	LayoutClassic = "classic"
	LayoutModern  = "modern"
	LayoutReceipt = "receipt"
	LayoutVisual  = "visual"
)

// User is an issuer account. CertQuota is the number of credentials the
// issuer may still create; it is only ever changed through a guarded
// conditional update so it cannot go negative.
type User struct {
	ID                string    `gorm:"column:id;primaryKey" json:"id"`
	Name              string    `gorm:"column:name;not null" json:"name"`
	Email             string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	CertQuota         int       `gorm:"column:cert_quota;not null;default:10" json:"cert_quota"`
	SignatureImageURL string    `gorm:"column:signature_image_url" json:"signature_image_url"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Template is a reusable visual definition. A nil/empty UserID marks a
// globally public built-in. Visual templates always carry LayoutData;
// fixed-style templates never need it.
type Template struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	UserID        *string   `gorm:"column:user_id;index" json:"user_id"`
	Title         string    `gorm:"column:title;not null" json:"title"`
	LayoutStyle   string    `gorm:"column:layout_style;not null;default:modern" json:"layout_style"`
	BackgroundURL string    `gorm:"column:background_url" json:"background_url"`
	LogoURL       string    `gorm:"column:logo_url" json:"logo_url"`
	PrimaryColor  string    `gorm:"column:primary_color;default:#2563EB" json:"primary_color"`
	SecondaryColor string   `gorm:"column:secondary_color;default:#64748B" json:"secondary_color"`
	BodyFontColor string    `gorm:"column:body_font_color;default:#333333" json:"body_font_color"`
	FontFamily    string    `gorm:"column:font_family;default:Georgia" json:"font_family"`
	IsPublic      bool      `gorm:"column:is_public;not null;default:false" json:"is_public"`
	CustomText    *CustomText `gorm:"column:custom_text;type:json;serializer:json" json:"custom_text"`
	LayoutData    []byte    `gorm:"column:layout_data;type:json" json:"layout_data,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Template) TableName() string { return "templates" }

// CustomText overrides the fixed-style families' default title and body
// strings.
type CustomText struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// Group is a named bucket of certificates, usually one per batch upload.
type Group struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;index;not null" json:"user_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Group) TableName() string { return "groups" }

// Certificate is one issued credential document. VerificationID is the
// only identifier ever exposed publicly and is immutable after creation.
type Certificate struct {
	ID             string                `gorm:"column:id;primaryKey" json:"id"`
	UserID         string                `gorm:"column:user_id;index;not null" json:"user_id"`
	TemplateID     string                `gorm:"column:template_id;index;not null" json:"template_id"`
	GroupID        *string               `gorm:"column:group_id;index" json:"group_id"`
	RecipientName  string                `gorm:"column:recipient_name;not null" json:"recipient_name"`
	RecipientEmail string                `gorm:"column:recipient_email" json:"recipient_email"`
	CourseTitle    string                `gorm:"column:course_title;not null" json:"course_title"`
	IssuerName     string                `gorm:"column:issuer_name" json:"issuer_name"`
	IssueDate      time.Time             `gorm:"column:issue_date;type:date;not null" json:"issue_date"`
	Signature      string                `gorm:"column:signature" json:"signature"`
	ExtraFields    *shared.OrderedFields `gorm:"column:extra_fields;type:json" json:"extra_fields"`
	VerificationID string                `gorm:"column:verification_id;uniqueIndex;not null" json:"verification_id"`
	Status         string                `gorm:"column:status;not null;default:valid" json:"status"`
	SentAt         *time.Time            `gorm:"column:sent_at" json:"sent_at"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Certificate) TableName() string { return "certificates" }
