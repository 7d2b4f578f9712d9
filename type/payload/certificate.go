package payload

type CreateCertificatePayload struct {
	TemplateID     string            `json:"template_id" validate:"required"`
	GroupID        *string           `json:"group_id"`
	RecipientName  string            `json:"recipient_name" validate:"required"`
	RecipientEmail string            `json:"recipient_email" validate:"omitempty,email"`
	CourseTitle    string            `json:"course_title" validate:"required"`
	IssuerName     string            `json:"issuer_name"`
	IssueDate      string            `json:"issue_date" validate:"required"`
	Signature      string            `json:"signature"`
	ExtraFields    map[string]string `json:"extra_fields"`
	SendEmail      bool              `json:"send_email"`
}

type UpdateStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=valid revoked"`
}

type SendBulkPayload struct {
	CertificateIDs []string `json:"certificate_ids" validate:"required,min=1"`
}
