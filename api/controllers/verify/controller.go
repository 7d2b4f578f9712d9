package verify_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	"github.com/proofdeck/proofdeck-api/type/response"
)

type VerifyController struct {
	certs     *certificatemodel.Store
	templates *templatemodel.Store
}

func NewVerifyController(certs *certificatemodel.Store, templates *templatemodel.Store) *VerifyController {
	return &VerifyController{certs: certs, templates: templates}
}

// Verify is the public lookup behind the QR code. It only ever keys on
// the verification id; database primary keys stay private. A revoked
// credential still resolves, explicitly marked revoked.
func (ctrl *VerifyController) Verify(c *fiber.Ctx) error {
	verificationId := c.Params("verificationId")
	if verificationId == "" {
		return response.SendFailed(c, "Verification ID is required")
	}

	cert, err := ctrl.certs.GetByVerificationId(verificationId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		slog.Warn("Verification lookup for unknown id", "verification_id", verificationId)
		return response.SendNotFound(c, "No credential matches this verification ID")
	}

	template, err := ctrl.templates.GetById(cert.TemplateID)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	var templateTitle, layoutStyle string
	if template != nil {
		templateTitle = template.Title
		layoutStyle = template.LayoutStyle
	}

	return response.SendSuccess(c, "Credential found", fiber.Map{
		"verification_id": cert.VerificationID,
		"status":          cert.Status,
		"recipient_name":  cert.RecipientName,
		"course_title":    cert.CourseTitle,
		"issuer_name":     cert.IssuerName,
		"issue_date":      cert.IssueDate.Format("2006-01-02"),
		"extra_fields":    cert.ExtraFields,
		"template_title":  templateTitle,
		"layout_style":    layoutStyle,
	})
}
