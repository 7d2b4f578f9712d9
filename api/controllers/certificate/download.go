package certificate_controller

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/internal/renderer"
	"github.com/proofdeck/proofdeck-api/type/response"
)

// Download renders the credential on demand and streams the PDF.
func (ctrl *CertificateController) Download(c *fiber.Ctx) error {
	certId := c.Params("certId")
	if certId == "" {
		return response.SendFailed(c, "Certificate ID is required")
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	cert, err := ctrl.certs.GetById(certId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil || cert.UserID != userId {
		return response.SendNotFound(c, "Certificate not found")
	}

	template, err := ctrl.templates.GetById(cert.TemplateID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendFailed(c, "Template for this certificate no longer exists")
	}

	issuer, err := ctrl.users.GetById(cert.UserID)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	pdfBytes, err := ctrl.renderer.Render(c.Context(), cert, template, issuer)
	if err != nil {
		slog.Error("Certificate render failed", "cert_id", certId, "error", err)
		return response.SendInternalError(c, err)
	}

	filename := renderer.Filename(template, cert)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
