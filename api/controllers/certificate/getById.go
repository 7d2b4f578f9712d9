package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/type/response"
)

func (ctrl *CertificateController) GetById(c *fiber.Ctx) error {
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
		slog.Error("Error getting certificate", "cert_id", certId, "error", err)
		return response.SendInternalError(c, err)
	}
	if cert == nil || cert.UserID != userId {
		return response.SendNotFound(c, "Certificate not found")
	}

	template, err := ctrl.templates.GetById(cert.TemplateID)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificate found", fiber.Map{
		"certificate": cert,
		"template":    template,
	})
}
