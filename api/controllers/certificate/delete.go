package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/type/response"
)

func (ctrl *CertificateController) Delete(c *fiber.Ctx) error {
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

	deleted, err := ctrl.certs.Delete(certId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Certificate deleted", "cert_id", certId, "user_id", userId)
	return response.SendSuccess(c, "Certificate deleted", deleted)
}
