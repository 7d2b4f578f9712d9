package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
)

// UpdateStatus flips a credential between valid and revoked. Status is
// the only mutable field after issuance.
func (ctrl *CertificateController) UpdateStatus(c *fiber.Ctx) error {
	certId := c.Params("certId")
	if certId == "" {
		return response.SendFailed(c, "Certificate ID is required")
	}

	body := new(payload.UpdateStatusPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		errs := util.GetValidationErrors(err)
		return response.SendFailed(c, errs[0])
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

	updated, err := ctrl.certs.UpdateStatus(certId, body.Status)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Certificate status updated", "cert_id", certId, "status", body.Status)
	return response.SendSuccess(c, "Certificate status updated", updated)
}
