package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/type/response"
)

func (ctrl *CertificateController) GetByUser(c *fiber.Ctx) error {
	userId, status := middleware.GetUserFromContext(c)
	if !status {
		slog.Error("Certificate GetByUser GetUserId failed")
		return response.SendError(c, "Failed to read user")
	}

	certs, err := ctrl.certs.GetByUser(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificates found", certs)
}
