package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/type/response"
)

func (ctrl *CertificateController) BulkStatus(c *fiber.Ctx) error {
	jobId := c.Params("jobId")
	if jobId == "" {
		return response.SendFailed(c, "Job ID is required")
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	job, err := ctrl.jobs.Get(c.Context(), jobId)
	if err != nil {
		slog.Error("Error getting batch job", "job_id", jobId, "error", err)
		return response.SendInternalError(c, err)
	}
	if job == nil || job.IssuerID != userId {
		return response.SendNotFound(c, "Job not found")
	}

	return response.SendSuccess(c, "Job status", job)
}
