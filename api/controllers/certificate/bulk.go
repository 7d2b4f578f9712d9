package certificate_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/internal/spreadsheet"
	"github.com/proofdeck/proofdeck-api/type/response"
)

// Bulk ingests an uploaded spreadsheet and issues one certificate per
// valid row. With async=true the batch runs as a background job and
// the job id comes back immediately.
func (ctrl *CertificateController) Bulk(c *fiber.Ctx) error {
	userId, status := middleware.GetUserFromContext(c)
	if !status {
		slog.Error("Certificate Bulk GetUserId failed")
		return response.SendError(c, "Failed to read user")
	}

	templateId := c.FormValue("template_id")
	if templateId == "" {
		return response.SendFailed(c, "template_id is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.SendFailed(c, "A spreadsheet file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.SendFailed(c, "Failed to open uploaded file")
	}
	defer file.Close()

	table, err := spreadsheet.Read(file, fileHeader.Filename)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	issuer, err := ctrl.users.GetOrProvision(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	template, err := ctrl.templates.GetById(templateId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendFailed(c, "Template not found")
	}
	if !templateVisible(template, userId) {
		return response.SendForbidden(c, "Template belongs to another issuer")
	}

	// A bad destination group fails the whole batch before any row runs.
	groupID, err := resolveGroup(ctrl.groups, c.FormValue("group_id"), userId)
	if errors.Is(err, errGroupDenied) {
		return response.SendFailed(c, "Group not found or not permitted")
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}

	req := &bulk.Request{
		Issuer:   issuer,
		Template: template,
		GroupID:  groupID,
		Table:    table,
		Deliver:  c.FormValue("send_email") == "true",
	}

	if c.FormValue("async") == "true" {
		job := ctrl.coordinator.StartAsync(c.Context(), req, ctrl.jobs)
		slog.Info("Batch issuance queued", "job_id", job.ID(), "user_id", userId, "rows", len(table.Rows))
		return response.SendAccepted(c, "Batch queued", fiber.Map{"job_id": job.ID()})
	}

	report, err := ctrl.coordinator.Process(c.Context(), req)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Batch processed", report)
}
