package template_controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// Delete removes a template and cascades to its issued certificates.
func (ctrl *TemplateController) Delete(c *fiber.Ctx) error {
	templateId := c.Params("templateId")
	if templateId == "" {
		return response.SendFailed(c, "Template ID is required")
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	template, err := ctrl.templates.GetById(templateId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendNotFound(c, "Template not found")
	}
	if template.UserID == nil || *template.UserID != userId {
		return response.SendForbidden(c, "Template belongs to another issuer")
	}

	deleted, err := ctrl.templates.Delete(templateId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	// Uploaded assets go with the template. A failed removal only
	// leaves an orphaned object behind, never a broken response.
	for _, object := range uploadedAssets(deleted) {
		if err := util.DeleteObject(c.Context(), *common.Config.BucketResource, object); err != nil {
			slog.Warn("Failed to remove template asset",
				"template_id", templateId,
				"object", object,
				"error", err)
		}
	}

	slog.Info("Template deleted with its certificates", "template_id", templateId, "user_id", userId)
	return response.SendSuccess(c, "Template deleted", deleted)
}

// uploadedAssets lists the template's images that live in our object
// store. External URLs and data URLs are left alone.
func uploadedAssets(template *model.Template) []string {
	var objects []string
	for _, src := range []string{template.BackgroundURL, template.LogoURL} {
		if strings.HasPrefix(src, "/uploads/") {
			objects = append(objects, src)
		}
	}
	return objects
}
