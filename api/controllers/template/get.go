package template_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/type/response"
)

func (ctrl *TemplateController) GetById(c *fiber.Ctx) error {
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
	if !template.IsPublic && template.UserID != nil && *template.UserID != userId {
		return response.SendForbidden(c, "Template belongs to another issuer")
	}

	return response.SendSuccess(c, "Template found", template)
}

// List returns the issuer's templates plus the public built-ins.
func (ctrl *TemplateController) List(c *fiber.Ctx) error {
	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	templates, err := ctrl.templates.ListVisible(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Templates found", templates)
}
