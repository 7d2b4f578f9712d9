package template_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func (ctrl *TemplateController) Update(c *fiber.Ctx) error {
	templateId := c.Params("templateId")
	if templateId == "" {
		return response.SendFailed(c, "Template ID is required")
	}

	body := new(payload.UpdateTemplatePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
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

	if body.Title != nil {
		template.Title = *body.Title
	}
	if body.BackgroundURL != nil {
		template.BackgroundURL = *body.BackgroundURL
	}
	if body.LogoURL != nil {
		template.LogoURL = *body.LogoURL
	}
	if body.PrimaryColor != nil {
		template.PrimaryColor = *body.PrimaryColor
	}
	if body.SecondaryColor != nil {
		template.SecondaryColor = *body.SecondaryColor
	}
	if body.BodyFontColor != nil {
		template.BodyFontColor = *body.BodyFontColor
	}
	if body.FontFamily != nil {
		template.FontFamily = *body.FontFamily
	}
	if body.CustomTitle != nil || body.CustomBody != nil {
		custom := template.CustomText
		if custom == nil {
			custom = &model.CustomText{}
		}
		if body.CustomTitle != nil {
			custom.Title = *body.CustomTitle
		}
		if body.CustomBody != nil {
			custom.Body = *body.CustomBody
		}
		template.CustomText = custom
	}
	if len(body.LayoutData) > 0 {
		if !layout.IsVisual(template.LayoutStyle) {
			return response.SendFailed(c, "Only visual templates carry layout data")
		}
		if _, err := layout.Decode(body.LayoutData); err != nil {
			return response.SendFailed(c, err.Error())
		}
		template.LayoutData = body.LayoutData
	}

	if err := ctrl.templates.Update(template); err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Template updated", "template_id", templateId, "user_id", userId)
	return response.SendSuccess(c, "Template updated", template)
}
