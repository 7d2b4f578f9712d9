package template_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func (ctrl *TemplateController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateTemplatePayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		errs := util.GetValidationErrors(err)
		return response.SendFailed(c, errs[0])
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		slog.Error("Template Create GetUserId failed")
		return response.SendError(c, "Failed to read user")
	}

	// Visual templates must carry a decodable canvas up front; a bad
	// layout should fail at save time, not at first render.
	if layout.IsVisual(body.LayoutStyle) {
		if _, err := layout.Decode(body.LayoutData); err != nil {
			return response.SendFailed(c, err.Error())
		}
	}

	template := &model.Template{
		ID:             uuid.New().String(),
		UserID:         &userId,
		Title:          body.Title,
		LayoutStyle:    body.LayoutStyle,
		BackgroundURL:  body.BackgroundURL,
		LogoURL:        body.LogoURL,
		PrimaryColor:   body.PrimaryColor,
		SecondaryColor: body.SecondaryColor,
		BodyFontColor:  body.BodyFontColor,
		FontFamily:     body.FontFamily,
		LayoutData:     body.LayoutData,
	}
	if body.CustomTitle != "" || body.CustomBody != "" {
		template.CustomText = &model.CustomText{Title: body.CustomTitle, Body: body.CustomBody}
	}

	if err := ctrl.templates.Create(template); err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Template created", "template_id", template.ID, "user_id", userId, "style", template.LayoutStyle)
	return response.SendCreated(c, "Template created", template)
}
