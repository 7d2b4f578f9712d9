package routes

import (
	"github.com/gofiber/fiber/v2"
	template_controller "github.com/proofdeck/proofdeck-api/api/controllers/template"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	"github.com/proofdeck/proofdeck-api/common"
)

func SetupTemplateRoutes(router fiber.Router) {
	templateCtrl := template_controller.NewTemplateController(templatemodel.NewStore(common.Gorm))

	templateGroup := router.Group("template")

	templateGroup.Use(middleware.Jwt())

	templateGroup.Get("", templateCtrl.List)
	templateGroup.Post("", templateCtrl.Create)
	templateGroup.Get(":templateId", templateCtrl.GetById)
	templateGroup.Put(":templateId", templateCtrl.Update)
	templateGroup.Delete(":templateId", templateCtrl.Delete)
}
