package routes

import (
	"github.com/gofiber/fiber/v2"
)

func Init(router fiber.Router) {
	api := router.Group("api")

	SetupPublicRoutes(api)
	SetupCertificateRoutes(api)
	SetupTemplateRoutes(api)
	SetupGroupRoutes(api)
	SetupResourceRoutes(api)
}
