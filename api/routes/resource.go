package routes

import (
	"github.com/gofiber/fiber/v2"
	resource_controller "github.com/proofdeck/proofdeck-api/api/controllers/resource"
	"github.com/proofdeck/proofdeck-api/api/middleware"
)

func SetupResourceRoutes(router fiber.Router) {
	resourceGroup := router.Group("resource")

	resourceGroup.Use(middleware.Jwt())

	resourceGroup.Post("", resource_controller.Upload)
	resourceGroup.Get("*", resource_controller.Fetch)
}
