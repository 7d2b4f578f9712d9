package routes

import (
	"github.com/gofiber/fiber/v2"
	group_controller "github.com/proofdeck/proofdeck-api/api/controllers/group"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	"github.com/proofdeck/proofdeck-api/common"
)

func SetupGroupRoutes(router fiber.Router) {
	groupCtrl := group_controller.NewGroupController(groupmodel.NewStore(common.Gorm))

	groupGroup := router.Group("group")

	groupGroup.Use(middleware.Jwt())

	groupGroup.Get("", groupCtrl.List)
	groupGroup.Post("", groupCtrl.Create)
	groupGroup.Delete(":groupId", groupCtrl.Delete)
}
