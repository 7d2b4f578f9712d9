package routes

import (
	"github.com/gofiber/fiber/v2"
	verify_controller "github.com/proofdeck/proofdeck-api/api/controllers/verify"
	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	"github.com/proofdeck/proofdeck-api/common"
)

// SetupPublicRoutes registers the unauthenticated verification lookup
// that the QR codes point at.
func SetupPublicRoutes(router fiber.Router) {
	verifyCtrl := verify_controller.NewVerifyController(
		certificatemodel.NewStore(common.Gorm),
		templatemodel.NewStore(common.Gorm),
	)

	publicGroup := router.Group("public")

	publicGroup.Get("verify/:verificationId", verifyCtrl.Verify)
}
