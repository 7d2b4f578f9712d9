package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/proofdeck/proofdeck-api/api/controllers/certificate"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	jobmodel "github.com/proofdeck/proofdeck-api/api/model/jobModel"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	usermodel "github.com/proofdeck/proofdeck-api/api/model/userModel"
	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/internal/renderer"
)

func SetupCertificateRoutes(router fiber.Router) {
	signer, err := renderer.NewDocumentSigner()
	if err != nil {
		slog.Warn("Failed to initialize document signer, documents will be unsigned", "error", err)
		signer = nil
	}

	resolver := renderer.NewAssetResolver(common.MinIOClient, *common.Config.BucketResource)
	docRenderer := renderer.New(*common.Config.FrontendURL, resolver, signer)

	certificateCtrl := certificate_controller.NewCertificateController(
		certificatemodel.NewStore(common.Gorm),
		templatemodel.NewStore(common.Gorm),
		usermodel.NewStore(common.Gorm),
		groupmodel.NewStore(common.Gorm),
		jobmodel.NewStore(common.Mongo),
		docRenderer,
	)

	certificateGroup := router.Group("certificate")

	certificateGroup.Use(middleware.Jwt())

	certificateGroup.Get("", certificateCtrl.GetByUser)
	certificateGroup.Post("", certificateCtrl.Create)
	certificateGroup.Post("bulk", certificateCtrl.Bulk)
	certificateGroup.Get("bulk/status/:jobId", certificateCtrl.BulkStatus)
	certificateGroup.Get("bulk/template", certificateCtrl.BulkTemplate)
	certificateGroup.Post("send/bulk", certificateCtrl.SendBulk)
	certificateGroup.Get(":certId", certificateCtrl.GetById)
	certificateGroup.Get(":certId/pdf", certificateCtrl.Download)
	certificateGroup.Post(":certId/send", certificateCtrl.Send)
	certificateGroup.Put(":certId/status", certificateCtrl.UpdateStatus)
	certificateGroup.Delete(":certId", certificateCtrl.Delete)
}
