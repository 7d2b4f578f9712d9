package certificate_controller

import (
	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	jobmodel "github.com/proofdeck/proofdeck-api/api/model/jobModel"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	usermodel "github.com/proofdeck/proofdeck-api/api/model/userModel"
	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/internal/renderer"
)

type CertificateController struct {
	certs       *certificatemodel.Store
	templates   *templatemodel.Store
	users       *usermodel.Store
	groups      *groupmodel.Store
	jobs        *jobmodel.Store
	renderer    *renderer.Renderer
	deliverer   *mailDeliverer
	coordinator *bulk.Coordinator
}

func NewCertificateController(
	certs *certificatemodel.Store,
	templates *templatemodel.Store,
	users *usermodel.Store,
	groups *groupmodel.Store,
	jobs *jobmodel.Store,
	docRenderer *renderer.Renderer,
) *CertificateController {
	ctrl := &CertificateController{
		certs:     certs,
		templates: templates,
		users:     users,
		groups:    groups,
		jobs:      jobs,
		renderer:  docRenderer,
	}

	ctrl.deliverer = &mailDeliverer{
		renderer:  docRenderer,
		templates: templates,
		users:     users,
	}
	ctrl.coordinator = bulk.NewCoordinator(certs, ctrl.deliverer, &summaryNotifier{})

	return ctrl
}
