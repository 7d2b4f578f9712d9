package template_controller

import (
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
)

type TemplateController struct {
	templates *templatemodel.Store
}

func NewTemplateController(templates *templatemodel.Store) *TemplateController {
	return &TemplateController{templates: templates}
}
