package template_controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func TestUploadedAssets(t *testing.T) {
	template := &model.Template{
		BackgroundURL: "/uploads/user-1/bg.png",
		LogoURL:       "https://cdn.example.com/logo.png",
	}
	assert.Equal(t, []string{"/uploads/user-1/bg.png"}, uploadedAssets(template))

	template = &model.Template{
		BackgroundURL: "/uploads/user-1/bg.png",
		LogoURL:       "/uploads/user-1/logo.png",
	}
	assert.Len(t, uploadedAssets(template), 2)

	assert.Empty(t, uploadedAssets(&model.Template{}))
}
