package resource_controller

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/response"
)

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// Upload stores a template asset (logo, background, signature image)
// and returns its /uploads/ path for use in templates.
func Upload(c *fiber.Ctx) error {
	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.SendFailed(c, "An image file is required")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return response.SendFailed(c, "Only PNG, JPEG and GIF images are accepted")
	}

	objectName := fmt.Sprintf("%s/%s%s", userId, uuid.New().String(), ext)
	path, err := util.UploadFile(c.Context(), *common.Config.BucketResource, objectName, fileHeader)
	if err != nil {
		slog.Error("Resource upload failed", "user_id", userId, "error", err)
		return response.SendInternalError(c, err)
	}

	slog.Info("Resource uploaded", "user_id", userId, "path", path)
	return response.SendCreated(c, "Resource uploaded", fiber.Map{"path": path})
}

// Fetch streams an uploaded asset back out of the resource bucket.
func Fetch(c *fiber.Ctx) error {
	objectName := c.Params("*")
	if objectName == "" {
		return response.SendFailed(c, "Object name is required")
	}

	data, err := util.FetchObject(c.Context(), *common.Config.BucketResource, objectName)
	if err != nil {
		slog.Warn("Resource fetch failed", "object", objectName, "error", err)
		return response.SendNotFound(c, "Resource not found")
	}

	if contentType, ok := allowedExtensions[strings.ToLower(filepath.Ext(objectName))]; ok {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Send(data)
}
