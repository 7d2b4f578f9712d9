package group_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

type GroupController struct {
	groups *groupmodel.Store
}

func NewGroupController(groups *groupmodel.Store) *GroupController {
	return &GroupController{groups: groups}
}

func (ctrl *GroupController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateGroupPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		errs := util.GetValidationErrors(err)
		return response.SendFailed(c, errs[0])
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	group := &model.Group{
		ID:     uuid.New().String(),
		UserID: userId,
		Name:   body.Name,
	}
	if err := ctrl.groups.Create(group); err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Group created", "group_id", group.ID, "user_id", userId)
	return response.SendCreated(c, "Group created", group)
}

func (ctrl *GroupController) List(c *fiber.Ctx) error {
	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	groups, err := ctrl.groups.ListByUser(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Groups found", groups)
}

func (ctrl *GroupController) Delete(c *fiber.Ctx) error {
	groupId := c.Params("groupId")
	if groupId == "" {
		return response.SendFailed(c, "Group ID is required")
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	group, err := ctrl.groups.GetById(groupId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if group == nil || group.UserID != userId {
		return response.SendNotFound(c, "Group not found")
	}

	deleted, err := ctrl.groups.Delete(groupId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Group deleted", "group_id", groupId, "user_id", userId)
	return response.SendSuccess(c, "Group deleted", deleted)
}
