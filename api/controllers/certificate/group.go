package certificate_controller

import (
	"errors"

	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
)

var errGroupDenied = errors.New("group not found or not permitted")

// resolveGroup validates the destination group before any row is
// touched. A missing or foreign group fails the whole operation; an
// empty id means no group.
func resolveGroup(groups *groupmodel.Store, groupId, userId string) (*string, error) {
	if groupId == "" {
		return nil, nil
	}

	group, err := groups.GetById(groupId)
	if err != nil {
		return nil, err
	}
	if group == nil || group.UserID != userId {
		return nil, errGroupDenied
	}
	return &group.ID, nil
}
