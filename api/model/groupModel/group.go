package groupmodel

import (
	"errors"
	"log/slog"

	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(group *model.Group) error {
	if createErr := s.db.Create(group).Error; createErr != nil {
		slog.Error("Group Create", "error", createErr, "user_id", group.UserID)
		return createErr
	}
	return nil
}

func (s *Store) GetById(groupId string) (*model.Group, error) {
	group := new(model.Group)
	queryErr := s.db.Where("id = ?", groupId).First(group).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Group GetById", "error", queryErr, "group_id", groupId)
		return nil, queryErr
	}

	return group, nil
}

func (s *Store) ListByUser(userId string) ([]*model.Group, error) {
	var groups []*model.Group
	queryErr := s.db.Where("user_id = ?", userId).Order("created_at DESC").Find(&groups).Error

	if queryErr != nil {
		slog.Error("Group ListByUser", "error", queryErr, "user_id", userId)
		return nil, queryErr
	}

	return groups, nil
}

// Delete removes the group; its certificates survive with a cleared
// group reference.
func (s *Store) Delete(groupId string) (*model.Group, error) {
	group, err := s.GetById(groupId)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Certificate{}).
			Where("group_id = ?", groupId).
			UpdateColumn("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
	if txErr != nil {
		slog.Error("Group Delete", "error", txErr, "group_id", groupId)
		return nil, txErr
	}

	return group, nil
}
