package usermodel

import (
	"errors"
	"log/slog"

	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetById(userId string) (*model.User, error) {
	user := new(model.User)
	queryErr := s.db.Where("id = ?", userId).First(user).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("User GetById", "error", queryErr, "user_id", userId)
		return nil, queryErr
	}

	return user, nil
}

// GetOrProvision returns the issuer record, creating it with the
// configured default quota on first sight. Issuer identity comes from
// the upstream identity provider, so an unknown id is a new account,
// not an error.
func (s *Store) GetOrProvision(userId string) (*model.User, error) {
	user, err := s.GetById(userId)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	quota := 10
	if common.Config.DefaultQuota != nil {
		quota = *common.Config.DefaultQuota
	}

	user = &model.User{
		ID:        userId,
		Name:      userId,
		Email:     userId,
		CertQuota: quota,
	}
	if createErr := s.db.Create(user).Error; createErr != nil {
		slog.Error("User GetOrProvision", "error", createErr, "user_id", userId)
		return nil, createErr
	}

	slog.Info("Provisioned new issuer account", "user_id", userId, "quota", quota)
	return user, nil
}
