package templatemodel

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

func (s *Store) Create(template *model.Template) error {
	if createErr := s.db.Create(template).Error; createErr != nil {
		slog.Error("Template Create", "error", createErr, "user_id", template.UserID)
		return createErr
	}
	return nil
}

func (s *Store) GetById(templateId string) (*model.Template, error) {
	template := new(model.Template)
	queryErr := s.db.Where("id = ?", templateId).First(template).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Template GetById", "error", queryErr, "template_id", templateId)
		return nil, queryErr
	}

	return template, nil
}

// ListVisible returns the issuer's own templates plus the public ones.
func (s *Store) ListVisible(userId string) ([]*model.Template, error) {
	var templates []*model.Template
	queryErr := s.db.
		Where("user_id = ? OR is_public = ?", userId, true).
		Order("created_at DESC").
		Find(&templates).Error

	if queryErr != nil {
		slog.Error("Template ListVisible", "error", queryErr, "user_id", userId)
		return nil, queryErr
	}

	return templates, nil
}

func (s *Store) Update(template *model.Template) error {
	if saveErr := s.db.Save(template).Error; saveErr != nil {
		slog.Error("Template Update", "error", saveErr, "template_id", template.ID)
		return saveErr
	}
	return nil
}

// Delete removes a template together with every certificate issued
// from it.
func (s *Store) Delete(templateId string) (*model.Template, error) {
	template, err := s.GetById(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateId).Delete(&model.Certificate{}).Error; err != nil {
			return err
		}
		return tx.Delete(template).Error
	})
	if txErr != nil {
		slog.Error("Template Delete", "error", txErr, "template_id", templateId)
		return nil, txErr
	}

	return template, nil
}
