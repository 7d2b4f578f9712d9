package certificatemodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists one certificate and spends one quota credit in the
// same transaction. The decrement is guarded so concurrent issuance
// can never push the quota below zero.
func (s *Store) Create(ctx context.Context, cert *model.Certificate) error {
	return s.createBatch(ctx, cert.UserID, []*model.Certificate{cert})
}

// CreateBatch persists a whole batch with a single guarded quota spend.
func (s *Store) CreateBatch(ctx context.Context, issuerID string, certs []*model.Certificate) error {
	return s.createBatch(ctx, issuerID, certs)
}

func (s *Store) createBatch(ctx context.Context, issuerID string, certs []*model.Certificate) error {
	if len(certs) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND cert_quota >= ?", issuerID, len(certs)).
			UpdateColumn("cert_quota", gorm.Expr("cert_quota - ?", len(certs)))
		if res.Error != nil {
			slog.Error("Certificate quota decrement", "error", res.Error, "user_id", issuerID)
			return res.Error
		}
		if res.RowsAffected == 0 {
			return bulk.ErrQuotaExceeded
		}

		if err := tx.Create(certs).Error; err != nil {
			slog.Error("Certificate CreateBatch", "error", err, "user_id", issuerID, "count", len(certs))
			return err
		}
		return nil
	})
}

func (s *Store) GetById(certId string) (*model.Certificate, error) {
	cert := new(model.Certificate)
	queryErr := s.db.Where("id = ?", certId).First(cert).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate GetById", "error", queryErr, "cert_id", certId)
		return nil, queryErr
	}

	return cert, nil
}

func (s *Store) GetByUser(userId string) ([]*model.Certificate, error) {
	var certs []*model.Certificate
	queryErr := s.db.Where("user_id = ?", userId).Order("created_at DESC").Find(&certs).Error

	if queryErr != nil {
		slog.Error("Certificate GetByUser", "error", queryErr, "user_id", userId)
		return nil, queryErr
	}

	return certs, nil
}

func (s *Store) GetByVerificationId(verificationId string) (*model.Certificate, error) {
	cert := new(model.Certificate)
	queryErr := s.db.Where("verification_id = ?", verificationId).First(cert).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate GetByVerificationId", "error", queryErr)
		return nil, queryErr
	}

	return cert, nil
}

func (s *Store) UpdateStatus(certId, status string) (*model.Certificate, error) {
	cert, err := s.GetById(certId)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, nil
	}

	if updateErr := s.db.Model(cert).UpdateColumn("status", status).Error; updateErr != nil {
		slog.Error("Certificate UpdateStatus", "error", updateErr, "cert_id", certId)
		return nil, updateErr
	}

	cert.Status = status
	return cert, nil
}

// MarkSent records the delivery time without touching other columns.
func (s *Store) MarkSent(ctx context.Context, certId string, at time.Time) error {
	updateErr := s.db.WithContext(ctx).Model(&model.Certificate{}).
		Where("id = ?", certId).
		UpdateColumn("sent_at", at).Error

	if updateErr != nil {
		slog.Error("Certificate MarkSent", "error", updateErr, "cert_id", certId)
	}
	return updateErr
}

func (s *Store) Delete(certId string) (*model.Certificate, error) {
	cert, err := s.GetById(certId)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, nil
	}

	if deleteErr := s.db.Delete(cert).Error; deleteErr != nil {
		slog.Error("Certificate Delete", "error", deleteErr, "cert_id", certId)
		return nil, deleteErr
	}

	return cert, nil
}
