package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/test/helpers"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func makeCert(id, userId, templateId string) *model.Certificate {
	return &model.Certificate{
		ID:             id,
		UserID:         userId,
		TemplateID:     templateId,
		RecipientName:  "Jane Doe",
		CourseTitle:    "Intro to Go",
		IssueDate:      time.Date(2024, time.October, 22, 0, 0, 0, 0, time.UTC),
		VerificationID: "verify-" + id,
		Status:         model.StatusValid,
	}
}

// TestCertificate_GuardedQuota verifies the quota decrement is guarded:
// a batch larger than the remaining quota creates nothing and the
// quota never goes negative.
func TestCertificate_GuardedQuota(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	store := certificatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-quota", 2)
	helpers.SeedTemplate(t, container.DB, "tmpl-quota", "user-quota", model.LayoutModern)

	// Batch of 3 against quota 2 must fail atomically.
	batch := []*model.Certificate{
		makeCert("q-1", "user-quota", "tmpl-quota"),
		makeCert("q-2", "user-quota", "tmpl-quota"),
		makeCert("q-3", "user-quota", "tmpl-quota"),
	}
	err := store.CreateBatch(context.Background(), "user-quota", batch)
	require.ErrorIs(t, err, bulk.ErrQuotaExceeded)

	var count int64
	require.NoError(t, container.DB.Model(&model.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var user model.User
	require.NoError(t, container.DB.First(&user, "id = ?", "user-quota").Error)
	assert.Equal(t, 2, user.CertQuota)

	// A batch that fits spends exactly its size.
	err = store.CreateBatch(context.Background(), "user-quota", batch[:2])
	require.NoError(t, err)

	require.NoError(t, container.DB.First(&user, "id = ?", "user-quota").Error)
	assert.Equal(t, 0, user.CertQuota)

	// Quota is empty now; even a single create must be refused.
	err = store.Create(context.Background(), makeCert("q-4", "user-quota", "tmpl-quota"))
	require.ErrorIs(t, err, bulk.ErrQuotaExceeded)

	require.NoError(t, container.DB.First(&user, "id = ?", "user-quota").Error)
	assert.Equal(t, 0, user.CertQuota)
}

func TestCertificate_VerificationLookup(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	store := certificatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-verify", 10)
	helpers.SeedTemplate(t, container.DB, "tmpl-verify", "user-verify", model.LayoutClassic)

	cert := makeCert("v-1", "user-verify", "tmpl-verify")
	require.NoError(t, store.Create(context.Background(), cert))

	found, err := store.GetByVerificationId(cert.VerificationID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cert.ID, found.ID)
	assert.Equal(t, model.StatusValid, found.Status)

	missing, err := store.GetByVerificationId("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCertificate_StatusAndSent(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	store := certificatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-status", 10)
	helpers.SeedTemplate(t, container.DB, "tmpl-status", "user-status", model.LayoutModern)

	cert := makeCert("s-1", "user-status", "tmpl-status")
	require.NoError(t, store.Create(context.Background(), cert))

	updated, err := store.UpdateStatus(cert.ID, model.StatusRevoked)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRevoked, updated.Status)

	sentAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.MarkSent(context.Background(), cert.ID, sentAt))

	reloaded, err := store.GetById(cert.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.SentAt)
	assert.WithinDuration(t, sentAt, *reloaded.SentAt, time.Second)
}
