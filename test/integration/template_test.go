package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certificatemodel "github.com/proofdeck/proofdeck-api/api/model/certificateModel"
	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	"github.com/proofdeck/proofdeck-api/test/helpers"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func TestTemplate_Visibility(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	store := templatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-a", 10)
	helpers.SeedIssuer(t, container.DB, "user-b", 10)

	ownerA := "user-a"
	ownerB := "user-b"
	private := &model.Template{ID: "tmpl-private", UserID: &ownerA, Title: "Private", LayoutStyle: model.LayoutClassic}
	public := &model.Template{ID: "tmpl-public", UserID: &ownerB, Title: "Public", LayoutStyle: model.LayoutModern, IsPublic: true}
	foreign := &model.Template{ID: "tmpl-foreign", UserID: &ownerB, Title: "Foreign", LayoutStyle: model.LayoutReceipt}
	require.NoError(t, store.Create(private))
	require.NoError(t, store.Create(public))
	require.NoError(t, store.Create(foreign))

	visible, err := store.ListVisible("user-a")
	require.NoError(t, err)

	ids := make([]string, 0, len(visible))
	for _, tmpl := range visible {
		ids = append(ids, tmpl.ID)
	}
	assert.ElementsMatch(t, []string{"tmpl-private", "tmpl-public"}, ids)
}

func TestTemplate_DeleteCascadesCertificates(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	templates := templatemodel.NewStore(container.DB)
	certs := certificatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-cascade", 10)
	helpers.SeedTemplate(t, container.DB, "tmpl-cascade", "user-cascade", model.LayoutClassic)
	helpers.SeedTemplate(t, container.DB, "tmpl-keep", "user-cascade", model.LayoutClassic)

	require.NoError(t, certs.Create(context.Background(), makeCert("c-1", "user-cascade", "tmpl-cascade")))
	require.NoError(t, certs.Create(context.Background(), makeCert("c-2", "user-cascade", "tmpl-keep")))

	deleted, err := templates.Delete("tmpl-cascade")
	require.NoError(t, err)
	require.NotNil(t, deleted)

	var count int64
	require.NoError(t, container.DB.Model(&model.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	survivor, err := certs.GetById("c-2")
	require.NoError(t, err)
	require.NotNil(t, survivor)
}

func TestGroup_DeleteDetachesCertificates(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	groups := groupmodel.NewStore(container.DB)
	certs := certificatemodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "user-group", 10)
	helpers.SeedTemplate(t, container.DB, "tmpl-group", "user-group", model.LayoutModern)

	require.NoError(t, groups.Create(&model.Group{ID: "grp-1", UserID: "user-group", Name: "Spring Cohort"}))

	groupId := "grp-1"
	cert := makeCert("g-1", "user-group", "tmpl-group")
	cert.GroupID = &groupId
	require.NoError(t, certs.Create(context.Background(), cert))

	deleted, err := groups.Delete("grp-1")
	require.NoError(t, err)
	require.NotNil(t, deleted)

	reloaded, err := certs.GetById("g-1")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Nil(t, reloaded.GroupID)
}
