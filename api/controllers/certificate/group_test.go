package certificate_controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	groupmodel "github.com/proofdeck/proofdeck-api/api/model/groupModel"
	"github.com/proofdeck/proofdeck-api/test/helpers"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func TestResolveGroup(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	groups := groupmodel.NewStore(container.DB)

	helpers.SeedIssuer(t, container.DB, "issuer-a", 10)
	helpers.SeedIssuer(t, container.DB, "issuer-b", 10)
	require.NoError(t, groups.Create(&model.Group{ID: "grp-1", UserID: "issuer-a", Name: "Spring Cohort"}))

	t.Run("own group resolves", func(t *testing.T) {
		groupID, err := resolveGroup(groups, "grp-1", "issuer-a")
		require.NoError(t, err)
		require.NotNil(t, groupID)
		assert.Equal(t, "grp-1", *groupID)
	})

	t.Run("empty id means no group", func(t *testing.T) {
		groupID, err := resolveGroup(groups, "", "issuer-a")
		require.NoError(t, err)
		assert.Nil(t, groupID)
	})

	t.Run("unknown group is rejected", func(t *testing.T) {
		_, err := resolveGroup(groups, "grp-missing", "issuer-a")
		require.ErrorIs(t, err, errGroupDenied)
	})

	t.Run("foreign group is rejected", func(t *testing.T) {
		_, err := resolveGroup(groups, "grp-1", "issuer-b")
		require.ErrorIs(t, err, errGroupDenied)
	})
}
