package seeds_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	schoolModel "schoolku_backend/internals/features/schools/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	"schoolku_backend/internals/seeds"
	schools "schoolku_backend/internals/seeds/schools"
	"schoolku_backend/internals/testutil"
)

func TestRunAllSeedsIsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, seeds.RunAllSeeds(ctx, db, "schools/data_schools.json"))
	require.NoError(t, seeds.RunAllSeeds(ctx, db, "schools/data_schools.json"))

	var perms int64
	require.NoError(t, db.Model(&roleModel.PermissionModel{}).Count(&perms).Error)
	assert.Equal(t, int64(len(constants.PermissionCatalog)), perms)

	var n int64
	require.NoError(t, db.Model(&schoolModel.SchoolModel{}).Where("school_code = ?", "DEMO").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSeedSchoolsFromJSONRejectsInvalidRows(t *testing.T) {
	db := testutil.NewDB(t)
	path := filepath.Join(t.TempDir(), "schools.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":"X1","name":"X","admin_username":"a","admin_email":"bad","admin_password":"short"}]`), 0o600))

	created, err := schools.SeedSchoolsFromJSON(context.Background(), db, path)
	assert.Error(t, err)
	assert.Zero(t, created)

	_, err = schools.SeedSchoolsFromJSON(context.Background(), db, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
