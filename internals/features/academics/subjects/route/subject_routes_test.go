package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/subjects/model"
	"schoolku_backend/internals/features/academics/subjects/route"
	"schoolku_backend/internals/testutil"
)

func TestSubjectCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "SB1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.SubjectRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/subjects", ten.AdminToken, map[string]any{"name": "Matematika", "code": "mtk"})
	require.Equal(t, 201, status, env.Error)
	m := testutil.Decode[model.SubjectModel](t, env.Data)
	assert.Equal(t, "MTK", m.SubjectCode)
	assert.Equal(t, model.SubjectTheory, m.SubjectType)

	status, env = testutil.Do(t, app, "POST", "/api/subjects", ten.AdminToken, map[string]any{"name": "Mat 2", "code": "MTK"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "code already exists", env.Error)
	assert.Equal(t, "code", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/subjects", ten.AdminToken, map[string]any{"name": "Kimia", "code": "KIM", "type": "lab"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "type must be one of [theory practical]", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/subjects/"+m.SubjectID.String(), ten.AdminToken, map[string]any{"type": "practical"})
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, model.SubjectPractical, testutil.Decode[model.SubjectModel](t, env.Data).SubjectType)

	status, env = testutil.Do(t, app, "GET", "/api/subjects?type=practical", ten.AdminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(1), env.Pagination.Total)

	_, teacherToken := ten.UserWithRole(t, db, constants.RoleTeacher)
	status, _ = testutil.Do(t, app, "GET", "/api/subjects", teacherToken, nil)
	assert.Equal(t, 200, status)
	status, _ = testutil.Do(t, app, "DELETE", "/api/subjects/"+m.SubjectID.String(), teacherToken, nil)
	assert.Equal(t, 403, status)

	status, _ = testutil.Do(t, app, "DELETE", "/api/subjects/"+m.SubjectID.String(), ten.AdminToken, nil)
	assert.Equal(t, 200, status)
}
