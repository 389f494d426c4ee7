package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/front_office/model"
	"schoolku_backend/internals/features/front_office/route"
	"schoolku_backend/internals/testutil"
)

func TestComplaintLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "FO1")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.FrontOfficeRoutes(api, db) })
	_, tok := ten.UserWithRole(t, db, constants.RoleReceptionist)

	status, env := testutil.Do(t, app, "POST", "/api/front-office/complaints", tok, map[string]any{
		"name": "Bu Sari", "complaintType": "Kebersihan", "date": "2026-09-01",
	})
	require.Equal(t, 201, status, env.Error)
	m := testutil.Decode[model.ComplaintModel](t, env.Data)
	assert.Equal(t, model.DefaultStatus, m.ComplaintStatus)

	// status bebas, tanpa graf transisi
	for _, s := range []string{"in progress", "resolved", "reopened"} {
		status, env = testutil.Do(t, app, "PATCH", "/api/front-office/complaints/"+m.ComplaintID.String()+"/status", tok, map[string]any{"status": s})
		require.Equal(t, 200, status, env.Error)
		assert.Equal(t, s, testutil.Decode[model.ComplaintModel](t, env.Data).ComplaintStatus)
	}

	status, env = testutil.Do(t, app, "PATCH", "/api/front-office/complaints/"+m.ComplaintID.String()+"/status", tok, map[string]any{"status": "  "})
	assert.Equal(t, 400, status)
	assert.Equal(t, "status is required", env.Error)

	status, env = testutil.Do(t, app, "PUT", "/api/front-office/complaints/"+m.ComplaintID.String(), tok, map[string]any{"assignedTo": uuid.New()})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Staff not found", env.Error)

	status, env = testutil.Do(t, app, "GET", "/api/front-office/complaints?status=reopened", tok, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(1), env.Pagination.Total)

	status, _ = testutil.Do(t, app, "DELETE", "/api/front-office/complaints/"+m.ComplaintID.String(), tok, nil)
	assert.Equal(t, 200, status)
	status, _ = testutil.Do(t, app, "GET", "/api/front-office/complaints/"+m.ComplaintID.String(), tok, nil)
	assert.Equal(t, 404, status)
}

func TestEnquiryValidationAndScope(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "FO2")
	b := testutil.NewTenant(t, db, "FO3")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.FrontOfficeRoutes(api, db) })

	status, env := testutil.Do(t, app, "POST", "/api/front-office/enquiries", a.AdminToken, map[string]any{
		"name": "Pak Budi", "date": "2026-09-10", "nextFollowUp": "2026-09-01",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "nextFollowUp", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/front-office/enquiries", a.AdminToken, map[string]any{
		"name": "Pak Budi", "email": "bukan-email",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "email", env.Field)

	status, env = testutil.Do(t, app, "POST", "/api/front-office/enquiries", a.AdminToken, map[string]any{
		"name": "Pak Budi", "email": "Budi@Mail.Test", "nextFollowUp": "2099-01-01",
	})
	require.Equal(t, 201, status, env.Error)
	e := testutil.Decode[model.EnquiryModel](t, env.Data)
	require.NotNil(t, e.EnquiryEmail)
	assert.Equal(t, "budi@mail.test", *e.EnquiryEmail)

	status, _ = testutil.Do(t, app, "GET", "/api/front-office/enquiries/"+e.EnquiryID.String(), b.AdminToken, nil)
	assert.Equal(t, 404, status)
	status, _ = testutil.Do(t, app, "PATCH", "/api/front-office/enquiries/"+e.EnquiryID.String()+"/status", b.AdminToken, map[string]any{"status": "closed"})
	assert.Equal(t, 404, status)

	_, tok := a.UserWithRole(t, db, constants.RoleLibrarian)
	status, _ = testutil.Do(t, app, "GET", "/api/front-office/enquiries", tok, nil)
	assert.Equal(t, 403, status)
}
