package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/library/model"
	"schoolku_backend/internals/features/library/route"
	"schoolku_backend/internals/testutil"
)

type libEnv struct {
	app *fiber.App
	ten *testutil.Tenant
	tok string
}

func newLibEnv(t *testing.T, code string) (*libEnv, uuid.UUID) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, code)
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.LibraryRoutes(api, db) })
	_, tok := ten.UserWithRole(t, db, constants.RoleLibrarian)

	ac := ten.Academic(t, db, "Kelas 5")
	studentID, _ := ten.Student(t, db, ac, "Citra")
	return &libEnv{app: app, ten: ten, tok: tok}, studentID
}

func (e *libEnv) book(t *testing.T, qty int) uuid.UUID {
	status, env := testutil.Do(t, e.app, "POST", "/api/library/books", e.tok, map[string]any{
		"title": "Laskar Pelangi", "author": "Andrea Hirata", "quantity": qty,
	})
	require.Equal(t, 201, status, env.Error)
	return testutil.ID(t, env)
}

func (e *libEnv) member(t *testing.T, studentID uuid.UUID) uuid.UUID {
	status, env := testutil.Do(t, e.app, "POST", "/api/library/members", e.tok, map[string]any{
		"memberType": "student", "studentId": studentID,
	})
	require.Equal(t, 201, status, env.Error)
	m := testutil.Decode[model.LibraryMemberModel](t, env.Data)
	assert.Equal(t, "LIB0001", m.LibraryMemberCardNo)
	return m.LibraryMemberID
}

func (e *libEnv) available(t *testing.T, bookID uuid.UUID) int {
	status, env := testutil.Do(t, e.app, "GET", "/api/library/books/"+bookID.String(), e.tok, nil)
	require.Equal(t, 200, status, env.Error)
	return testutil.Decode[model.BookModel](t, env.Data).BookAvailable
}

func TestLastCopyCanOnlyBeIssuedOnce(t *testing.T) {
	e, studentID := newLibEnv(t, "LB1")
	bookID := e.book(t, 1)
	memberID := e.member(t, studentID)

	issue := map[string]any{"bookId": bookID, "memberId": memberID, "issueDate": "2020-09-01", "dueDate": "2020-09-15"}
	status, env := testutil.Do(t, e.app, "POST", "/api/library/issues", e.tok, issue)
	require.Equal(t, 201, status, env.Error)
	issueID := testutil.ID(t, env)
	assert.Equal(t, 0, e.available(t, bookID))

	status, env = testutil.Do(t, e.app, "POST", "/api/library/issues", e.tok, issue)
	assert.Equal(t, 400, status)
	assert.Equal(t, "book is not available", env.Error)

	status, env = testutil.Do(t, e.app, "GET", "/api/library/issues?overdue=true", e.tok, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, int64(1), env.Pagination.Total)

	status, env = testutil.Do(t, e.app, "POST", "/api/library/issues/"+issueID.String()+"/return", e.tok, nil)
	require.Equal(t, 200, status, env.Error)
	assert.Equal(t, 1, e.available(t, bookID))

	status, env = testutil.Do(t, e.app, "POST", "/api/library/issues/"+issueID.String()+"/return", e.tok, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "book is already returned", env.Error)
	assert.Equal(t, 1, e.available(t, bookID))
}

func TestQuantityChangeShiftsAvailability(t *testing.T) {
	e, studentID := newLibEnv(t, "LB2")
	bookID := e.book(t, 3)
	memberID := e.member(t, studentID)

	for i := 0; i < 2; i++ {
		status, env := testutil.Do(t, e.app, "POST", "/api/library/issues", e.tok, map[string]any{"bookId": bookID, "memberId": memberID})
		require.Equal(t, 201, status, env.Error)
	}
	assert.Equal(t, 1, e.available(t, bookID))

	status, env := testutil.Do(t, e.app, "PUT", "/api/library/books/"+bookID.String(), e.tok, map[string]any{"quantity": 5})
	require.Equal(t, 200, status, env.Error)
	b := testutil.Decode[model.BookModel](t, env.Data)
	assert.Equal(t, 5, b.BookQuantity)
	assert.Equal(t, 3, b.BookAvailable)

	status, env = testutil.Do(t, e.app, "PUT", "/api/library/books/"+bookID.String(), e.tok, map[string]any{"quantity": 1})
	assert.Equal(t, 400, status)
	assert.Equal(t, "quantity cannot be less than copies on loan", env.Error)

	status, env = testutil.Do(t, e.app, "DELETE", "/api/library/books/"+bookID.String(), e.tok, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "book has issue records", env.Error)

	status, env = testutil.Do(t, e.app, "DELETE", "/api/library/members/"+memberID.String(), e.tok, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "member has books on loan", env.Error)
}

func TestMemberValidation(t *testing.T) {
	e, studentID := newLibEnv(t, "LB3")
	e.member(t, studentID)

	status, env := testutil.Do(t, e.app, "POST", "/api/library/members", e.tok, map[string]any{
		"memberType": "student", "studentId": studentID,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "student is already a library member", env.Error)

	status, env = testutil.Do(t, e.app, "POST", "/api/library/members", e.tok, map[string]any{"memberType": "staff"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "staffId", env.Field)

	status, env = testutil.Do(t, e.app, "POST", "/api/library/members", e.tok, map[string]any{
		"memberType": "student", "studentId": uuid.New(),
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Student not found", env.Error)

	status, _ = testutil.Do(t, e.app, "GET", "/api/library/books", e.ten.AdminToken, nil)
	assert.Equal(t, 200, status)
}

func TestLibraryRequiresPermission(t *testing.T) {
	db := testutil.NewDB(t)
	ten := testutil.NewTenant(t, db, "LB4")
	app := testutil.NewApp(db, nil, func(api fiber.Router) { route.LibraryRoutes(api, db) })

	_, tok := ten.UserWithRole(t, db, constants.RoleAccountant)
	status, env := testutil.Do(t, app, "GET", "/api/library/books", tok, nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, "Forbidden", env.Error)
}
