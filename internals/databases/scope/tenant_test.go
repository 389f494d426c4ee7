package scope_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/databases/scope"
	classModel "schoolku_backend/internals/features/academics/classes/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestTenantIsolation(t *testing.T) {
	db := testutil.NewDB(t)
	a := scope.For(db, uuid.New())
	b := scope.For(db, uuid.New())

	cls := classModel.ClassModel{ClassName: "One"}
	require.NoError(t, a.Create(&cls))
	assert.Equal(t, a.SchoolID, cls.ClassSchoolID)

	_, err := scope.First[classModel.ClassModel](a, cls.ClassID)
	require.NoError(t, err)

	_, err = scope.First[classModel.ClassModel](b, cls.ClassID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	err = b.Updates(&classModel.ClassModel{}, cls.ClassID, map[string]any{"class_name": "hijacked"})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	err = b.Delete(&classModel.ClassModel{}, cls.ClassID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	n, err := b.Count(&classModel.ClassModel{}, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := scope.First[classModel.ClassModel](a, cls.ClassID)
	require.NoError(t, err)
	assert.Equal(t, "One", got.ClassName)
}

func TestCreateIgnoresForeignSchoolID(t *testing.T) {
	db := testutil.NewDB(t)
	a := scope.For(db, uuid.New())

	cls := classModel.ClassModel{ClassName: "Two", ClassSchoolID: uuid.New()}
	require.NoError(t, a.Create(&cls))
	assert.Equal(t, a.SchoolID, cls.ClassSchoolID)
}

func TestUniqueExcludesSelf(t *testing.T) {
	db := testutil.NewDB(t)
	a := scope.For(db, uuid.New())

	one := classModel.ClassModel{ClassName: "One"}
	require.NoError(t, a.Create(&one))

	err := a.Unique(&classModel.ClassModel{}, "class_name", "One", uuid.Nil, "name")
	assert.True(t, helper.IsKind(err, helper.KindConflict))
	assert.NoError(t, a.Unique(&classModel.ClassModel{}, "class_name", "One", one.ClassID, "name"))

	// tenant lain boleh pakai nama yang sama
	b := scope.For(db, uuid.New())
	assert.NoError(t, b.Unique(&classModel.ClassModel{}, "class_name", "One", uuid.Nil, "name"))
}

func TestTransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	a := scope.For(db, uuid.New())

	err := a.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(&classModel.ClassModel{ClassName: "Temp"}); err != nil {
			return err
		}
		return helper.Conflict("name", "boom")
	})
	require.Error(t, err)

	n, err := a.Count(&classModel.ClassModel{}, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateAllStampsTenant(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.NewTenant(t, db, "CA1")
	b := testutil.NewTenant(t, db, "CA2")

	rows := []classModel.SectionModel{
		{SectionName: "A", SectionSchoolID: b.SchoolID},
		{SectionName: "B"},
	}
	require.NoError(t, scope.CreateAll(a.Scope(db), rows))

	n, err := a.Scope(db).Count(&classModel.SectionModel{}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = b.Scope(db).Count(&classModel.SectionModel{}, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
