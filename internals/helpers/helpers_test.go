package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSequenceFromIdentifier(t *testing.T) {
	cases := []struct {
		last, prefix string
		want         int
	}{
		{"", "2026", 0},
		{"20260007", "2026", 7},
		{"20250099", "2026", 20250099},
		{"EMP0042", "EMP", 42},
		{"STAFF-17", "EMP", 17},
		{"nodigits", "", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SequenceFromIdentifier(tc.last, tc.prefix), "%q/%q", tc.last, tc.prefix)
	}
}

func TestNextIdentifierSkipsTakenCandidates(t *testing.T) {
	taken := map[string]bool{"20260008": true, "20260009": true}
	got, err := NextIdentifier("2026", "20260007", 4, func(s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "20260010", got)
}

func TestNextIdentifierPropagatesLookupError(t *testing.T) {
	_, err := NextIdentifier("EMP", "", 4, func(string) (bool, error) {
		return false, errors.New("db down")
	})
	assert.Error(t, err)
}

func TestHighestIdentifierSkipsManualIDs(t *testing.T) {
	ids := []string{"EMP0041", "EMPLOYEE-X", "EMP-7", "EMP00009", "EMP0100", "XEMP9999"}
	assert.Equal(t, "EMP0100", HighestIdentifier("EMP", ids))
	assert.Equal(t, "", HighestIdentifier("EMP", []string{"EMPLOYEE-X", "EMP"}))
	assert.Equal(t, "", HighestIdentifier("EMP", nil))

	got, err := NextIdentifier("EMP", HighestIdentifier("EMP", ids), 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "EMP0101", got)
}

func TestNextIdentifierFirstValue(t *testing.T) {
	got, err := NextIdentifier("EMP", "", 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "EMP0001", got)
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(41, Paging{Page: 2, Limit: 20})
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)

	empty := BuildPagination(0, Paging{Page: 1, Limit: 10})
	assert.Equal(t, 0, empty.TotalPages)
}

func TestResolvePagingIgnoresGarbage(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=-3&limit=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 1, Limit: 20, Offset: 0}, got)

	_, err = app.Test(httptest.NewRequest("GET", "/?page=3&limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 3, Limit: 100, Offset: 200}, got)
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, PageSlice(items, Paging{Page: 2, Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, PageSlice(items, Paging{Page: 3, Limit: 2, Offset: 4}))
	assert.Equal(t, []int{}, PageSlice(items, Paging{Page: 9, Limit: 2, Offset: 16}))
	assert.Equal(t, []int{}, PageSlice(items, Paging{Page: 1, Limit: 2, Offset: -2}))
	assert.Equal(t, []int{2, 3, 4, 5}, PageSlice(items, Paging{Page: 2, Limit: math.MaxInt, Offset: 1}))
}

func TestResolvePagingCapsHugePage(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 200)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=9223372036854775807&limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Limit)
	assert.GreaterOrEqual(t, got.Offset, 0)
	assert.LessOrEqual(t, got.Offset, MaxOffset)
	assert.Equal(t, (got.Page-1)*got.Limit, got.Offset)
	assert.Empty(t, PageSlice([]int{1, 2, 3}, got))
}

type sampleReq struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateStructReportsFirstField(t *testing.T) {
	err := ValidateStruct(sampleReq{})
	require.Error(t, err)
	var ae *AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Equal(t, "name is required", ae.Message)
	assert.Equal(t, "name", ae.Field)

	err = ValidateStruct(sampleReq{Name: "toolongname"})
	require.Error(t, err)
	assert.Equal(t, "name must be at most 5 characters", err.Error())
}

func TestToAppErrorMapping(t *testing.T) {
	assert.Equal(t, KindNotFound, ToAppError(gorm.ErrRecordNotFound).Kind)
	assert.Equal(t, KindConflict, ToAppError(gorm.ErrDuplicatedKey).Kind)
	assert.Equal(t, KindConflict, ToAppError(errors.New("UNIQUE constraint failed: classes.name")).Kind)
	assert.Equal(t, KindUnauthorized, ToAppError(fiber.NewError(fiber.StatusUnauthorized, "x")).Kind)
	assert.Equal(t, KindInternal, ToAppError(errors.New("boom")).Kind)
	assert.Equal(t, KindConflict, ToAppError(fmt.Errorf("wrap: %w", Conflict("name", "taken"))).Kind)
}

func TestJsonFromErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return JsonFromError(c, errors.New("pq: password authentication failed"))
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Error)
}

func TestPatchFieldTriState(t *testing.T) {
	var req struct {
		Name PatchField[string]  `json:"name"`
		Note PatchField[*string] `json:"note"`
		Code PatchField[string]  `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","note":null}`), &req))

	updates := map[string]any{}
	req.Name.Apply(updates, "name")
	req.Note.Apply(updates, "note")
	req.Code.Apply(updates, "code")

	assert.Equal(t, "A", updates["name"])
	v, ok := updates["note"]
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = updates["code"]
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "kepala-sekolah", Slugify("  Kepala   Sekolah! ", 0))
	assert.Equal(t, "creme", Slugify("Crème", 0))
	assert.Equal(t, "", Slugify("!!!", 0))
}
