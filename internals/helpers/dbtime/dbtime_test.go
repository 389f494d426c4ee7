package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolku_backend/internals/helpers"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2026-03-01T23:10:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/03/2026")
	assert.Error(t, err)
	assert.Nil(t, ParseDatePtr("bukan-tanggal"))
}

func TestTodRoundTrip(t *testing.T) {
	tod, err := ParseTod("09:30")
	require.NoError(t, err)
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)

	var back Tod
	require.NoError(t, back.Scan("09:30:00"))
	assert.Equal(t, tod.String(), back.String())
}

func TestPayloadDates(t *testing.T) {
	_, err := RequiredDate("date", "")
	assert.EqualError(t, err, "date is required")
	_, err = RequiredDate("date", "2026-13-01")
	assert.EqualError(t, err, "date must be a valid date (YYYY-MM-DD)")

	d, err := OptionalDate("dueDate", nil)
	assert.NoError(t, err)
	assert.Nil(t, d)

	var p helper.PatchField[string]
	require.NoError(t, json.Unmarshal([]byte(`"2026-07-01"`), &p))
	u := map[string]any{}
	require.NoError(t, ApplyDate(u, "x_date", "date", p))
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), u["x_date"])
}
