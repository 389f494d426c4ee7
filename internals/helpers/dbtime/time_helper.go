// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"
	_ "time/tzdata" // zona waktu tetap tersedia di image minimal

	"github.com/gofiber/fiber/v2"
)

// Nama locals yang di-set AuthJWT dari kolom school_timezone.
const (
	LocSchoolTimezone = "school_timezone" // string, misal "Asia/Jakarta"
	LocSchoolLoc      = "school_loc"      // *time.Location
)

const DateLayout = "2006-01-02"

// GetSchoolLocation: locals school_loc → school_timezone → UTC.
func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}
	if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
		return loc
	}
	if s, ok := c.Locals(LocSchoolTimezone).(string); ok && strings.TrimSpace(s) != "" {
		if loc, err := time.LoadLocation(strings.TrimSpace(s)); err == nil {
			c.Locals(LocSchoolLoc, loc)
			return loc
		}
	}
	return time.UTC
}

func NowInSchool(c *fiber.Ctx) time.Time {
	return time.Now().In(GetSchoolLocation(c))
}

// TodayInSchool tanggal hari ini menurut zona sekolah, dinormalisasi ke 00:00 UTC.
func TodayInSchool(c *fiber.Ctx) time.Time {
	return DateOnly(NowInSchool(c))
}

// DateOnly membuang jam & zona: kolom tanggal selalu disimpan sebagai 00:00 UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate menerima "YYYY-MM-DD" atau RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// ParseDatePtr untuk query param opsional; kosong atau invalid → nil.
func ParseDatePtr(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
