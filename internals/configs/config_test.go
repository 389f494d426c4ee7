package configs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallsBackOnEmpty(t *testing.T) {
	t.Setenv("SCHOOLKU_TEST_KEY", "")
	assert.Equal(t, "dflt", GetEnv("SCHOOLKU_TEST_KEY", "dflt"))

	t.Setenv("SCHOOLKU_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("SCHOOLKU_TEST_KEY", "dflt"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SCHOOLKU_TEST_INT", "7")
	assert.Equal(t, 7, GetEnvInt("SCHOOLKU_TEST_INT", 3))

	t.Setenv("SCHOOLKU_TEST_INT", "abc")
	assert.Equal(t, 3, GetEnvInt("SCHOOLKU_TEST_INT", 3))

	t.Setenv("SCHOOLKU_TEST_INT", "-1")
	assert.Equal(t, 3, GetEnvInt("SCHOOLKU_TEST_INT", 3))
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "school")
	t.Setenv("DB_SSLMODE", "disable")

	dsn := PostgresDSN()
	assert.True(t, strings.HasPrefix(dsn, "postgres://u:p@db:6543/school?sslmode=disable"))
}
