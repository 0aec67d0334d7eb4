package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, values map[string]string) {
	t.Helper()
	prev := Env
	Env = values
	t.Cleanup(func() { Env = prev })
}

func TestGetEnvPrefersLoadedMap(t *testing.T) {
	withEnv(t, map[string]string{"SHOPLEDGER_TEST_KEY": "from-file"})
	t.Setenv("SHOPLEDGER_TEST_KEY", "from-os")

	assert.Equal(t, "from-file", GetEnv("SHOPLEDGER_TEST_KEY", "default"))
}

func TestGetEnvFallsBackToOSAndDefault(t *testing.T) {
	withEnv(t, map[string]string{})
	t.Setenv("SHOPLEDGER_TEST_OS", "from-os")

	assert.Equal(t, "from-os", GetEnv("SHOPLEDGER_TEST_OS", "default"))
	assert.Equal(t, "default", GetEnv("SHOPLEDGER_TEST_MISSING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	withEnv(t, map[string]string{"TRIAL": "30", "BROKEN": "thirty"})

	assert.Equal(t, 30, GetEnvInt("TRIAL", 14))
	assert.Equal(t, 14, GetEnvInt("BROKEN", 14))
	assert.Equal(t, 14, GetEnvInt("UNSET_INT", 14))
}

func TestGetEnvDuration(t *testing.T) {
	withEnv(t, map[string]string{"TIMEOUT": "250ms", "BROKEN": "soon"})

	assert.Equal(t, 250*time.Millisecond, GetEnvDuration("TIMEOUT", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("BROKEN", time.Second))
}

func TestIsDev(t *testing.T) {
	withEnv(t, map[string]string{"APP_ENV": "dev"})
	assert.True(t, IsDev())

	Env["APP_ENV"] = "prod"
	assert.False(t, IsDev())
}
