package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("DB_URL", "file:test?mode=memory")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "sqlite")

	LoadEnv()

	assert.Equal(t, "8080", PORT)
	assert.Equal(t, "sqlite", DB_DRIVER)
	assert.Equal(t, "file:test?mode=memory", DB_URL)
	assert.Equal(t, "dev", LOG_MODE)
}
