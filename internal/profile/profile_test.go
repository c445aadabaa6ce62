package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	p := &Profile{}
	p.FromEnv()

	assert.False(t, p.ReminderEnabled)
	assert.Equal(t, "@every 1m", p.ReminderSchedule)
	assert.Equal(t, "10m", p.ReminderWindow)
	assert.Empty(t, p.Secret)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DAYFOLD_SECRET", "s3cret")
	t.Setenv("DAYFOLD_REMINDER_ENABLED", "true")
	t.Setenv("DAYFOLD_REMINDER_SCHEDULE", "@every 30s")
	t.Setenv("DAYFOLD_REMINDER_WINDOW", "1h")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "s3cret", p.Secret)
	assert.True(t, p.ReminderEnabled)
	assert.Equal(t, "@every 30s", p.ReminderSchedule)
	assert.Equal(t, "1h", p.ReminderWindow)
}

func TestValidateDefaultsSqliteDSN(t *testing.T) {
	dir := t.TempDir()

	p := &Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
	}
	require.NoError(t, p.Validate())

	assert.Equal(t, filepath.Join(dir, "dayfold_dev.db"), p.DSN)
	assert.NotEmpty(t, p.Version)
}

func TestValidateUnknownModeFallsBackToDemo(t *testing.T) {
	p := &Profile{
		Mode:   "staging",
		Data:   t.TempDir(),
		Driver: "sqlite",
	}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	p := &Profile{
		Mode:   "dev",
		Data:   t.TempDir(),
		Driver: "postgres",
	}
	assert.Error(t, p.Validate())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DAYFOLD_SECRET",
		"DAYFOLD_REMINDER_ENABLED",
		"DAYFOLD_REMINDER_SCHEDULE",
		"DAYFOLD_REMINDER_WINDOW",
	} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}
