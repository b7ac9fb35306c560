package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "printdesk")
	t.Setenv("DB_NAME", "printdesk")
	t.Setenv("STAFF_ROSTER", "pablo, Maria,evan")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.UnclaimedThreshold)
	assert.Equal(t, 45*time.Second, cfg.ViewerStaleAfter)
	assert.Equal(t, []string{"pablo", " Maria", "evan"}, cfg.StaffRoster)
	assert.False(t, cfg.PushEnabled())
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "postgres://printdesk:@db:5432/printdesk?sslmode=disable", cfg.DSN())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KAFKA_HOST=k1:9092,k2:9092\nUNCLAIMED_THRESHOLD=5m\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("KAFKA_HOST")
		_ = os.Unsetenv("UNCLAIMED_THRESHOLD")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaHost)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 5*time.Minute, cfg.UnclaimedThreshold)
}

func TestLoadConfig_MissingEnvFileIsFine(t *testing.T) {
	setRequired(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
