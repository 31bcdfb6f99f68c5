package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 9, cfg.Export.CompressionLevel)
	assert.EqualValues(t, 32<<20, cfg.Export.MaxUploadSize)
	assert.Equal(t, filepath.Join(os.TempDir(), "sheetpack"), cfg.Export.BaseDir())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.S3.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("EXPORT_WORK_DIR", "/var/lib/sheetpack")
	t.Setenv("ARCHIVE_COMPRESSION_LEVEL", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/var/lib/sheetpack", cfg.Export.BaseDir())
	assert.Equal(t, 5, cfg.Export.CompressionLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://sheetpack:secret@db:5432/sheetpack?sslmode=disable", cfg.Database.DSN())
}

func TestLoadInvalidCompressionLevel(t *testing.T) {
	for _, level := range []string{"0", "10", "-1"} {
		t.Setenv("ARCHIVE_COMPRESSION_LEVEL", level)
		_, err := Load()
		assert.Error(t, err, level)
	}
}
