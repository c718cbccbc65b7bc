package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "MAX_FILE_SIZE", "CROP_WORKERS", "LOG_FORMAT", "CACHE_DURATION", "SUPABASE_URL", "SUPABASE_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, int64(10*1024*1024), cfg.Storage.MaxFileSize)
	require.Equal(t, 24*time.Hour, cfg.Storage.CacheDuration)
	require.Equal(t, 4, cfg.Crop.Workers)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, "autocrop_jobs", cfg.RabbitMQ.Queue)
	require.False(t, cfg.Supabase.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("CROP_WORKERS", "8")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_BUCKET", "sprites")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 8, cfg.Crop.Workers)
	require.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 0, cfg.Redis.DB)
	require.True(t, cfg.Supabase.Enabled())
}

func TestLoadInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("CROP_WORKERS", "")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CROP_WORKERS", "-1")
	_, err = Load()
	require.Error(t, err)
}
