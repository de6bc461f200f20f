package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "s3cret")
	t.Setenv("DB_DSN", "host=localhost dbname=jobs")
	t.Setenv("TIMEZONE", "")
	t.Setenv("ACCESS_TOKEN_MINUTES", "")
	t.Setenv("VIEW_RETENTION_DAYS", "")
	t.Setenv("STRICT_APPLICATION_TRANSITIONS", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "host=localhost dbname=jobs", cfg.DatabaseDSN)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 90, cfg.ViewRetentionDays)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.False(t, cfg.StrictTransitions)
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "s3cret")
	t.Setenv("DB_DSN", "")
	t.Setenv("ENV", "qc")
	t.Setenv("QC_DB_HOST", "db.internal")
	t.Setenv("QC_DB_USER", "app")
	t.Setenv("QC_DB_PASSWORD", "pw")
	t.Setenv("QC_DB_NAME", "jobboard")
	t.Setenv("QC_DB_PORT", "5432")
	t.Setenv("QC_DB_SSLMODE", "disable")
	t.Setenv("TIMEZONE", "Asia/Ho_Chi_Minh")
	t.Setenv("STRICT_APPLICATION_TRANSITIONS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "host=db.internal user=app password=pw dbname=jobboard port=5432 sslmode=disable TimeZone=UTC", cfg.DatabaseDSN)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location.String())
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedCORSOrigins)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "s3cret")
	t.Setenv("DB_DSN", "x")

	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("VIEW_RETENTION_DAYS", "ninety")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestFromEnvUnknownEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "s3cret")
	t.Setenv("DB_DSN", "")
	t.Setenv("ENV", "staging")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "")
	t.Setenv("DB_DSN", "x")

	_, err := FromEnv()
	assert.Error(t, err)
}
