package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	tests := map[string]struct {
		want time.Weekday
		ok   bool
	}{
		"Sunday":   {time.Sunday, true},
		" friday ": {time.Friday, true},
		"SAT":      {time.Saturday, true},
		"thurs":    {time.Sunday, false},
		"":         {time.Sunday, false},
	}
	for raw, tt := range tests {
		got, ok := ParseWeekday(raw)
		assert.Equal(t, tt.ok, ok, raw)
		assert.Equal(t, tt.want, got, raw)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("UPLOAD_SIGNING_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.school.test, ,https://b.school.test")
	t.Setenv("WEEKLY_HOLIDAY", "Fri")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("MIDTRANS_PRODUCTION", "yes")
	t.Setenv("SCHOOL_TIMEZONE", "Not/AZone")
	t.Setenv("PUBLIC_BASE_URL", "https://api.school.test/")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.UploadSigningSecret, "signing secret falls back to the JWT secret")
	assert.Equal(t, []string{"https://a.school.test", "https://b.school.test"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Friday, cfg.WeeklyHoliday)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes)
	assert.False(t, cfg.MidtransProduction, "unparsable bool keeps the default")
	assert.Equal(t, "https://api.school.test", cfg.PublicBaseURL)
	assert.NotNil(t, cfg.Location)
}

func TestCacheKeys(t *testing.T) {
	assert.NotEqual(t, CacheKey.SessionKey("a"), CacheKey.SessionKey("b"))
	assert.NotEqual(t, CacheKey.UserSessionsKey(1), CacheKey.UserSessionsKey(2))
	assert.Contains(t, CacheKey.PaymentLockKey("INV-1-abc"), "INV-1-abc")
}
