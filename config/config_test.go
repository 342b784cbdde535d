package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mentormap", cfg.Database.Name)
	assert.Equal(t, 5, cfg.Validation.TitleMin)
	assert.Equal(t, 20, cfg.Validation.BodyMin)
	assert.Equal(t, 30*time.Second, cfg.Limits.SubmitGuardTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://mentormap.app, https://staging.mentormap.app ,")
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("SUBMIT_GUARD_TTL", "1m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("VALIDATION_TITLE_MIN", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://mentormap.app", "https://staging.mentormap.app"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, time.Minute, cfg.Limits.SubmitGuardTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 8, cfg.Validation.TitleMin)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: "8080"},
			Database:   DatabaseConfig{Host: "localhost"},
			Auth:       AuthConfig{Mode: AuthModeFirebase},
			Firebase:   FirebaseConfig{CredentialsPath: "/secrets/firebase.json"},
			Validation: ValidationConfig{TitleMin: 5, BodyMin: 20},
			Limits:     LimitsConfig{WritesPerMinute: 30, WriteBurst: 5},
		}
	}

	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Firebase.CredentialsPath = ""
	assert.ErrorContains(t, cfg.Validate(), "FIREBASE_CREDENTIALS_PATH")

	cfg = base()
	cfg.Auth.Mode = AuthModeDev
	cfg.App.Environment = "production"
	assert.ErrorContains(t, cfg.Validate(), "not allowed in production")

	cfg = base()
	cfg.Auth.Mode = "basic"
	assert.ErrorContains(t, cfg.Validate(), "AUTH_MODE")

	cfg = base()
	cfg.Validation.BodyMin = 0
	assert.Error(t, cfg.Validate())

	for _, limits := range []LimitsConfig{
		{WritesPerMinute: 0, WriteBurst: 5},
		{WritesPerMinute: -3, WriteBurst: 5},
		{WritesPerMinute: 30, WriteBurst: 0},
	} {
		cfg = base()
		cfg.Limits = limits
		assert.ErrorContains(t, cfg.Validate(), "WRITES_PER_MINUTE", "%+v", limits)
	}
}

func TestLoad_RejectsZeroWriteRate(t *testing.T) {
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("WRITES_PER_MINUTE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "WRITES_PER_MINUTE")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "mm", Password: "pw", Name: "mentormap", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=mm password=pw dbname=mentormap sslmode=require", d.DSN())
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("AUTH_MODE", "firebase")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")

	cfg := Read()
	assert.Equal(t, AuthModeFirebase, cfg.Auth.Mode)
	assert.Error(t, cfg.Validate())
}
