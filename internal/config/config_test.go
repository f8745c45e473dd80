package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("7d")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	d, err = ParseDuration("15m")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = ParseDuration("")
	assert.Error(t, err)
	_, err = ParseDuration("abc")
	assert.Error(t, err)
	_, err = ParseDuration("-5m")
	assert.Error(t, err)
	_, err = ParseDuration("0d")
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("REFRESH_TOKEN_EXPIRES_IN", "7d")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Equal(t, "access-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "b")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("EMAIL_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg := Load()

	assert.Equal(t, "b", cfg.RefreshTokenSecret)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.EmailSecure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestValidate_DefaultSecretOutsideDebug(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	t.Setenv("GIN_MODE", "release")
	cfg := Load()
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Error(t, cfg.Validate())

	t.Setenv("GIN_MODE", "test")
	assert.Error(t, Load().Validate())

	t.Setenv("GIN_MODE", "debug")
	assert.NoError(t, Load().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"release with secrets", Config{GinMode: "release", JWTSecret: "s3cret", RefreshTokenSecret: "r3fresh"}, false},
		{"release with default access secret", Config{GinMode: "release", JWTSecret: DefaultJWTSecret, RefreshTokenSecret: "r3fresh"}, true},
		{"release with empty access secret", Config{GinMode: "release", RefreshTokenSecret: "r3fresh"}, true},
		{"release with default refresh secret", Config{GinMode: "release", JWTSecret: "s3cret", RefreshTokenSecret: DefaultJWTSecret}, true},
		{"debug with default secret", Config{GinMode: "debug", JWTSecret: DefaultJWTSecret, RefreshTokenSecret: DefaultJWTSecret}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "tasks",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tasks sslmode=disable", cfg.DSN())

	cfg.DBDriver = "mysql"
	assert.Equal(t, "u:p@tcp(db:5432)/tasks?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())

	cfg.DBDSN = "custom"
	assert.Equal(t, "custom", cfg.DSN())
}
