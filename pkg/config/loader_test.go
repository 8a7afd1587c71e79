package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/config"
)

type smtpAuth struct {
	User string `env:"TEST_SMTP_USER" validate:"required"`
	Pass string `env:"TEST_SMTP_PASS" validate:"required"`
}

type smtpConfig struct {
	Host   string   `env:"TEST_SMTP_HOST" validate:"required"`
	Port   int      `env:"TEST_SMTP_PORT" validate:"required,port"`
	Secure bool     `env:"TEST_SMTP_SECURE" envDefault:"true"`
	From   string   `env:"TEST_SMTP_FROM" validate:"omitempty,email"`
	Auth   smtpAuth
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_SMTP_HOST", "smtp.example.com")
	t.Setenv("TEST_SMTP_PORT", "587")
	t.Setenv("TEST_SMTP_SECURE", "false")
	t.Setenv("TEST_SMTP_USER", "user")
	t.Setenv("TEST_SMTP_PASS", "pass")

	var cfg smtpConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "smtp.example.com", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.False(t, cfg.Secure)
	assert.Equal(t, "user", cfg.Auth.User)
	assert.Equal(t, "pass", cfg.Auth.Pass)
}

func TestLoad_RereadsEnvironment(t *testing.T) {
	t.Setenv("TEST_SMTP_HOST", "first.example.com")
	t.Setenv("TEST_SMTP_PORT", "25")
	t.Setenv("TEST_SMTP_USER", "user")
	t.Setenv("TEST_SMTP_PASS", "pass")

	var first smtpConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first.example.com", first.Host)

	t.Setenv("TEST_SMTP_HOST", "second.example.com")

	var second smtpConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "second.example.com", second.Host)
}

func TestLoad_CollectsEveryMissingField(t *testing.T) {
	for _, name := range []string{"TEST_SMTP_HOST", "TEST_SMTP_PORT", "TEST_SMTP_USER", "TEST_SMTP_PASS"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	var cfg smtpConfig
	err := config.Load(&cfg)
	require.Error(t, err)

	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"TEST_SMTP_HOST", "TEST_SMTP_PORT", "TEST_SMTP_USER", "TEST_SMTP_PASS"}, verr.Missing)
	assert.Contains(t, err.Error(), "missing required environment variables")
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	base := map[string]string{
		"TEST_SMTP_HOST": "smtp.example.com",
		"TEST_SMTP_PORT": "587",
		"TEST_SMTP_USER": "user",
		"TEST_SMTP_PASS": "pass",
	}
	with := func(key, value string) map[string]string {
		env := make(map[string]string, len(base)+1)
		for k, v := range base {
			env[k] = v
		}
		env[key] = value
		return env
	}

	tests := []struct {
		name        string
		environ     map[string]string
		wantMissing []string
		wantInvalid string
	}{
		{
			name:    "valid",
			environ: base,
		},
		{
			name:    "whitespace counts as present",
			environ: with("TEST_SMTP_USER", "   "),
		},
		{
			name:        "port out of range",
			environ:     with("TEST_SMTP_PORT", "70000"),
			wantInvalid: "TEST_SMTP_PORT must be a valid port number (1-65535)",
		},
		{
			name:        "port not a number",
			environ:     with("TEST_SMTP_PORT", "abc"),
			wantInvalid: "TEST_SMTP_PORT must be a valid port number (1-65535)",
		},
		{
			name:        "port zero",
			environ:     with("TEST_SMTP_PORT", "0"),
			wantInvalid: "TEST_SMTP_PORT must be a valid port number (1-65535)",
		},
		{
			name:        "invalid email",
			environ:     with("TEST_SMTP_FROM", "not-an-email"),
			wantInvalid: "TEST_SMTP_FROM must be a valid email address",
		},
		{
			name:        "empty host",
			environ:     with("TEST_SMTP_HOST", ""),
			wantMissing: []string{"TEST_SMTP_HOST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg smtpConfig
			err := config.LoadFrom(&cfg, tt.environ)
			if tt.wantMissing == nil && tt.wantInvalid == "" {
				require.NoError(t, err)
				assert.True(t, cfg.Secure, "envDefault should apply")
				return
			}

			var verr *config.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			if tt.wantMissing != nil {
				assert.Equal(t, tt.wantMissing, verr.Missing)
			}
			if tt.wantInvalid != "" {
				assert.Contains(t, verr.Invalid, tt.wantInvalid)
				assert.Empty(t, verr.Missing, "invalid field should not also be reported missing")
			}
		})
	}
}

func TestLoad_NilPointer(t *testing.T) {
	t.Parallel()

	var cfg *smtpConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.LoadFrom(cfg, nil), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	require.NoError(t, os.Unsetenv("TEST_SMTP_HOST"))

	assert.Panics(t, func() {
		var cfg smtpConfig
		config.MustLoad(&cfg)
	})
}

func TestLookup(t *testing.T) {
	t.Setenv("TEST_LOOKUP_SET", "value")
	t.Setenv("TEST_LOOKUP_EMPTY", "")
	t.Setenv("TEST_LOOKUP_SPACES", "   ")

	v, ok := config.Lookup("TEST_LOOKUP_SET")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = config.Lookup("TEST_LOOKUP_EMPTY")
	assert.False(t, ok)

	_, ok = config.Lookup("TEST_LOOKUP_SPACES")
	assert.True(t, ok)

	_, ok = config.Lookup("TEST_LOOKUP_UNSET_VARIABLE")
	assert.False(t, ok)
}
