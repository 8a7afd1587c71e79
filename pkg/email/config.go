package email

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pelatform/kit/pkg/config"
)

const (
	EnvResendAPIKey        = "PELATFORM_EMAIL_RESEND_API_KEY"
	EnvFromName            = "PELATFORM_EMAIL_FROM_NAME"
	EnvFromEmail           = "PELATFORM_EMAIL_FROM_EMAIL"
	EnvReplyTo             = "PELATFORM_EMAIL_REPLY_TO"
	EnvPostmarkServerToken = "PELATFORM_EMAIL_POSTMARK_SERVER_TOKEN"
	EnvSMTPHost            = "PELATFORM_EMAIL_SMTP_HOST"
	EnvSMTPPort            = "PELATFORM_EMAIL_SMTP_PORT"
	EnvSMTPSecure          = "PELATFORM_EMAIL_SMTP_SECURE"
	EnvSMTPUser            = "PELATFORM_EMAIL_SMTP_USER"
	EnvSMTPPass            = "PELATFORM_EMAIL_SMTP_PASS"
	EnvDevDir              = "PELATFORM_EMAIL_DEV_DIR"
)

var (
	senderEnvVars = []string{EnvFromName, EnvFromEmail, EnvReplyTo}
	secretEnvVars = []string{EnvResendAPIKey, EnvPostmarkServerToken, EnvSMTPPass}
)

// configLoader resolves one provider from the environment. vars are the
// provider's own variables; the shared sender variables do not count when
// deciding whether a provider is configured at all.
type configLoader struct {
	provider Provider
	name     string
	vars     []string
	load     func() (Config, error)
}

// loaders are listed in precedence order.
var loaders = []configLoader{
	{ProviderResend, "Resend", []string{EnvResendAPIKey}, func() (Config, error) { return LoadResendConfig() }},
	{ProviderPostmark, "Postmark", []string{EnvPostmarkServerToken}, func() (Config, error) { return LoadPostmarkConfig() }},
	{ProviderSMTP, "SMTP", []string{EnvSMTPHost, EnvSMTPPort, EnvSMTPSecure, EnvSMTPUser, EnvSMTPPass}, func() (Config, error) { return LoadSMTPConfig() }},
	{ProviderDev, "dev", []string{EnvDevDir}, func() (Config, error) { return LoadDevConfig() }},
}

func loaderFor(p Provider) (configLoader, bool) {
	i := slices.IndexFunc(loaders, func(l configLoader) bool { return l.provider == p })
	if i < 0 {
		return configLoader{}, false
	}
	return loaders[i], true
}

// LoadConfig resolves the email configuration from the environment.
// Providers are tried in the order resend, postmark, smtp, dev and the first
// complete one wins. When every configured provider is incomplete the error
// of the first one is returned; when none is configured, ErrNoConfig.
func LoadConfig() (Config, error) {
	var firstErr error
	for _, l := range loaders {
		if !anySet(l.vars) {
			continue
		}
		cfg, err := l.load()
		if err == nil {
			return cfg, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNoConfig
}

// LoadResendConfig reads the Resend API key and the sender variables.
func LoadResendConfig() (ResendConfig, error) { return loadConfig[ResendConfig]() }

// LoadPostmarkConfig reads the Postmark server token and the sender variables.
func LoadPostmarkConfig() (PostmarkConfig, error) { return loadConfig[PostmarkConfig]() }

// LoadSMTPConfig reads the SMTP relay settings and the sender variables.
func LoadSMTPConfig() (SMTPConfig, error) { return loadConfig[SMTPConfig]() }

// LoadDevConfig reads the output directory. Sender variables are optional.
func LoadDevConfig() (DevConfig, error) { return loadConfig[DevConfig]() }

func loadConfig[T Config]() (T, error) {
	var cfg T
	if err := config.Load(&cfg); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// HasConfig reports whether a complete email configuration is available.
func HasConfig() bool {
	_, err := LoadConfig()
	return err == nil
}

// IsConfigured is an alias of HasConfig.
func IsConfigured() bool { return HasConfig() }

// ConfiguredProvider reports the provider LoadConfig would select.
func ConfiguredProvider() (Provider, bool) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", false
	}
	return cfg.Provider(), true
}

// EnvValidation is the outcome of ValidateEnvVars.
type EnvValidation struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// ValidateEnvVars checks the environment without building a provider.
// When nothing resolves, the first partially configured provider is
// reported, or Resend when no provider variable is set at all.
func ValidateEnvVars() EnvValidation {
	if _, err := LoadConfig(); err == nil {
		return EnvValidation{Valid: true}
	}
	p := ProviderResend
	for _, l := range loaders {
		if anySet(l.vars) {
			p = l.provider
			break
		}
	}
	return ValidateProviderEnvVars(p)
}

// ValidateProviderEnvVars checks the variables of a single provider.
func ValidateProviderEnvVars(p Provider) EnvValidation {
	l, ok := loaderFor(p)
	if !ok {
		return EnvValidation{Errors: []string{fmt.Sprintf("%s: %s", ErrUnsupportedProvider, p)}}
	}
	_, err := l.load()
	if err == nil {
		return EnvValidation{Valid: true}
	}
	var verr *config.ValidationError
	if errors.As(err, &verr) {
		return EnvValidation{Errors: verr.Problems(), Missing: verr.Missing}
	}
	return EnvValidation{Errors: []string{err.Error()}}
}

// EnvVars returns the email variables that are set, with secrets masked.
func EnvVars() map[string]string {
	out := make(map[string]string)
	names := slices.Clone(senderEnvVars)
	for _, l := range loaders {
		names = append(names, l.vars...)
	}
	for _, name := range names {
		v, ok := config.Lookup(name)
		if !ok {
			continue
		}
		if slices.Contains(secretEnvVars, name) {
			v = config.MaskSecret(v)
		}
		out[name] = v
	}
	return out
}

func anySet(names []string) bool {
	return slices.ContainsFunc(names, func(name string) bool {
		_, ok := config.Lookup(name)
		return ok
	})
}
