package email

import (
	"fmt"

	"github.com/pelatform/kit/pkg/config"
)

// New builds a Service from cfg, or from the environment when cfg is nil.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return NewService(cfg, opts...)
}

// NewResend builds a Resend-backed Service. A nil cfg is loaded from the
// environment.
func NewResend(cfg *ResendConfig, opts ...Option) (*Service, error) {
	return newFromConfig(ProviderResend, cfg, LoadResendConfig, opts)
}

// NewPostmark builds a Postmark-backed Service. A nil cfg is loaded from the
// environment.
func NewPostmark(cfg *PostmarkConfig, opts ...Option) (*Service, error) {
	return newFromConfig(ProviderPostmark, cfg, LoadPostmarkConfig, opts)
}

// NewSMTP builds an SMTP-backed Service. A nil cfg is loaded from the
// environment.
func NewSMTP(cfg *SMTPConfig, opts ...Option) (*Service, error) {
	return newFromConfig(ProviderSMTP, cfg, LoadSMTPConfig, opts)
}

// NewDev builds a Service that writes messages to disk. A nil cfg is loaded
// from the environment.
func NewDev(cfg *DevConfig, opts ...Option) (*Service, error) {
	return newFromConfig(ProviderDev, cfg, LoadDevConfig, opts)
}

func newFromConfig[T Config](p Provider, cfg *T, load func() (T, error), opts []Option) (*Service, error) {
	l, _ := loaderFor(p)
	if cfg == nil {
		if !anySet(l.vars) {
			return nil, noConfigError{provider: l.name}
		}
		loaded, err := load()
		if err != nil {
			return nil, err
		}
		return NewService(loaded, opts...)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return NewService(*cfg, opts...)
}
