package email

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pelatform/kit/pkg/logger"
)

// Option configures providers and the service. Options that do not apply to
// a provider are ignored by it.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	httpClient     *http.Client
	resendClient   ResendClient
	postmarkClient PostmarkClient
	smtpDialer     func(SMTPConfig) (SMTPDialer, error)
	now            func() time.Time
}

func newOptions(opts []Option) *options {
	o := &options{logger: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used by the service.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP client used by the Resend and Postmark clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithResendClient injects a Resend client. Useful for testing with mocks.
func WithResendClient(c ResendClient) Option {
	return func(o *options) { o.resendClient = c }
}

// WithPostmarkClient injects a Postmark client. Useful for testing with mocks.
func WithPostmarkClient(c PostmarkClient) Option {
	return func(o *options) { o.postmarkClient = c }
}

// WithSMTPDialer injects the SMTP transport used for every send.
func WithSMTPDialer(d SMTPDialer) Option {
	return func(o *options) {
		o.smtpDialer = func(SMTPConfig) (SMTPDialer, error) { return d, nil }
	}
}

// WithClock overrides the time source used for dev sender file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
