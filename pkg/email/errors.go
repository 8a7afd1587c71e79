package email

import "errors"

var (
	ErrNoConfig            = errors.New("no email configuration found")
	ErrInvalidConfig       = errors.New("invalid email configuration")
	ErrUnsupportedProvider = errors.New("unsupported email provider")

	ErrInvalidMessage    = errors.New("invalid email message")
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrTemplateRender    = errors.New("failed to render email template")
)

// noConfigError reports that a factory found neither an explicit config nor
// any of the provider's environment variables.
type noConfigError struct {
	provider string
}

func (e noConfigError) Error() string {
	return "no " + e.provider + " configuration found: provide config or set environment variables"
}

func (e noConfigError) Is(target error) bool { return target == ErrNoConfig }
