package email

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies an email backend.
type Provider string

const (
	ProviderResend   Provider = "resend"
	ProviderPostmark Provider = "postmark"
	ProviderSMTP     Provider = "smtp"
	ProviderDev      Provider = "dev"
)

func (p Provider) String() string { return string(p) }

// Address is a mailbox with an optional display name.
// The env tags bind the default sender of every provider config.
type Address struct {
	Name  string `json:"name" env:"PELATFORM_EMAIL_FROM_NAME" validate:"required"`
	Email string `json:"email" env:"PELATFORM_EMAIL_FROM_EMAIL" validate:"required"`
}

// String renders the address as "Name <email>", or the bare email when the
// name is empty.
func (a Address) String() string {
	return FormatAddress(a.Name, a.Email)
}

func (a Address) complete() bool {
	return a.Name != "" && a.Email != ""
}

// Config is a resolved provider configuration: ResendConfig, PostmarkConfig,
// SMTPConfig or DevConfig.
type Config interface {
	Provider() Provider
}

// ResendConfig configures the Resend HTTP API.
type ResendConfig struct {
	APIKey  string  `json:"-" env:"PELATFORM_EMAIL_RESEND_API_KEY" validate:"required"`
	From    Address `json:"from"`
	ReplyTo string  `json:"replyTo,omitempty" env:"PELATFORM_EMAIL_REPLY_TO"`
}

func (ResendConfig) Provider() Provider { return ProviderResend }

// PostmarkConfig configures the Postmark HTTP API.
type PostmarkConfig struct {
	ServerToken string  `json:"-" env:"PELATFORM_EMAIL_POSTMARK_SERVER_TOKEN" validate:"required"`
	From        Address `json:"from"`
	ReplyTo     string  `json:"replyTo,omitempty" env:"PELATFORM_EMAIL_REPLY_TO"`
}

func (PostmarkConfig) Provider() Provider { return ProviderPostmark }

type SMTPAuth struct {
	User string `json:"user" env:"PELATFORM_EMAIL_SMTP_USER" validate:"required"`
	Pass string `json:"-" env:"PELATFORM_EMAIL_SMTP_PASS" validate:"required"`
}

// SMTPConfig configures delivery through an SMTP relay. Secure selects
// implicit TLS; otherwise STARTTLS is used when the server offers it.
type SMTPConfig struct {
	Host    string   `json:"host" env:"PELATFORM_EMAIL_SMTP_HOST" validate:"required"`
	Port    int      `json:"port" env:"PELATFORM_EMAIL_SMTP_PORT" validate:"required,port"`
	Secure  bool     `json:"secure" env:"PELATFORM_EMAIL_SMTP_SECURE"`
	Auth    SMTPAuth `json:"auth"`
	From    Address  `json:"from"`
	ReplyTo string   `json:"replyTo,omitempty" env:"PELATFORM_EMAIL_REPLY_TO"`
}

func (SMTPConfig) Provider() Provider { return ProviderSMTP }

// DevConfig writes messages to Dir instead of delivering them.
type DevConfig struct {
	Dir  string  `json:"dir" env:"PELATFORM_EMAIL_DEV_DIR" validate:"required"`
	From Address `json:"from" validate:"-"`
}

func (DevConfig) Provider() Provider { return ProviderDev }

// Message is a provider-neutral email. From and ReplyTo default to the
// provider configuration when empty.
type Message struct {
	From        *Address          `json:"from,omitempty"`
	To          []string          `json:"to"`
	CC          []string          `json:"cc,omitempty"`
	BCC         []string          `json:"bcc,omitempty"`
	ReplyTo     string            `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html,omitempty"`
	Text        string            `json:"text,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Validate checks that the message can be handed to a provider.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.HTML == "" && m.Text == "" {
		return fmt.Errorf("%w: html or text body is required", ErrInvalidMessage)
	}
	return nil
}

// Attachment is a file sent with a message. A non-empty ContentID makes it
// an inline part referenced from the HTML body as "cid:<ContentID>".
type Attachment struct {
	Filename    string `json:"filename"`
	Content     []byte `json:"-"`
	ContentType string `json:"contentType,omitempty"`
	ContentID   string `json:"contentId,omitempty"`
}

// SendResult is the outcome of a send. Send never returns a Go error;
// Err keeps the underlying error for errors.Is checks.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

func sent(id string) SendResult { return SendResult{Success: true, MessageID: id} }

func sendFailed(err error) SendResult {
	return SendResult{Error: err.Error(), Err: err}
}

type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func invalid(msg string) ValidationResult { return ValidationResult{Error: msg} }

// Sender is implemented by every provider.
type Sender interface {
	Send(ctx context.Context, msg Message) SendResult
	ValidateConfig() ValidationResult
	Config() Config
}

func senderFrom(msg Message, def Address) Address {
	if msg.From != nil && msg.From.Email != "" {
		return *msg.From
	}
	return def
}

func replyTo(msg Message, def string) string {
	if msg.ReplyTo != "" {
		return msg.ReplyTo
	}
	return def
}

// vendorFailed keeps the vendor's message as the result text.
func vendorFailed(err error) SendResult {
	return SendResult{Error: err.Error(), Err: fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)}
}
