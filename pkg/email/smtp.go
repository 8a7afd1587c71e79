package email

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPDialer delivers messages over one SMTP session. *gomail.Client
// implements it.
type SMTPDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPProvider sends email through an SMTP relay. A client is built for
// every send, so no connection outlives a call.
type SMTPProvider struct {
	config SMTPConfig
	dial   func(SMTPConfig) (SMTPDialer, error)
}

// NewSMTPProvider creates an SMTP sender. The configuration is checked by
// ValidateConfig and on the first send, not here.
func NewSMTPProvider(cfg SMTPConfig, opts ...Option) *SMTPProvider {
	o := newOptions(opts)
	dial := o.smtpDialer
	if dial == nil {
		dial = newSMTPClient
	}
	return &SMTPProvider{config: cfg, dial: dial}
}

func newSMTPClient(cfg SMTPConfig) (SMTPDialer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthAutoDiscover),
		gomail.WithUsername(cfg.Auth.User),
		gomail.WithPassword(cfg.Auth.Pass),
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (p *SMTPProvider) Config() Config { return p.config }

func (p *SMTPProvider) ValidateConfig() ValidationResult {
	switch {
	case p.config.Host == "" || p.config.Port == 0:
		return invalid("SMTP host and port are required")
	case p.config.Port < 1 || p.config.Port > 65535:
		return invalid("SMTP port must be a valid port number (1-65535)")
	case p.config.Auth.User == "" || p.config.Auth.Pass == "":
		return invalid("SMTP authentication credentials are required")
	case !p.config.From.complete():
		return invalid("From email and name are required")
	}
	return ValidationResult{Valid: true}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) SendResult {
	if err := msg.Validate(); err != nil {
		return sendFailed(err)
	}

	m, err := p.message(msg)
	if err != nil {
		return sendFailed(fmt.Errorf("%w: %w", ErrInvalidMessage, err))
	}

	client, err := p.dial(p.config)
	if err != nil {
		return vendorFailed(err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return vendorFailed(err)
	}
	return sent(m.GetMessageID())
}

func (p *SMTPProvider) message(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()

	from := senderFrom(msg, p.config.From)
	if err := m.FromFormat(from.Name, from.Email); err != nil {
		return nil, err
	}
	if err := m.To(msg.To...); err != nil {
		return nil, err
	}
	if len(msg.CC) > 0 {
		if err := m.Cc(msg.CC...); err != nil {
			return nil, err
		}
	}
	if len(msg.BCC) > 0 {
		if err := m.Bcc(msg.BCC...); err != nil {
			return nil, err
		}
	}
	if rt := replyTo(msg, p.config.ReplyTo); rt != "" {
		if err := m.ReplyTo(rt); err != nil {
			return nil, err
		}
	}
	m.Subject(msg.Subject)
	for name, value := range msg.Headers {
		m.SetGenHeader(gomail.Header(name), value)
	}
	m.SetMessageID()

	switch {
	case msg.HTML != "" && msg.Text != "":
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	}

	for _, a := range msg.Attachments {
		fileOpts := []gomail.FileOption{gomail.WithFileContentType(gomail.ContentType(attachmentType(a)))}
		r := bytes.NewReader(a.Content)
		var err error
		if a.ContentID != "" {
			err = m.EmbedReader(a.Filename, r, append(fileOpts, gomail.WithFileContentID(a.ContentID))...)
		} else {
			err = m.AttachReader(a.Filename, r, fileOpts...)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
