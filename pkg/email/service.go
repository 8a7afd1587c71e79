package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/a-h/templ"

	"github.com/pelatform/kit/pkg/logger"
)

// Service is the email facade. It selects a provider from a Config and can
// swap it at runtime with UpdateConfig. Safe for concurrent use.
type Service struct {
	mu     sync.RWMutex
	sender Sender
	logger *slog.Logger
	opts   []Option
}

// NewService builds the provider matching cfg. Unknown config types yield
// ErrUnsupportedProvider.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	sender, err := newSender(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Service{
		sender: sender,
		logger: newOptions(opts).logger.With(logger.Component("email")),
		opts:   opts,
	}, nil
}

// NewServiceWithSender wraps a caller-supplied Sender.
func NewServiceWithSender(sender Sender, opts ...Option) *Service {
	return &Service{
		sender: sender,
		logger: newOptions(opts).logger.With(logger.Component("email")),
		opts:   opts,
	}
}

func newSender(cfg Config, opts []Option) (Sender, error) {
	switch c := cfg.(type) {
	case ResendConfig:
		return NewResendProvider(c, opts...)
	case *ResendConfig:
		if c != nil {
			return NewResendProvider(*c, opts...)
		}
	case PostmarkConfig:
		return NewPostmarkProvider(c, opts...)
	case *PostmarkConfig:
		if c != nil {
			return NewPostmarkProvider(*c, opts...)
		}
	case SMTPConfig:
		return NewSMTPProvider(c, opts...), nil
	case *SMTPConfig:
		if c != nil {
			return NewSMTPProvider(*c, opts...), nil
		}
	case DevConfig:
		return NewDevProvider(c, opts...)
	case *DevConfig:
		if c != nil {
			return NewDevProvider(*c, opts...)
		}
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedProvider)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, c.Provider())
	}
	return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedProvider)
}

func (s *Service) current() Sender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sender
}

// Provider returns the active provider name.
func (s *Service) Provider() Provider { return s.current().Config().Provider() }

// Config returns the active provider configuration.
func (s *Service) Config() Config { return s.current().Config() }

// SendEmail delivers msg through the active provider.
func (s *Service) SendEmail(ctx context.Context, msg Message) SendResult {
	sender := s.current()
	res := sender.Send(ctx, msg)
	s.logResult(ctx, sender.Config().Provider(), msg, res)
	return res
}

// SendTemplate renders tpl into the HTML body and sends the message. When
// msg.Text is empty a plain-text part is derived from the rendered HTML.
// A render failure is reported in the result and nothing is sent.
func (s *Service) SendTemplate(ctx context.Context, tpl templ.Component, msg Message) SendResult {
	html, err := RenderTemplate(ctx, tpl)
	if err != nil {
		res := SendResult{Error: err.Error(), Err: fmt.Errorf("%w: %w", ErrTemplateRender, err)}
		s.logger.LogAttrs(ctx, slog.LevelError, "email template render failed",
			logger.Operation("send_template"),
			logger.Error(err),
		)
		return res
	}

	msg.HTML = html
	if msg.Text == "" {
		msg.Text = HTMLToText(html)
	}
	return s.SendEmail(ctx, msg)
}

// ValidateConfig checks the active provider configuration without network calls.
func (s *Service) ValidateConfig() ValidationResult {
	return s.current().ValidateConfig()
}

// UpdateConfig replaces the provider. On error the current provider is kept.
func (s *Service) UpdateConfig(cfg Config) error {
	sender, err := newSender(cfg, s.opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sender = sender
	s.mu.Unlock()
	return nil
}

func (s *Service) logResult(ctx context.Context, p Provider, msg Message, res SendResult) {
	if res.Success {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "email sent",
			logger.Provider(p),
			logger.MessageID(res.MessageID),
			logger.Count(len(msg.To)+len(msg.CC)+len(msg.BCC)),
		)
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelError, "email send failed",
		logger.Provider(p),
		logger.Operation("send"),
		logger.ErrorMessage(res.Error),
	)
}
