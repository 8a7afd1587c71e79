package email

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendClient is the subset of resend.EmailsSvc used by ResendProvider.
type ResendClient interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendProvider sends email through the Resend HTTP API.
type ResendProvider struct {
	client ResendClient
	config ResendConfig
}

// NewResendProvider creates a Resend-backed sender. The API key is required.
func NewResendProvider(cfg ResendConfig, opts ...Option) (*ResendProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Resend API key is required", ErrInvalidConfig)
	}
	o := newOptions(opts)
	client := o.resendClient
	if client == nil {
		client = resend.NewCustomClient(o.httpClient, cfg.APIKey).Emails
	}
	return &ResendProvider{client: client, config: cfg}, nil
}

func (p *ResendProvider) Config() Config { return p.config }

// ValidateConfig checks the key format without calling the API.
func (p *ResendProvider) ValidateConfig() ValidationResult {
	switch {
	case p.config.APIKey == "":
		return invalid("Resend API key is required")
	case !strings.HasPrefix(p.config.APIKey, "re_"):
		return invalid("Invalid Resend API key format")
	case p.config.From.Email == "":
		return invalid("From email is required")
	}
	return ValidationResult{Valid: true}
}

func (p *ResendProvider) Send(ctx context.Context, msg Message) SendResult {
	if err := msg.Validate(); err != nil {
		return sendFailed(err)
	}

	resp, err := p.client.SendWithContext(ctx, p.request(msg))
	if err != nil {
		return vendorFailed(err)
	}
	return sent(resp.Id)
}

func (p *ResendProvider) request(msg Message) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    senderFrom(msg, p.config.From).String(),
		To:      msg.To,
		Cc:      msg.CC,
		Bcc:     msg.BCC,
		ReplyTo: replyTo(msg, p.config.ReplyTo),
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		Headers: msg.Headers,
	}
	for name, value := range msg.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}
	slices.SortFunc(req.Tags, func(a, b resend.Tag) int { return cmp.Compare(a.Name, b.Name) })

	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		})
	}
	return req
}
