package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkClient is the subset of *postmark.Client used by PostmarkProvider.
type PostmarkClient interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkProvider sends email through Postmark's transactional API.
type PostmarkProvider struct {
	client PostmarkClient
	config PostmarkConfig
}

// NewPostmarkProvider creates a Postmark-backed sender. The server token is
// required; account-level operations are not used.
func NewPostmarkProvider(cfg PostmarkConfig, opts ...Option) (*PostmarkProvider, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: Postmark server token is required", ErrInvalidConfig)
	}
	o := newOptions(opts)
	client := o.postmarkClient
	if client == nil {
		c := postmark.NewClient(cfg.ServerToken, "")
		if o.httpClient != nil {
			c.HTTPClient = o.httpClient
		}
		client = c
	}
	return &PostmarkProvider{client: client, config: cfg}, nil
}

func (p *PostmarkProvider) Config() Config { return p.config }

func (p *PostmarkProvider) ValidateConfig() ValidationResult {
	switch {
	case p.config.ServerToken == "":
		return invalid("Postmark server token is required")
	case !p.config.From.complete():
		return invalid("From email and name are required")
	}
	return ValidationResult{Valid: true}
}

// Send delivers msg with open tracking and HTML-only link tracking.
// Tags travel as Postmark metadata.
func (p *PostmarkProvider) Send(ctx context.Context, msg Message) SendResult {
	if err := msg.Validate(); err != nil {
		return sendFailed(err)
	}

	resp, err := p.client.SendEmail(ctx, p.email(msg))
	if err != nil {
		return vendorFailed(err)
	}
	if resp.ErrorCode > 0 {
		return vendorFailed(fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return sent(resp.MessageID)
}

func (p *PostmarkProvider) email(msg Message) postmark.Email {
	e := postmark.Email{
		From:       senderFrom(msg, p.config.From).String(),
		To:         strings.Join(msg.To, ","),
		Cc:         strings.Join(msg.CC, ","),
		Bcc:        strings.Join(msg.BCC, ","),
		ReplyTo:    replyTo(msg, p.config.ReplyTo),
		Subject:    msg.Subject,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		Metadata:   msg.Tags,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	}
	for name, value := range msg.Headers {
		e.Headers = append(e.Headers, postmark.Header{Name: name, Value: value})
	}
	for _, a := range msg.Attachments {
		e.Attachments = append(e.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: attachmentType(a),
			ContentID:   a.ContentID,
		})
	}
	return e
}

func attachmentType(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return GetMimeType(a.Filename)
}
