package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevProvider implements Sender for local development.
// It saves each message as an HTML file plus a JSON metadata file instead of
// delivering it.
type DevProvider struct {
	config DevConfig
	now    func() time.Time
}

// NewDevProvider creates a development sender. The directory is created on
// the first send.
func NewDevProvider(cfg DevConfig, opts ...Option) (*DevProvider, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: dev output directory is required", ErrInvalidConfig)
	}
	o := newOptions(opts)
	return &DevProvider{config: cfg, now: o.now}, nil
}

func (d *DevProvider) Config() Config { return d.config }

func (d *DevProvider) ValidateConfig() ValidationResult {
	if d.config.Dir == "" {
		return invalid("dev output directory is required")
	}
	return ValidationResult{Valid: true}
}

// devMetadata is the JSON sidecar written next to the HTML body.
type devMetadata struct {
	ID          string            `json:"id"`
	Timestamp   string            `json:"timestamp"`
	From        string            `json:"from,omitempty"`
	To          []string          `json:"to"`
	CC          []string          `json:"cc,omitempty"`
	BCC         []string          `json:"bcc,omitempty"`
	ReplyTo     string            `json:"reply_to,omitempty"`
	Subject     string            `json:"subject"`
	Text        string            `json:"text,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Attachments []string          `json:"attachments,omitempty"`
}

// Send writes <timestamp>_<subject>.html and .json to the configured directory.
func (d *DevProvider) Send(ctx context.Context, msg Message) SendResult {
	if err := msg.Validate(); err != nil {
		return sendFailed(err)
	}
	if err := ctx.Err(); err != nil {
		return vendorFailed(err)
	}

	if err := os.MkdirAll(d.config.Dir, 0755); err != nil {
		return vendorFailed(fmt.Errorf("failed to create directory: %w", err))
	}

	now := d.now()
	base := filepath.Join(d.config.Dir, fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Subject)))

	body := msg.HTML
	if body == "" {
		body = "<pre>" + msg.Text + "</pre>"
	}
	if err := os.WriteFile(base+".html", []byte(body), 0644); err != nil {
		return vendorFailed(fmt.Errorf("failed to write HTML file: %w", err))
	}

	meta := devMetadata{
		ID:        uuid.NewString(),
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		CC:        msg.CC,
		BCC:       msg.BCC,
		ReplyTo:   replyTo(msg, ""),
		Subject:   msg.Subject,
		Text:      msg.Text,
		Headers:   msg.Headers,
		Tags:      msg.Tags,
	}
	if from := senderFrom(msg, d.config.From); from.Email != "" {
		meta.From = from.String()
	}
	for _, a := range msg.Attachments {
		meta.Attachments = append(meta.Attachments, a.Filename)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return vendorFailed(fmt.Errorf("failed to marshal metadata: %w", err))
	}
	if err := os.WriteFile(base+".json", data, 0644); err != nil {
		return vendorFailed(fmt.Errorf("failed to write JSON file: %w", err))
	}
	return sent(meta.ID)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename replaces spaces with underscores, drops anything outside
// [a-zA-Z0-9-_.] and caps the length at 100 characters.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
