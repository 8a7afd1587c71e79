package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/pelatform/kit/pkg/config"
	"github.com/pelatform/kit/pkg/environment"
	"github.com/pelatform/kit/pkg/logger"
)

var defaultLogger = sync.OnceValue(func() *slog.Logger {
	return logger.FromEnv("pelatform")
})

// Logger returns the process-wide logger configured from APP_ENV and
// LOG_LEVEL.
func Logger() *slog.Logger { return defaultLogger() }

// SlackType selects the channel webhook a SlackMessage goes to.
type SlackType string

const (
	SlackAlerts      SlackType = "alerts"
	SlackCron        SlackType = "cron"
	SlackLinks       SlackType = "links"
	SlackSubscribers SlackType = "subscribers"
	SlackErrors      SlackType = "errors"
)

// SlackMentionUser is pinged by alert messages that ask for a mention.
const SlackMentionUser = "U0404G6J3NJ"

// SlackWebhookEnv returns the variable holding the webhook for t, for example
// SLACK_WEBHOOKS_HOOK_ALERTS.
func SlackWebhookEnv(t SlackType) string {
	return "SLACK_WEBHOOKS_HOOK_" + strings.ToUpper(string(t))
}

// SlackMessage is posted by SlackLog.
type SlackMessage struct {
	Message string
	Type    SlackType
	Mention bool
}

func (m SlackMessage) text() string {
	if m.Mention && (m.Type == SlackAlerts || m.Type == SlackErrors) {
		return fmt.Sprintf("<@%s> :alert: %s", SlackMentionUser, m.Message)
	}
	return m.Message
}

// SlackNotifier posts messages to Slack incoming webhooks.
type SlackNotifier struct {
	client *http.Client
	logger *slog.Logger
}

// SlackOption configures a SlackNotifier.
type SlackOption func(*SlackNotifier)

// WithSlackHTTPClient sets the client used to call webhooks.
func WithSlackHTTPClient(c *http.Client) SlackOption {
	return func(n *SlackNotifier) {
		if c != nil {
			n.client = c
		}
	}
}

// WithSlackLogger sets the logger that receives development output and
// delivery failures.
func WithSlackLogger(l *slog.Logger) SlackOption {
	return func(n *SlackNotifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewSlackNotifier returns a notifier using http.DefaultClient and Logger.
func NewSlackNotifier(opts ...SlackOption) *SlackNotifier {
	n := &SlackNotifier{client: http.DefaultClient}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = Logger()
	}
	return n
}

// Log posts msg to the webhook for msg.Type. When APP_ENV or GO_ENV names
// development the message is logged instead; an unset environment still
// posts. A missing webhook is a no-op and delivery failures are logged,
// never returned.
func (n *SlackNotifier) Log(ctx context.Context, msg SlackMessage) {
	if env, ok := environment.Lookup(); ok && env == environment.Development {
		n.logger.LogAttrs(ctx, slog.LevelInfo, msg.Message, slog.String("slack_type", string(msg.Type)))
		return
	}
	hook, ok := config.Lookup(SlackWebhookEnv(msg.Type))
	if !ok {
		return
	}
	if err := n.post(ctx, hook, msg.text()); err != nil {
		n.logger.LogAttrs(ctx, slog.LevelError, "slack webhook failed",
			logger.Operation("slack_log"),
			slog.String("slack_type", string(msg.Type)),
			logger.Error(err),
		)
	}
}

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string    `json:"type"`
	Text slackText `json:"text"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (n *SlackNotifier) post(ctx context.Context, hook, text string) error {
	body, err := json.Marshal(slackPayload{Blocks: []slackBlock{{
		Type: "section",
		Text: slackText{Type: "mrkdwn", Text: text},
	}}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("slack webhook returned %s", resp.Status)
	}
	return nil
}

var defaultSlack = sync.OnceValue(func() *SlackNotifier { return NewSlackNotifier() })

// SlackLog posts msg with the default notifier.
func SlackLog(ctx context.Context, msg SlackMessage) {
	defaultSlack().Log(ctx, msg)
}
