package email_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/email"
)

type unknownConfig struct{}

func (unknownConfig) Provider() email.Provider { return "unsupported" }

func TestNewService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      email.Config
		provider email.Provider
	}{
		{name: "resend", cfg: testResendConfig(), provider: email.ProviderResend},
		{name: "resend pointer", cfg: func() email.Config { c := testResendConfig(); return &c }(), provider: email.ProviderResend},
		{name: "postmark", cfg: testPostmarkConfig(), provider: email.ProviderPostmark},
		{name: "smtp", cfg: testSMTPConfig(), provider: email.ProviderSMTP},
		{name: "dev", cfg: email.DevConfig{Dir: "tmp"}, provider: email.ProviderDev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := email.NewService(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, svc.Provider())
		})
	}

	t.Run("config round trip", func(t *testing.T) {
		t.Parallel()

		svc, err := email.NewService(testSMTPConfig())
		require.NoError(t, err)
		assert.Equal(t, testSMTPConfig(), svc.Config())
	})

	t.Run("unsupported provider", func(t *testing.T) {
		t.Parallel()

		svc, err := email.NewService(unknownConfig{})
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, email.ErrUnsupportedProvider)
		assert.EqualError(t, err, "unsupported email provider: unsupported")
	})
}

func TestService_SendEmail(t *testing.T) {
	t.Parallel()

	client := &MockResendClient{}
	client.On("SendWithContext", mock.Anything, mock.Anything).
		Return(&resend.SendEmailResponse{Id: "id-1"}, nil).Once()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	svc, err := email.NewService(testResendConfig(), email.WithResendClient(client), email.WithLogger(log))
	require.NoError(t, err)

	res := svc.SendEmail(context.Background(), email.Message{
		To:      []string{"recipient@example.com"},
		Subject: "Test Email",
		HTML:    "<h1>Hello World</h1>",
	})
	assert.True(t, res.Success)
	assert.Equal(t, "id-1", res.MessageID)
	assert.Contains(t, buf.String(), `"message_id":"id-1"`)
	assert.Contains(t, buf.String(), `"component":"email"`)
}

func TestService_SendTemplate(t *testing.T) {
	t.Parallel()

	t.Run("renders html and derives text", func(t *testing.T) {
		t.Parallel()

		client := &MockResendClient{}
		client.On("SendWithContext", mock.Anything, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
			return req.Html == "<h1>Hello</h1><p>John</p>" && req.Text == "Hello John"
		})).Return(&resend.SendEmailResponse{Id: "tpl"}, nil).Once()

		svc, err := email.NewService(testResendConfig(), email.WithResendClient(client))
		require.NoError(t, err)

		tpl := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<h1>Hello</h1><p>John</p>")
			return err
		})
		res := svc.SendTemplate(context.Background(), tpl, email.Message{
			To:      []string{"john@example.com"},
			Subject: "Welcome",
		})
		assert.True(t, res.Success)
		client.AssertExpectations(t)
	})

	t.Run("render failure skips provider", func(t *testing.T) {
		t.Parallel()

		client := &MockResendClient{}
		svc, err := email.NewService(testResendConfig(), email.WithResendClient(client))
		require.NoError(t, err)

		tpl := templ.ComponentFunc(func(context.Context, io.Writer) error {
			return errors.New("render failed")
		})
		res := svc.SendTemplate(context.Background(), tpl, email.Message{
			To:      []string{"john@example.com"},
			Subject: "Welcome",
		})
		assert.False(t, res.Success)
		assert.Equal(t, "render failed", res.Error)
		assert.ErrorIs(t, res.Err, email.ErrTemplateRender)
		client.AssertNotCalled(t, "SendWithContext", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateConfig(t *testing.T) {
	t.Parallel()

	svc, err := email.NewService(testResendConfig())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateConfig(testSMTPConfig()))
	assert.Equal(t, email.ProviderSMTP, svc.Provider())

	err = svc.UpdateConfig(unknownConfig{})
	assert.EqualError(t, err, "unsupported email provider: unsupported")
	assert.Equal(t, email.ProviderSMTP, svc.Provider(), "failed update keeps the current provider")
}

func TestService_ValidateConfig(t *testing.T) {
	t.Parallel()

	cfg := testResendConfig()
	cfg.APIKey = "bad"
	svc, err := email.NewService(cfg)
	require.NoError(t, err)

	res := svc.ValidateConfig()
	assert.False(t, res.Valid)
	assert.Equal(t, "Invalid Resend API key format", res.Error)
}

func TestService_ConcurrentUpdateAndSend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc, err := email.NewService(email.DevConfig{Dir: dir})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				assert.NoError(t, svc.UpdateConfig(email.DevConfig{Dir: dir}))
				return
			}
			res := svc.SendEmail(context.Background(), email.Message{
				To:      []string{"user@example.com"},
				Subject: "concurrent",
				Text:    "hi",
			})
			assert.True(t, res.Success, res.Error)
		}()
	}
	wg.Wait()
}
