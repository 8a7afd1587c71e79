package email_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/email"
)

func testPostmarkConfig() email.PostmarkConfig {
	return email.PostmarkConfig{
		ServerToken: "test-server-token",
		From:        email.Address{Name: "App", Email: "sender@example.com"},
		ReplyTo:     "support@example.com",
	}
}

func TestNewPostmarkProvider(t *testing.T) {
	t.Parallel()

	t.Run("empty server token", func(t *testing.T) {
		t.Parallel()

		cfg := testPostmarkConfig()
		cfg.ServerToken = ""
		p, err := email.NewPostmarkProvider(cfg)
		assert.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "Postmark server token is required")
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		p, err := email.NewPostmarkProvider(testPostmarkConfig())
		require.NoError(t, err)
		assert.True(t, p.ValidateConfig().Valid)
	})

	t.Run("missing sender", func(t *testing.T) {
		t.Parallel()

		cfg := testPostmarkConfig()
		cfg.From = email.Address{}
		p, err := email.NewPostmarkProvider(cfg)
		require.NoError(t, err)

		res := p.ValidateConfig()
		assert.False(t, res.Valid)
		assert.Equal(t, "From email and name are required", res.Error)
	})
}

func TestPostmarkProvider_Send(t *testing.T) {
	t.Parallel()

	msg := email.Message{
		To:      []string{"u1@example.com", "u2@example.com"},
		CC:      []string{"manager@example.com"},
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Headers: map[string]string{"X-Test": "1"},
		Tags:    map[string]string{"category": "welcome"},
		Attachments: []email.Attachment{
			{Filename: "report.pdf", Content: []byte("pdf")},
		},
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client := &MockPostmarkClient{}
		client.On("SendEmail", mock.Anything, mock.MatchedBy(func(e postmark.Email) bool {
			return e.From == "App <sender@example.com>" &&
				e.To == "u1@example.com,u2@example.com" &&
				e.Cc == "manager@example.com" &&
				e.Bcc == "" &&
				e.ReplyTo == "support@example.com" &&
				e.Subject == "Hello" &&
				e.HTMLBody == "<p>Hi</p>" &&
				e.TextBody == "Hi" &&
				e.TrackOpens &&
				e.TrackLinks == "HtmlOnly" &&
				e.Metadata["category"] == "welcome" &&
				assert.ObjectsAreEqual([]postmark.Header{{Name: "X-Test", Value: "1"}}, e.Headers) &&
				len(e.Attachments) == 1 &&
				e.Attachments[0].Name == "report.pdf" &&
				e.Attachments[0].ContentType == "application/pdf" &&
				e.Attachments[0].Content == base64.StdEncoding.EncodeToString([]byte("pdf"))
		})).Return(postmark.EmailResponse{MessageID: "pm-123"}, nil).Once()

		p, err := email.NewPostmarkProvider(testPostmarkConfig(), email.WithPostmarkClient(client))
		require.NoError(t, err)

		res := p.Send(context.Background(), msg)
		assert.True(t, res.Success)
		assert.Equal(t, "pm-123", res.MessageID)
		client.AssertExpectations(t)
	})

	t.Run("api error code", func(t *testing.T) {
		t.Parallel()

		client := &MockPostmarkClient{}
		client.On("SendEmail", mock.Anything, mock.Anything).
			Return(postmark.EmailResponse{ErrorCode: 300, Message: "Invalid email request"}, nil).Once()

		p, err := email.NewPostmarkProvider(testPostmarkConfig(), email.WithPostmarkClient(client))
		require.NoError(t, err)

		res := p.Send(context.Background(), msg)
		assert.False(t, res.Success)
		assert.Equal(t, "postmark error: 300 - Invalid email request", res.Error)
		assert.ErrorIs(t, res.Err, email.ErrFailedToSendEmail)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		client := &MockPostmarkClient{}
		client.On("SendEmail", mock.Anything, mock.Anything).
			Return(postmark.EmailResponse{}, errors.New("connection refused")).Once()

		p, err := email.NewPostmarkProvider(testPostmarkConfig(), email.WithPostmarkClient(client))
		require.NoError(t, err)

		res := p.Send(context.Background(), msg)
		assert.False(t, res.Success)
		assert.Equal(t, "connection refused", res.Error)
	})
}
