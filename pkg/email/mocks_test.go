package email_test

import (
	"context"

	"github.com/mrz1836/postmark"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/mock"
	gomail "github.com/wneessen/go-mail"
)

// MockResendClient is a mock implementation of the ResendClient interface
type MockResendClient struct {
	mock.Mock
}

func (m *MockResendClient) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendEmailResponse), args.Error(1)
}

// MockPostmarkClient is a mock implementation of the PostmarkClient interface
type MockPostmarkClient struct {
	mock.Mock
}

func (m *MockPostmarkClient) SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(postmark.EmailResponse), args.Error(1)
}

// MockSMTPDialer is a mock implementation of the SMTPDialer interface
type MockSMTPDialer struct {
	mock.Mock
}

func (m *MockSMTPDialer) DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}
