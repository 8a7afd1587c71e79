// Package email provides a provider-agnostic way to send transactional email
// through Resend, Postmark, an SMTP relay or a local development sink, with
// type-safe templates rendered by templ.
//
// # Architecture
//
// Every backend implements Sender:
//   - ResendProvider uses the Resend HTTP API (github.com/resend/resend-go/v2)
//   - PostmarkProvider uses Postmark (github.com/mrz1836/postmark) with open
//     and HTML link tracking
//   - SMTPProvider builds a github.com/wneessen/go-mail client per send
//   - DevProvider writes each message to disk as HTML plus JSON metadata
//
// Service selects a provider from a Config (ResendConfig, PostmarkConfig,
// SMTPConfig or DevConfig) and can replace it at runtime with UpdateConfig.
//
// Sending never returns a Go error. SendResult carries Success, the
// provider's MessageID, the error text and the underlying error in Err.
// Construction and configuration problems are returned as errors wrapping
// ErrInvalidConfig, ErrNoConfig or ErrUnsupportedProvider.
//
// # Configuration
//
// LoadConfig reads PELATFORM_EMAIL_* variables and picks the first complete
// provider in the order resend, postmark, smtp, dev:
//
//	svc, err := email.New(nil) // resolve from the environment
//	if err != nil {
//	    return err
//	}
//
// Explicit configs always win over the environment:
//
//	svc, err := email.NewResend(&email.ResendConfig{
//	    APIKey: "re_...",
//	    From:   email.Address{Name: "App", Email: "noreply@example.com"},
//	})
//
// # Usage
//
//	res := svc.SendEmail(ctx, email.Message{
//	    To:      []string{"user@example.com"},
//	    Subject: "Welcome!",
//	    HTML:    "<p>Hello</p>",
//	    Tags:    map[string]string{"category": "welcome"},
//	})
//	if !res.Success {
//	    log.Println(res.Error)
//	}
//
// Templates are rendered first; a plain-text part is derived from the HTML
// when Text is empty:
//
//	res := svc.SendTemplate(ctx, templates.Welcome(user), email.Message{
//	    To:      []string{user.Email},
//	    Subject: "Welcome!",
//	})
//
// # Testing
//
// Inject vendor clients with WithResendClient, WithPostmarkClient or
// WithSMTPDialer, or use DevConfig to inspect output files.
package email
